// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package beanstalk

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/operation"
)

type fakeAPI struct {
	API

	versions []*ebv2.CreateApplicationVersionInput
	events   []*ebv2.DescribeEventsInput
	deletes  []*ebv2.DeleteApplicationInput
	platform []*ebv2.ListPlatformVersionsInput
}

func (f *fakeAPI) CreateStorageLocation(context.Context, *ebv2.CreateStorageLocationInput, ...func(*ebv2.Options)) (*ebv2.CreateStorageLocationOutput, error) {
	return &ebv2.CreateStorageLocationOutput{S3Bucket: aws.String("elasticbeanstalk-us-east-1-123")}, nil
}

func (f *fakeAPI) CreateApplicationVersion(_ context.Context, in *ebv2.CreateApplicationVersionInput, _ ...func(*ebv2.Options)) (*ebv2.CreateApplicationVersionOutput, error) {
	f.versions = append(f.versions, in)
	return &ebv2.CreateApplicationVersionOutput{
		ApplicationVersion: &ebtypes.ApplicationVersionDescription{
			ApplicationName: in.ApplicationName,
			VersionLabel:    in.VersionLabel,
			SourceBundle:    in.SourceBundle,
		},
	}, nil
}

func (f *fakeAPI) DescribeEvents(_ context.Context, in *ebv2.DescribeEventsInput, _ ...func(*ebv2.Options)) (*ebv2.DescribeEventsOutput, error) {
	f.events = append(f.events, in)
	return &ebv2.DescribeEventsOutput{
		Events: []ebtypes.EventDescription{{Message: aws.String("deployed"), Severity: ebtypes.EventSeverityInfo}},
	}, nil
}

func (f *fakeAPI) DeleteApplication(_ context.Context, in *ebv2.DeleteApplicationInput, _ ...func(*ebv2.Options)) (*ebv2.DeleteApplicationOutput, error) {
	f.deletes = append(f.deletes, in)
	return &ebv2.DeleteApplicationOutput{}, nil
}

func (f *fakeAPI) ListPlatformVersions(_ context.Context, in *ebv2.ListPlatformVersionsInput, _ ...func(*ebv2.Options)) (*ebv2.ListPlatformVersionsOutput, error) {
	f.platform = append(f.platform, in)
	return &ebv2.ListPlatformVersionsOutput{}, nil
}

type fakeUploader struct {
	puts  []*s3v2.PutObjectInput
	body  []byte
	err   error
	built int
}

func (f *fakeUploader) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3v2.PutObjectOutput{}, nil
}

func useFakes(t *testing.T) (*fakeAPI, *fakeUploader) {
	t.Helper()
	eb, up := &fakeAPI{}, &fakeUploader{}

	origClient, origUploader := newClient, newUploader
	newClient = func(context.Context, *operation.Env) (API, error) { return eb, nil }
	newUploader = func(context.Context, *operation.Env) (Uploader, error) {
		up.built++
		return up, nil
	}
	t.Cleanup(func() {
		newClient = origClient
		newUploader = origUploader
	})
	return eb, up
}

func find(t *testing.T, name string) operation.Runner {
	t.Helper()
	for _, r := range Operations() {
		if r.Describe().Name == name {
			return r
		}
	}
	t.Fatalf("no operation %s", name)
	return nil
}

func invoke(t *testing.T, name string, args ...string) (*operation.Invocation, error) {
	t.Helper()

	r := find(t, name)
	env := &operation.Env{Stderr: &bytes.Buffer{}, Stdout: &bytes.Buffer{}}

	var (
		inv *operation.Invocation
		err error
	)
	cmd := &cli.Command{
		Name:  name,
		Flags: append(r.Flags(), &cli.StringFlag{Name: "filter"}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inv, err = r.Invoke(ctx, cmd, env)
			return nil
		},
	}
	require.NoError(t, cmd.Run(t.Context(), append([]string{name}, args...)))
	return inv, err
}

func TestOperations(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 12)

	for _, r := range ops {
		spec := r.Describe()
		assert.Equal(t, Service, spec.Service)
		_, err := operation.ParseSelector(spec.Select, spec)
		assert.NoError(t, err, spec.Name)
		if spec.Confirm {
			_, ok := spec.Param(spec.Target)
			assert.True(t, ok, "%s target %s is not a param", spec.Name, spec.Target)
		}
	}

	for _, name := range []string{"describe-application-versions", "describe-environments", "describe-events", "list-platform-versions"} {
		assert.True(t, find(t, name).Describe().Paginated, name)
	}
}

func TestCreateApplicationVersion_S3Source(t *testing.T) {
	eb, up := useFakes(t)

	inv, err := invoke(t, "create-application-version",
		"--application-name", "web", "--version-label", "v1",
		"--source-bucket", "bundles", "--source-key", "web/v1.zip", "--force")
	require.NoError(t, err)

	require.Len(t, eb.versions, 1)
	loc := eb.versions[0].SourceBundle
	require.NotNil(t, loc)
	assert.Equal(t, "bundles", aws.ToString(loc.S3Bucket))
	assert.Equal(t, "web/v1.zip", aws.ToString(loc.S3Key))
	assert.Zero(t, up.built, "no upload for a bundle already in S3")

	require.Len(t, inv.Records, 1)
	assert.Contains(t, string(inv.Records[0]), `"VersionLabel":"v1"`)
}

func TestCreateApplicationVersion_Upload(t *testing.T) {
	eb, up := useFakes(t)

	bundle := filepath.Join(t.TempDir(), "app.zip")
	require.NoError(t, os.WriteFile(bundle, []byte("PK bundle"), 0o600))

	_, err := invoke(t, "create-application-version",
		"--app", "web", "--label", "v2", "--source-file", bundle, "--force")
	require.NoError(t, err)

	require.Len(t, up.puts, 1)
	assert.Equal(t, "elasticbeanstalk-us-east-1-123", aws.ToString(up.puts[0].Bucket))
	assert.Equal(t, "web/v2-app.zip", aws.ToString(up.puts[0].Key))
	assert.Equal(t, int64(len("PK bundle")), aws.ToInt64(up.puts[0].ContentLength))
	assert.Equal(t, "PK bundle", string(up.body))

	require.Len(t, eb.versions, 1)
	assert.Equal(t, "web/v2-app.zip", aws.ToString(eb.versions[0].SourceBundle.S3Key))
}

func TestCreateApplicationVersion_UploadFailure(t *testing.T) {
	eb, up := useFakes(t)
	up.err = errors.New("access denied")

	bundle := filepath.Join(t.TempDir(), "app.zip")
	require.NoError(t, os.WriteFile(bundle, []byte("x"), 0o600))

	_, err := invoke(t, "create-application-version",
		"--app", "web", "--label", "v3", "--source-file", bundle, "--force")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload bundle")
	assert.Empty(t, eb.versions)
}

func TestCreateApplicationVersion_SourceConflict(t *testing.T) {
	eb, _ := useFakes(t)

	_, err := invoke(t, "create-application-version",
		"--app", "web", "--label", "v1", "--source-file", "app.zip", "--source-bucket", "b", "--force")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
	assert.Empty(t, eb.versions)
}

func TestDescribeEvents(t *testing.T) {
	eb, _ := useFakes(t)

	inv, err := invoke(t, "describe-events",
		"--env", "web-prod", "--severity", "WARN", "--start-time", "2026-03-01T00:00:00Z")
	require.NoError(t, err)

	require.Len(t, eb.events, 1)
	in := eb.events[0]
	assert.Equal(t, "web-prod", aws.ToString(in.EnvironmentName))
	assert.Equal(t, ebtypes.EventSeverityWarn, in.Severity)
	require.NotNil(t, in.StartTime)
	assert.True(t, in.StartTime.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, in.EndTime)
	assert.Len(t, inv.Records, 1)
}

func TestDescribeEvents_BadSeverity(t *testing.T) {
	useFakes(t)

	r := find(t, "describe-events")
	cmd := &cli.Command{
		Name:   "describe-events",
		Flags:  r.Flags(),
		Action: func(context.Context, *cli.Command) error { return nil },
	}
	assert.Error(t, cmd.Run(t.Context(), []string{"describe-events", "--severity", "LOUD"}))
}

func TestDeleteApplication_EchoesName(t *testing.T) {
	eb, _ := useFakes(t)

	inv, err := invoke(t, "delete-application", "--app", "web", "--terminate-env-by-force", "--force")
	require.NoError(t, err)

	require.Len(t, eb.deletes, 1)
	assert.True(t, aws.ToBool(eb.deletes[0].TerminateEnvByForce))
	require.Len(t, inv.Records, 1)
	assert.JSONEq(t, `"web"`, string(inv.Records[0]))
}

func TestListPlatformVersions_Filters(t *testing.T) {
	eb, _ := useFakes(t)

	_, err := invoke(t, "list-platform-versions", "--filter", "_PlatformStatus=Ready")
	require.NoError(t, err)

	require.Len(t, eb.platform, 1)
	require.Len(t, eb.platform[0].Filters, 1)
	f := eb.platform[0].Filters[0]
	assert.Equal(t, "PlatformStatus", aws.ToString(f.Type))
	assert.Equal(t, "=", aws.ToString(f.Operator))
	assert.Equal(t, []string{"Ready"}, f.Values)
}
