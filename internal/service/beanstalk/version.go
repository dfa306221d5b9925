// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beanstalk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/operation"
)

var versionAttrs = []string{"ApplicationName", "VersionLabel", "Status", "SourceBundle.S3Key:Key", "DateCreated:Created"}

// versionClients are the clients create-application-version needs. The S3
// client is only built when a local bundle is uploaded.
type versionClients struct {
	eb       API
	uploader func(context.Context) (Uploader, error)
}

// versionInput is the SDK request plus the local bundle to upload first.
type versionInput struct {
	*ebv2.CreateApplicationVersionInput
	SourceFile string `json:",omitempty"`
}

func createApplicationVersion() operation.Runner {
	return &operation.Operation[*versionClients, versionInput, ebv2.CreateApplicationVersionOutput]{
		Spec: operation.Spec{
			Service: Service,
			Name:    "create-application-version",
			API:     "CreateApplicationVersion",
			Usage:   "create an application version from a bundle in S3 or a local file",
			Select:  "ApplicationVersion",
			Attrs:   versionAttrs,
			Confirm: true,
			Target:  "VersionLabel",
			Params: []operation.Param{
				required(applicationName),
				{Field: "VersionLabel", Kind: operation.String, Usage: "version label", Required: true, Aliases: []string{"label"}},
				{Field: "Description", Kind: operation.String, Usage: "description"},
				{Field: "SourceBucket", Kind: operation.String, Usage: "S3 bucket holding the bundle"},
				{Field: "SourceKey", Kind: operation.String, Usage: "S3 key of the bundle"},
				{Field: "SourceFile", Kind: operation.String, Usage: "local bundle to upload to the account's Elastic Beanstalk bucket"},
				{Field: "AutoCreateApplication", Kind: operation.Bool, Usage: "create the application if it does not exist"},
				{Field: "Process", Kind: operation.Bool, Usage: "validate the bundle before creating the version"},
				{Field: "Tags", Kind: operation.Tags, Usage: "tags for the new version"},
			},
		},
		Client: func(ctx context.Context, env *operation.Env) (*versionClients, error) {
			eb, err := newClient(ctx, env)
			if err != nil {
				return nil, err
			}
			return &versionClients{
				eb:       eb,
				uploader: func(ctx context.Context) (Uploader, error) { return newUploader(ctx, env) },
			}, nil
		},
		Build: buildVersionInput,
		Call:  callCreateApplicationVersion,
	}
}

func buildVersionInput(b *operation.Bag) (*versionInput, error) {
	t, err := tags(b, "Tags")
	if err != nil {
		return nil, err
	}

	in := &versionInput{
		CreateApplicationVersionInput: &ebv2.CreateApplicationVersionInput{
			ApplicationName:       b.String("ApplicationName"),
			VersionLabel:          b.String("VersionLabel"),
			Description:           b.String("Description"),
			AutoCreateApplication: b.Bool("AutoCreateApplication"),
			Process:               b.Bool("Process"),
			Tags:                  t,
		},
	}

	bucket, key := b.String("SourceBucket"), b.String("SourceKey")
	if file := b.String("SourceFile"); file != nil {
		if bucket != nil || key != nil {
			return nil, errors.New("--source-file cannot be combined with --source-bucket or --source-key")
		}
		if in.ApplicationName == nil || in.VersionLabel == nil {
			return nil, errors.New("--source-file requires --application-name and --version-label")
		}
		in.SourceFile = *file
		return in, nil
	}

	if bucket != nil || key != nil {
		in.SourceBundle = &ebtypes.S3Location{S3Bucket: bucket, S3Key: key}
	}
	return in, nil
}

func callCreateApplicationVersion(ctx context.Context, c *versionClients, in *versionInput) (*ebv2.CreateApplicationVersionOutput, error) {
	if in.SourceFile != "" {
		loc, err := uploadBundle(ctx, c, in)
		if err != nil {
			return nil, err
		}
		in.SourceBundle = loc
	}
	return c.eb.CreateApplicationVersion(ctx, in.CreateApplicationVersionInput)
}

// uploadBundle puts the local bundle at <application>/<version>-<file> in
// the account's Elastic Beanstalk storage bucket.
func uploadBundle(ctx context.Context, c *versionClients, in *versionInput) (*ebtypes.S3Location, error) {
	storage, err := c.eb.CreateStorageLocation(ctx, &ebv2.CreateStorageLocationInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage location: %w", err)
	}

	uploader, err := c.uploader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	f, err := os.Open(in.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat bundle: %w", err)
	}

	key := path.Join(aws.ToString(in.ApplicationName), aws.ToString(in.VersionLabel)+"-"+filepath.Base(in.SourceFile))
	_, err = uploader.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        storage.S3Bucket,
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload bundle: %w", err)
	}

	log.Infof("uploaded %s (%s) to s3://%s/%s",
		in.SourceFile, humanize.Bytes(uint64(info.Size())), aws.ToString(storage.S3Bucket), key)

	return &ebtypes.S3Location{S3Bucket: storage.S3Bucket, S3Key: aws.String(key)}, nil
}
