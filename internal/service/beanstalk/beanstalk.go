// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beanstalk

import (
	"context"

	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/awsctl/internal/operation"
)

// Service is the command group name.
const Service = "eb"

// API is the subset of the Elastic Beanstalk client the commands use.
type API interface {
	DescribeApplications(context.Context, *ebv2.DescribeApplicationsInput, ...func(*ebv2.Options)) (*ebv2.DescribeApplicationsOutput, error)
	CreateApplication(context.Context, *ebv2.CreateApplicationInput, ...func(*ebv2.Options)) (*ebv2.CreateApplicationOutput, error)
	DeleteApplication(context.Context, *ebv2.DeleteApplicationInput, ...func(*ebv2.Options)) (*ebv2.DeleteApplicationOutput, error)
	DescribeApplicationVersions(context.Context, *ebv2.DescribeApplicationVersionsInput, ...func(*ebv2.Options)) (*ebv2.DescribeApplicationVersionsOutput, error)
	CreateApplicationVersion(context.Context, *ebv2.CreateApplicationVersionInput, ...func(*ebv2.Options)) (*ebv2.CreateApplicationVersionOutput, error)
	CreateStorageLocation(context.Context, *ebv2.CreateStorageLocationInput, ...func(*ebv2.Options)) (*ebv2.CreateStorageLocationOutput, error)
	DescribeEnvironments(context.Context, *ebv2.DescribeEnvironmentsInput, ...func(*ebv2.Options)) (*ebv2.DescribeEnvironmentsOutput, error)
	DescribeEnvironmentHealth(context.Context, *ebv2.DescribeEnvironmentHealthInput, ...func(*ebv2.Options)) (*ebv2.DescribeEnvironmentHealthOutput, error)
	DescribeEvents(context.Context, *ebv2.DescribeEventsInput, ...func(*ebv2.Options)) (*ebv2.DescribeEventsOutput, error)
	ListPlatformVersions(context.Context, *ebv2.ListPlatformVersionsInput, ...func(*ebv2.Options)) (*ebv2.ListPlatformVersionsOutput, error)
	CheckDNSAvailability(context.Context, *ebv2.CheckDNSAvailabilityInput, ...func(*ebv2.Options)) (*ebv2.CheckDNSAvailabilityOutput, error)
	RestartAppServer(context.Context, *ebv2.RestartAppServerInput, ...func(*ebv2.Options)) (*ebv2.RestartAppServerOutput, error)
	TerminateEnvironment(context.Context, *ebv2.TerminateEnvironmentInput, ...func(*ebv2.Options)) (*ebv2.TerminateEnvironmentOutput, error)
}

// Uploader puts source bundles into S3.
type Uploader interface {
	PutObject(context.Context, *s3v2.PutObjectInput, ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

var (
	_ API      = (*ebv2.Client)(nil)
	_ Uploader = (*s3v2.Client)(nil)
)

// newClient and newUploader return the clients for an invocation. Tests swap
// them for fakes.
var (
	newClient = func(ctx context.Context, env *operation.Env) (API, error) {
		return env.Clients.ElasticBeanstalk(ctx, env.Settings)
	}
	newUploader = func(ctx context.Context, env *operation.Env) (Uploader, error) {
		return env.Clients.S3(ctx, env.Settings)
	}
)

// Operations returns every Elastic Beanstalk command.
func Operations() []operation.Runner {
	return []operation.Runner{
		describeApplications(),
		createApplication(),
		deleteApplication(),
		describeApplicationVersions(),
		createApplicationVersion(),
		describeEnvironments(),
		describeEnvironmentHealth(),
		describeEvents(),
		listPlatformVersions(),
		checkDNSAvailability(),
		restartAppServer(),
		terminateEnvironment(),
	}
}

type caller[I, O any] func(API, context.Context, *I, ...func(*ebv2.Options)) (*O, error)

func newOp[I, O any](spec operation.Spec, build func(*operation.Bag) (*I, error), call caller[I, O]) *operation.Operation[API, I, O] {
	spec.Service = Service
	return &operation.Operation[API, I, O]{
		Spec:   spec,
		Client: func(ctx context.Context, env *operation.Env) (API, error) { return newClient(ctx, env) },
		Build:  build,
		Call: func(ctx context.Context, c API, in *I) (*O, error) {
			return call(c, ctx, in)
		},
	}
}

func paged[I, O any](op *operation.Operation[API, I, O], next func(*O) *string, set func(*I, *string)) *operation.Operation[API, I, O] {
	op.NextToken = next
	op.SetToken = set
	return op
}

var maxRecords = operation.Param{
	Field: "MaxRecords",
	Kind:  operation.Int32,
	Usage: "page size used while iterating",
}

var applicationName = operation.Param{
	Field:   "ApplicationName",
	Kind:    operation.String,
	Usage:   "application name",
	Aliases: []string{"app"},
}

func required(p operation.Param) operation.Param {
	p.Required = true
	return p
}

func tags(b *operation.Bag, field string) ([]ebtypes.Tag, error) {
	bound, err := b.Tags(field)
	if err != nil || bound == nil {
		return nil, err
	}
	out := make([]ebtypes.Tag, 0, len(bound))
	for _, t := range bound {
		out = append(out, ebtypes.Tag{Key: &t.Key, Value: &t.Value})
	}
	return out, nil
}

func enum[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
