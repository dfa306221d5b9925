// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beanstalk

import (
	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"

	"github.com/tfctl/awsctl/internal/operation"
)

var applicationAttrs = []string{"ApplicationName", "DateCreated:Created", "DateUpdated:Updated", "Description"}

func describeApplications() operation.Runner {
	return newOp(operation.Spec{
		Name:   "describe-applications",
		API:    "DescribeApplications",
		Usage:  "describe applications",
		Select: "Applications",
		Attrs:  applicationAttrs,
		Params: []operation.Param{
			{Field: "ApplicationNames", Kind: operation.Strings, Usage: "applications to describe", Aliases: []string{"app"}},
		},
	}, func(b *operation.Bag) (*ebv2.DescribeApplicationsInput, error) {
		return &ebv2.DescribeApplicationsInput{
			ApplicationNames: b.Strings("ApplicationNames"),
		}, nil
	}, API.DescribeApplications)
}

func createApplication() operation.Runner {
	return newOp(operation.Spec{
		Name:    "create-application",
		API:     "CreateApplication",
		Usage:   "create an application",
		Select:  "Application",
		Attrs:   applicationAttrs,
		Confirm: true,
		Target:  "ApplicationName",
		Params: []operation.Param{
			required(applicationName),
			{Field: "Description", Kind: operation.String, Usage: "description"},
			{Field: "Tags", Kind: operation.Tags, Usage: "tags for the new application"},
		},
	}, func(b *operation.Bag) (*ebv2.CreateApplicationInput, error) {
		t, err := tags(b, "Tags")
		if err != nil {
			return nil, err
		}
		return &ebv2.CreateApplicationInput{
			ApplicationName: b.String("ApplicationName"),
			Description:     b.String("Description"),
			Tags:            t,
		}, nil
	}, API.CreateApplication)
}

func deleteApplication() operation.Runner {
	return newOp(operation.Spec{
		Name:    "delete-application",
		API:     "DeleteApplication",
		Usage:   "delete an application and its versions",
		Select:  "^ApplicationName",
		Confirm: true,
		Target:  "ApplicationName",
		Params: []operation.Param{
			required(applicationName),
			{Field: "TerminateEnvByForce", Kind: operation.Bool, Usage: "terminate running environments first"},
		},
	}, func(b *operation.Bag) (*ebv2.DeleteApplicationInput, error) {
		return &ebv2.DeleteApplicationInput{
			ApplicationName:     b.String("ApplicationName"),
			TerminateEnvByForce: b.Bool("TerminateEnvByForce"),
		}, nil
	}, API.DeleteApplication)
}

func describeApplicationVersions() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:   "describe-application-versions",
		API:    "DescribeApplicationVersions",
		Usage:  "describe application versions",
		Select: "ApplicationVersions",
		Attrs:  versionAttrs,
		Params: []operation.Param{
			applicationName,
			{Field: "VersionLabels", Kind: operation.Strings, Usage: "versions to describe"},
			maxRecords,
		},
	}, func(b *operation.Bag) (*ebv2.DescribeApplicationVersionsInput, error) {
		return &ebv2.DescribeApplicationVersionsInput{
			ApplicationName: b.String("ApplicationName"),
			VersionLabels:   b.Strings("VersionLabels"),
			MaxRecords:      b.Int32("MaxRecords"),
		}, nil
	}, API.DescribeApplicationVersions),
		func(o *ebv2.DescribeApplicationVersionsOutput) *string { return o.NextToken },
		func(i *ebv2.DescribeApplicationVersionsInput, t *string) { i.NextToken = t },
	)
}
