// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beanstalk

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ebv2 "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"

	"github.com/tfctl/awsctl/internal/operation"
)

var (
	environmentId = operation.Param{
		Field: "EnvironmentId",
		Kind:  operation.String,
		Usage: "environment id",
	}
	environmentName = operation.Param{
		Field:   "EnvironmentName",
		Kind:    operation.String,
		Usage:   "environment name",
		Aliases: []string{"env"},
	}
)

func describeEnvironments() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:   "describe-environments",
		API:    "DescribeEnvironments",
		Usage:  "describe environments",
		Select: "Environments",
		Attrs: []string{
			"EnvironmentName",
			"EnvironmentId",
			"ApplicationName",
			"VersionLabel",
			"Status",
			"Health",
			"CNAME",
		},
		Params: []operation.Param{
			applicationName,
			{Field: "EnvironmentIds", Kind: operation.Strings, Usage: "environment ids"},
			{Field: "EnvironmentNames", Kind: operation.Strings, Usage: "environment names"},
			{Field: "VersionLabel", Kind: operation.String, Usage: "only environments running this version"},
			{Field: "IncludeDeleted", Kind: operation.Bool, Usage: "include terminated environments"},
			{Field: "IncludedDeletedBackTo", Kind: operation.Time, Usage: "with --include-deleted, how far back to look"},
			maxRecords,
		},
	}, func(b *operation.Bag) (*ebv2.DescribeEnvironmentsInput, error) {
		backTo, err := b.Time("IncludedDeletedBackTo")
		if err != nil {
			return nil, err
		}
		return &ebv2.DescribeEnvironmentsInput{
			ApplicationName:       b.String("ApplicationName"),
			EnvironmentIds:        b.Strings("EnvironmentIds"),
			EnvironmentNames:      b.Strings("EnvironmentNames"),
			VersionLabel:          b.String("VersionLabel"),
			IncludeDeleted:        b.Bool("IncludeDeleted"),
			IncludedDeletedBackTo: backTo,
			MaxRecords:            b.Int32("MaxRecords"),
		}, nil
	}, API.DescribeEnvironments),
		func(o *ebv2.DescribeEnvironmentsOutput) *string { return o.NextToken },
		func(i *ebv2.DescribeEnvironmentsInput, t *string) { i.NextToken = t },
	)
}

func describeEnvironmentHealth() operation.Runner {
	return newOp(operation.Spec{
		Name:   "describe-environment-health",
		API:    "DescribeEnvironmentHealth",
		Usage:  "describe the health of an environment",
		Select: "*",
		Params: []operation.Param{
			environmentId,
			environmentName,
			{
				Field: "AttributeNames",
				Kind:  operation.Strings,
				Usage: "attributes to return",
				Enum:  enum(ebtypes.EnvironmentHealthAttribute("").Values()),
			},
		},
	}, func(b *operation.Bag) (*ebv2.DescribeEnvironmentHealthInput, error) {
		var names []ebtypes.EnvironmentHealthAttribute
		for _, n := range b.Strings("AttributeNames") {
			names = append(names, ebtypes.EnvironmentHealthAttribute(n))
		}
		return &ebv2.DescribeEnvironmentHealthInput{
			EnvironmentId:   b.String("EnvironmentId"),
			EnvironmentName: b.String("EnvironmentName"),
			AttributeNames:  names,
		}, nil
	}, API.DescribeEnvironmentHealth)
}

func describeEvents() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:   "describe-events",
		API:    "DescribeEvents",
		Usage:  "describe events, newest first",
		Select: "Events",
		Attrs:  []string{"EventDate:Date", "Severity", "EnvironmentName:Environment", "Message"},
		Params: []operation.Param{
			applicationName,
			environmentId,
			environmentName,
			{Field: "VersionLabel", Kind: operation.String, Usage: "version label"},
			{Field: "RequestId", Kind: operation.String, Usage: "events for one request"},
			{
				Field: "Severity",
				Kind:  operation.String,
				Usage: "minimum severity",
				Enum:  enum(ebtypes.EventSeverity("").Values()),
			},
			{Field: "StartTime", Kind: operation.Time, Usage: "events on or after"},
			{Field: "EndTime", Kind: operation.Time, Usage: "events before"},
			maxRecords,
		},
	}, func(b *operation.Bag) (*ebv2.DescribeEventsInput, error) {
		start, err := b.Time("StartTime")
		if err != nil {
			return nil, err
		}
		end, err := b.Time("EndTime")
		if err != nil {
			return nil, err
		}
		in := &ebv2.DescribeEventsInput{
			ApplicationName: b.String("ApplicationName"),
			EnvironmentId:   b.String("EnvironmentId"),
			EnvironmentName: b.String("EnvironmentName"),
			VersionLabel:    b.String("VersionLabel"),
			RequestId:       b.String("RequestId"),
			StartTime:       start,
			EndTime:         end,
			MaxRecords:      b.Int32("MaxRecords"),
		}
		if s := b.String("Severity"); s != nil {
			in.Severity = ebtypes.EventSeverity(*s)
		}
		return in, nil
	}, API.DescribeEvents),
		func(o *ebv2.DescribeEventsOutput) *string { return o.NextToken },
		func(i *ebv2.DescribeEventsInput, t *string) { i.NextToken = t },
	)
}

func listPlatformVersions() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:          "list-platform-versions",
		API:           "ListPlatformVersions",
		Usage:         "list platform versions",
		Select:        "PlatformSummaryList",
		Attrs:         []string{"PlatformBranchName:Branch", "PlatformVersion:Version", "PlatformStatus:Status", "PlatformArn"},
		ServerFilters: true,
		Params:        []operation.Param{maxRecords},
	}, func(b *operation.Bag) (*ebv2.ListPlatformVersionsInput, error) {
		return &ebv2.ListPlatformVersionsInput{
			Filters:    platformFilters(b),
			MaxRecords: b.Int32("MaxRecords"),
		}, nil
	}, API.ListPlatformVersions),
		func(o *ebv2.ListPlatformVersionsOutput) *string { return o.NextToken },
		func(i *ebv2.ListPlatformVersionsInput, t *string) { i.NextToken = t },
	)
}

// platformFilters converts "_PlatformBranchName=Node.js 20" style --filter
// entries into platform filters.
func platformFilters(b *operation.Bag) []ebtypes.PlatformFilter {
	var out []ebtypes.PlatformFilter
	for _, f := range b.ServerFilters() {
		out = append(out, ebtypes.PlatformFilter{
			Type:     aws.String(f.Key),
			Operator: aws.String("="),
			Values:   f.Values(),
		})
	}
	return out
}

func checkDNSAvailability() operation.Runner {
	return newOp(operation.Spec{
		Name:   "check-dns-availability",
		API:    "CheckDNSAvailability",
		Usage:  "check whether a CNAME prefix is available",
		Select: "*",
		Attrs:  []string{"Available", "FullyQualifiedCNAME:CNAME"},
		Params: []operation.Param{
			{Field: "CNAMEPrefix", Kind: operation.String, Usage: "prefix to check", Required: true},
		},
	}, func(b *operation.Bag) (*ebv2.CheckDNSAvailabilityInput, error) {
		return &ebv2.CheckDNSAvailabilityInput{CNAMEPrefix: b.String("CNAMEPrefix")}, nil
	}, API.CheckDNSAvailability)
}

func restartAppServer() operation.Runner {
	return newOp(operation.Spec{
		Name:    "restart-app-server",
		API:     "RestartAppServer",
		Usage:   "restart the application container on every instance",
		Select:  "^EnvironmentName",
		Confirm: true,
		Target:  "EnvironmentName",
		Params:  []operation.Param{environmentId, environmentName},
	}, func(b *operation.Bag) (*ebv2.RestartAppServerInput, error) {
		return &ebv2.RestartAppServerInput{
			EnvironmentId:   b.String("EnvironmentId"),
			EnvironmentName: b.String("EnvironmentName"),
		}, nil
	}, API.RestartAppServer)
}

func terminateEnvironment() operation.Runner {
	return newOp(operation.Spec{
		Name:    "terminate-environment",
		API:     "TerminateEnvironment",
		Usage:   "terminate an environment",
		Select:  "*",
		Attrs:   []string{"EnvironmentName", "EnvironmentId", "Status"},
		Confirm: true,
		Target:  "EnvironmentName",
		Params: []operation.Param{
			environmentId,
			environmentName,
			{Field: "TerminateResources", Kind: operation.Bool, Usage: "also terminate the environment's resources"},
			{Field: "ForceTerminate", Kind: operation.Bool, Usage: "terminate even if a version is not deployed"},
		},
	}, func(b *operation.Bag) (*ebv2.TerminateEnvironmentInput, error) {
		return &ebv2.TerminateEnvironmentInput{
			EnvironmentId:      b.String("EnvironmentId"),
			EnvironmentName:    b.String("EnvironmentName"),
			TerminateResources: b.Bool("TerminateResources"),
			ForceTerminate:     b.Bool("ForceTerminate"),
		}, nil
	}, API.TerminateEnvironment)
}
