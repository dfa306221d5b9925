// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/tfctl/awsctl/internal/operation"
)

func describeVpcs() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:          "describe-vpcs",
		API:           "DescribeVpcs",
		Usage:         "describe VPCs",
		Select:        "Vpcs",
		Attrs:         []string{"VpcId", "CidrBlock", "State", "IsDefault", "Tags[Name]:Name"},
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "VpcIds", Kind: operation.Strings, Usage: "VPCs to describe", Aliases: []string{"id"}},
			maxResults,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeVpcsInput, error) {
		return &ec2v2.DescribeVpcsInput{
			VpcIds:     b.Strings("VpcIds"),
			Filters:    serverFilters(b),
			MaxResults: b.Int32("MaxResults"),
			DryRun:     b.Bool("DryRun"),
		}, nil
	}, API.DescribeVpcs),
		func(o *ec2v2.DescribeVpcsOutput) *string { return o.NextToken },
		func(i *ec2v2.DescribeVpcsInput, t *string) { i.NextToken = t },
	)
}

func describeSubnets() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:   "describe-subnets",
		API:    "DescribeSubnets",
		Usage:  "describe subnets",
		Select: "Subnets",
		Attrs: []string{
			"SubnetId",
			"VpcId",
			"CidrBlock",
			"AvailabilityZone",
			"AvailableIpAddressCount:Free",
			"Tags[Name]:Name",
		},
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "SubnetIds", Kind: operation.Strings, Usage: "subnets to describe", Aliases: []string{"id"}},
			maxResults,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeSubnetsInput, error) {
		return &ec2v2.DescribeSubnetsInput{
			SubnetIds:  b.Strings("SubnetIds"),
			Filters:    serverFilters(b),
			MaxResults: b.Int32("MaxResults"),
			DryRun:     b.Bool("DryRun"),
		}, nil
	}, API.DescribeSubnets),
		func(o *ec2v2.DescribeSubnetsOutput) *string { return o.NextToken },
		func(i *ec2v2.DescribeSubnetsInput, t *string) { i.NextToken = t },
	)
}

func describeSecurityGroups() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:          "describe-security-groups",
		API:           "DescribeSecurityGroups",
		Usage:         "describe security groups",
		Select:        "SecurityGroups",
		Attrs:         []string{"GroupId", "GroupName", "VpcId", "Description"},
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "GroupIds", Kind: operation.Strings, Usage: "group ids", Aliases: []string{"id"}},
			{Field: "GroupNames", Kind: operation.Strings, Usage: "group names (default VPC only)"},
			maxResults,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeSecurityGroupsInput, error) {
		return &ec2v2.DescribeSecurityGroupsInput{
			GroupIds:   b.Strings("GroupIds"),
			GroupNames: b.Strings("GroupNames"),
			Filters:    serverFilters(b),
			MaxResults: b.Int32("MaxResults"),
			DryRun:     b.Bool("DryRun"),
		}, nil
	}, API.DescribeSecurityGroups),
		func(o *ec2v2.DescribeSecurityGroupsOutput) *string { return o.NextToken },
		func(i *ec2v2.DescribeSecurityGroupsInput, t *string) { i.NextToken = t },
	)
}

func describeRegions() operation.Runner {
	return newOp(operation.Spec{
		Name:          "describe-regions",
		API:           "DescribeRegions",
		Usage:         "describe the regions enabled for the account",
		Select:        "Regions",
		Attrs:         []string{"RegionName", "OptInStatus", "Endpoint"},
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "RegionNames", Kind: operation.Strings, Usage: "regions to describe"},
			{Field: "AllRegions", Kind: operation.Bool, Usage: "include regions that are not enabled"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeRegionsInput, error) {
		return &ec2v2.DescribeRegionsInput{
			RegionNames: b.Strings("RegionNames"),
			AllRegions:  b.Bool("AllRegions"),
			Filters:     serverFilters(b),
			DryRun:      b.Bool("DryRun"),
		}, nil
	}, API.DescribeRegions)
}

func describeAvailabilityZones() operation.Runner {
	return newOp(operation.Spec{
		Name:          "describe-availability-zones",
		API:           "DescribeAvailabilityZones",
		Usage:         "describe availability, local and wavelength zones",
		Select:        "AvailabilityZones",
		Attrs:         []string{"ZoneName", "ZoneId", "ZoneType", "State", "RegionName"},
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "ZoneNames", Kind: operation.Strings, Usage: "zone names"},
			{Field: "ZoneIds", Kind: operation.Strings, Usage: "zone ids"},
			{Field: "AllAvailabilityZones", Kind: operation.Bool, Usage: "include zones that are not opted in"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeAvailabilityZonesInput, error) {
		return &ec2v2.DescribeAvailabilityZonesInput{
			ZoneNames:            b.Strings("ZoneNames"),
			ZoneIds:              b.Strings("ZoneIds"),
			AllAvailabilityZones: b.Bool("AllAvailabilityZones"),
			Filters:              serverFilters(b),
			DryRun:               b.Bool("DryRun"),
		}, nil
	}, API.DescribeAvailabilityZones)
}
