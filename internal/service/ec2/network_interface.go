// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/tfctl/awsctl/internal/operation"
)

var networkInterfaceAttrs = []string{
	"NetworkInterfaceId",
	"Status",
	"InterfaceType",
	"SubnetId",
	"PrivateIpAddress",
	"Description",
}

func createNetworkInterface() operation.Runner {
	return newOp(operation.Spec{
		Name:    "create-network-interface",
		API:     "CreateNetworkInterface",
		Usage:   "create a network interface in a subnet",
		Select:  "NetworkInterface",
		Attrs:   networkInterfaceAttrs,
		Confirm: true,
		Target:  "SubnetId",
		Params: []operation.Param{
			{Field: "SubnetId", Kind: operation.String, Usage: "subnet for the interface", Required: true},
			{Field: "Description", Kind: operation.String, Usage: "description"},
			{Field: "Groups", Kind: operation.Strings, Usage: "security group ids"},
			{
				Field: "InterfaceType",
				Kind:  operation.String,
				Usage: "interface type",
				Enum:  enum(ec2types.NetworkInterfaceCreationType("").Values()),
			},
			{Field: "PrivateIpAddress", Kind: operation.String, Usage: "primary private IPv4 address"},
			{Field: "SecondaryPrivateIpAddressCount", Kind: operation.Int32, Usage: "number of secondary private IPv4 addresses"},
			{Field: "Ipv6AddressCount", Kind: operation.Int32, Usage: "number of IPv6 addresses"},
			{Field: "ClientToken", Kind: operation.String, Usage: "idempotency token"},
			{Field: "Tags", Kind: operation.Tags, Usage: "tags for the new interface"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.CreateNetworkInterfaceInput, error) {
		specs, err := tagSpecs(b, ec2types.ResourceTypeNetworkInterface)
		if err != nil {
			return nil, err
		}
		return &ec2v2.CreateNetworkInterfaceInput{
			SubnetId:                       b.String("SubnetId"),
			Description:                    b.String("Description"),
			Groups:                         b.Strings("Groups"),
			InterfaceType:                  value[ec2types.NetworkInterfaceCreationType](b, "InterfaceType"),
			PrivateIpAddress:               b.String("PrivateIpAddress"),
			SecondaryPrivateIpAddressCount: b.Int32("SecondaryPrivateIpAddressCount"),
			Ipv6AddressCount:               b.Int32("Ipv6AddressCount"),
			ClientToken:                    b.String("ClientToken"),
			TagSpecifications:              specs,
			DryRun:                         b.Bool("DryRun"),
		}, nil
	}, API.CreateNetworkInterface)
}

func deleteNetworkInterface() operation.Runner {
	return newOp(operation.Spec{
		Name:    "delete-network-interface",
		API:     "DeleteNetworkInterface",
		Usage:   "delete a network interface",
		Select:  "^NetworkInterfaceId",
		Confirm: true,
		Target:  "NetworkInterfaceId",
		Params: []operation.Param{
			{Field: "NetworkInterfaceId", Kind: operation.String, Usage: "network interface", Required: true},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DeleteNetworkInterfaceInput, error) {
		return &ec2v2.DeleteNetworkInterfaceInput{
			NetworkInterfaceId: b.String("NetworkInterfaceId"),
			DryRun:             b.Bool("DryRun"),
		}, nil
	}, API.DeleteNetworkInterface)
}

func describeNetworkInterfaces() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:          "describe-network-interfaces",
		API:           "DescribeNetworkInterfaces",
		Usage:         "describe network interfaces",
		Select:        "NetworkInterfaces",
		Attrs:         networkInterfaceAttrs,
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "NetworkInterfaceIds", Kind: operation.Strings, Usage: "interfaces to describe", Aliases: []string{"id"}},
			maxResults,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeNetworkInterfacesInput, error) {
		return &ec2v2.DescribeNetworkInterfacesInput{
			NetworkInterfaceIds: b.Strings("NetworkInterfaceIds"),
			Filters:             serverFilters(b),
			MaxResults:          b.Int32("MaxResults"),
			DryRun:              b.Bool("DryRun"),
		}, nil
	}, API.DescribeNetworkInterfaces),
		func(o *ec2v2.DescribeNetworkInterfacesOutput) *string { return o.NextToken },
		func(i *ec2v2.DescribeNetworkInterfacesInput, t *string) { i.NextToken = t },
	)
}
