// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/tfctl/awsctl/internal/operation"
)

var vpnGatewayAttrs = []string{"VpnGatewayId", "State", "Type", "AmazonSideAsn", "AvailabilityZone", "Tags[Name]:Name"}

func attachVpnGateway() operation.Runner {
	return newOp(operation.Spec{
		Name:    "attach-vpn-gateway",
		API:     "AttachVpnGateway",
		Usage:   "attach a virtual private gateway to a VPC",
		Select:  "VpcAttachment",
		Attrs:   []string{"VpcId", "State"},
		Confirm: true,
		Target:  "VpnGatewayId",
		Params: []operation.Param{
			{Field: "VpcId", Kind: operation.String, Usage: "VPC to attach to", Required: true},
			{Field: "VpnGatewayId", Kind: operation.String, Usage: "virtual private gateway", Required: true},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.AttachVpnGatewayInput, error) {
		return &ec2v2.AttachVpnGatewayInput{
			VpcId:        b.String("VpcId"),
			VpnGatewayId: b.String("VpnGatewayId"),
			DryRun:       b.Bool("DryRun"),
		}, nil
	}, API.AttachVpnGateway)
}

func detachVpnGateway() operation.Runner {
	return newOp(operation.Spec{
		Name:    "detach-vpn-gateway",
		API:     "DetachVpnGateway",
		Usage:   "detach a virtual private gateway from a VPC",
		Select:  "^VpnGatewayId",
		Confirm: true,
		Target:  "VpnGatewayId",
		Params: []operation.Param{
			{Field: "VpcId", Kind: operation.String, Usage: "VPC to detach from", Required: true},
			{Field: "VpnGatewayId", Kind: operation.String, Usage: "virtual private gateway", Required: true},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DetachVpnGatewayInput, error) {
		return &ec2v2.DetachVpnGatewayInput{
			VpcId:        b.String("VpcId"),
			VpnGatewayId: b.String("VpnGatewayId"),
			DryRun:       b.Bool("DryRun"),
		}, nil
	}, API.DetachVpnGateway)
}

func createVpnGateway() operation.Runner {
	return newOp(operation.Spec{
		Name:    "create-vpn-gateway",
		API:     "CreateVpnGateway",
		Usage:   "create a virtual private gateway",
		Select:  "VpnGateway",
		Attrs:   vpnGatewayAttrs,
		Confirm: true,
		Target:  "Type",
		Params: []operation.Param{
			{
				Field:    "Type",
				Kind:     operation.String,
				Usage:    "connection type",
				Required: true,
				Enum:     enum(ec2types.GatewayType("").Values()),
			},
			{Field: "AmazonSideAsn", Kind: operation.Int64, Usage: "private ASN for the Amazon side of a BGP session"},
			{Field: "AvailabilityZone", Kind: operation.String, Usage: "availability zone"},
			{Field: "Tags", Kind: operation.Tags, Usage: "tags for the new gateway"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.CreateVpnGatewayInput, error) {
		specs, err := tagSpecs(b, ec2types.ResourceTypeVpnGateway)
		if err != nil {
			return nil, err
		}
		return &ec2v2.CreateVpnGatewayInput{
			Type:              value[ec2types.GatewayType](b, "Type"),
			AmazonSideAsn:     b.Int64("AmazonSideAsn"),
			AvailabilityZone:  b.String("AvailabilityZone"),
			TagSpecifications: specs,
			DryRun:            b.Bool("DryRun"),
		}, nil
	}, API.CreateVpnGateway)
}

func deleteVpnGateway() operation.Runner {
	return newOp(operation.Spec{
		Name:    "delete-vpn-gateway",
		API:     "DeleteVpnGateway",
		Usage:   "delete a virtual private gateway",
		Select:  "^VpnGatewayId",
		Confirm: true,
		Target:  "VpnGatewayId",
		Params: []operation.Param{
			{Field: "VpnGatewayId", Kind: operation.String, Usage: "virtual private gateway", Required: true},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DeleteVpnGatewayInput, error) {
		return &ec2v2.DeleteVpnGatewayInput{
			VpnGatewayId: b.String("VpnGatewayId"),
			DryRun:       b.Bool("DryRun"),
		}, nil
	}, API.DeleteVpnGateway)
}

func describeVpnGateways() operation.Runner {
	return newOp(operation.Spec{
		Name:          "describe-vpn-gateways",
		API:           "DescribeVpnGateways",
		Usage:         "describe virtual private gateways",
		Select:        "VpnGateways",
		Attrs:         vpnGatewayAttrs,
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "VpnGatewayIds", Kind: operation.Strings, Usage: "gateways to describe", Aliases: []string{"id"}},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeVpnGatewaysInput, error) {
		return &ec2v2.DescribeVpnGatewaysInput{
			VpnGatewayIds: b.Strings("VpnGatewayIds"),
			Filters:       serverFilters(b),
			DryRun:        b.Bool("DryRun"),
		}, nil
	}, API.DescribeVpnGateways)
}
