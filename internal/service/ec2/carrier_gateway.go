// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/tfctl/awsctl/internal/operation"
)

var carrierGatewayAttrs = []string{"CarrierGatewayId", "VpcId", "State", "OwnerId", "Tags[Name]:Name"}

func createCarrierGateway() operation.Runner {
	return newOp(operation.Spec{
		Name:    "create-carrier-gateway",
		API:     "CreateCarrierGateway",
		Usage:   "create a carrier gateway for a Wavelength VPC",
		Select:  "CarrierGateway",
		Attrs:   carrierGatewayAttrs,
		Confirm: true,
		Target:  "VpcId",
		Params: []operation.Param{
			{Field: "VpcId", Kind: operation.String, Usage: "VPC for the gateway", Required: true},
			{Field: "ClientToken", Kind: operation.String, Usage: "idempotency token"},
			{Field: "Tags", Kind: operation.Tags, Usage: "tags for the new gateway"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.CreateCarrierGatewayInput, error) {
		specs, err := tagSpecs(b, ec2types.ResourceTypeCarrierGateway)
		if err != nil {
			return nil, err
		}
		return &ec2v2.CreateCarrierGatewayInput{
			VpcId:             b.String("VpcId"),
			ClientToken:       b.String("ClientToken"),
			TagSpecifications: specs,
			DryRun:            b.Bool("DryRun"),
		}, nil
	}, API.CreateCarrierGateway)
}

func deleteCarrierGateway() operation.Runner {
	return newOp(operation.Spec{
		Name:    "delete-carrier-gateway",
		API:     "DeleteCarrierGateway",
		Usage:   "delete a carrier gateway",
		Select:  "CarrierGateway",
		Attrs:   carrierGatewayAttrs,
		Confirm: true,
		Target:  "CarrierGatewayId",
		Params: []operation.Param{
			{Field: "CarrierGatewayId", Kind: operation.String, Usage: "carrier gateway", Required: true},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DeleteCarrierGatewayInput, error) {
		return &ec2v2.DeleteCarrierGatewayInput{
			CarrierGatewayId: b.String("CarrierGatewayId"),
			DryRun:           b.Bool("DryRun"),
		}, nil
	}, API.DeleteCarrierGateway)
}

func describeCarrierGateways() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:          "describe-carrier-gateways",
		API:           "DescribeCarrierGateways",
		Usage:         "describe carrier gateways",
		Select:        "CarrierGateways",
		Attrs:         carrierGatewayAttrs,
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "CarrierGatewayIds", Kind: operation.Strings, Usage: "gateways to describe", Aliases: []string{"id"}},
			maxResults,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeCarrierGatewaysInput, error) {
		return &ec2v2.DescribeCarrierGatewaysInput{
			CarrierGatewayIds: b.Strings("CarrierGatewayIds"),
			Filters:           serverFilters(b),
			MaxResults:        b.Int32("MaxResults"),
			DryRun:            b.Bool("DryRun"),
		}, nil
	}, API.DescribeCarrierGateways),
		func(o *ec2v2.DescribeCarrierGatewaysOutput) *string { return o.NextToken },
		func(i *ec2v2.DescribeCarrierGatewaysInput, t *string) { i.NextToken = t },
	)
}
