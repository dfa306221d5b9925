// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	"context"

	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/tfctl/awsctl/internal/operation"
)

// Service is the command group name.
const Service = "ec2"

// API is the subset of the EC2 client the commands use.
type API interface {
	AttachVpnGateway(context.Context, *ec2v2.AttachVpnGatewayInput, ...func(*ec2v2.Options)) (*ec2v2.AttachVpnGatewayOutput, error)
	DetachVpnGateway(context.Context, *ec2v2.DetachVpnGatewayInput, ...func(*ec2v2.Options)) (*ec2v2.DetachVpnGatewayOutput, error)
	CreateVpnGateway(context.Context, *ec2v2.CreateVpnGatewayInput, ...func(*ec2v2.Options)) (*ec2v2.CreateVpnGatewayOutput, error)
	DeleteVpnGateway(context.Context, *ec2v2.DeleteVpnGatewayInput, ...func(*ec2v2.Options)) (*ec2v2.DeleteVpnGatewayOutput, error)
	DescribeVpnGateways(context.Context, *ec2v2.DescribeVpnGatewaysInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeVpnGatewaysOutput, error)

	CreateNetworkInterface(context.Context, *ec2v2.CreateNetworkInterfaceInput, ...func(*ec2v2.Options)) (*ec2v2.CreateNetworkInterfaceOutput, error)
	DeleteNetworkInterface(context.Context, *ec2v2.DeleteNetworkInterfaceInput, ...func(*ec2v2.Options)) (*ec2v2.DeleteNetworkInterfaceOutput, error)
	DescribeNetworkInterfaces(context.Context, *ec2v2.DescribeNetworkInterfacesInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeNetworkInterfacesOutput, error)

	CreateCarrierGateway(context.Context, *ec2v2.CreateCarrierGatewayInput, ...func(*ec2v2.Options)) (*ec2v2.CreateCarrierGatewayOutput, error)
	DeleteCarrierGateway(context.Context, *ec2v2.DeleteCarrierGatewayInput, ...func(*ec2v2.Options)) (*ec2v2.DeleteCarrierGatewayOutput, error)
	DescribeCarrierGateways(context.Context, *ec2v2.DescribeCarrierGatewaysInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeCarrierGatewaysOutput, error)

	DescribeInstances(context.Context, *ec2v2.DescribeInstancesInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeInstancesOutput, error)
	StartInstances(context.Context, *ec2v2.StartInstancesInput, ...func(*ec2v2.Options)) (*ec2v2.StartInstancesOutput, error)
	StopInstances(context.Context, *ec2v2.StopInstancesInput, ...func(*ec2v2.Options)) (*ec2v2.StopInstancesOutput, error)
	TerminateInstances(context.Context, *ec2v2.TerminateInstancesInput, ...func(*ec2v2.Options)) (*ec2v2.TerminateInstancesOutput, error)

	DescribeVpcs(context.Context, *ec2v2.DescribeVpcsInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeVpcsOutput, error)
	DescribeSubnets(context.Context, *ec2v2.DescribeSubnetsInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(context.Context, *ec2v2.DescribeSecurityGroupsInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeSecurityGroupsOutput, error)
	DescribeRegions(context.Context, *ec2v2.DescribeRegionsInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeRegionsOutput, error)
	DescribeAvailabilityZones(context.Context, *ec2v2.DescribeAvailabilityZonesInput, ...func(*ec2v2.Options)) (*ec2v2.DescribeAvailabilityZonesOutput, error)

	CreateTags(context.Context, *ec2v2.CreateTagsInput, ...func(*ec2v2.Options)) (*ec2v2.CreateTagsOutput, error)
	DeleteTags(context.Context, *ec2v2.DeleteTagsInput, ...func(*ec2v2.Options)) (*ec2v2.DeleteTagsOutput, error)
}

var _ API = (*ec2v2.Client)(nil)

// newClient returns the client for an invocation. Tests swap it for a fake.
var newClient = func(ctx context.Context, env *operation.Env) (API, error) {
	return env.Clients.EC2(ctx, env.Settings)
}

// Operations returns every EC2 command.
func Operations() []operation.Runner {
	return []operation.Runner{
		attachVpnGateway(),
		detachVpnGateway(),
		createVpnGateway(),
		deleteVpnGateway(),
		describeVpnGateways(),
		createNetworkInterface(),
		deleteNetworkInterface(),
		describeNetworkInterfaces(),
		createCarrierGateway(),
		deleteCarrierGateway(),
		describeCarrierGateways(),
		describeInstances(),
		startInstances(),
		stopInstances(),
		terminateInstances(),
		describeVpcs(),
		describeSubnets(),
		describeSecurityGroups(),
		describeRegions(),
		describeAvailabilityZones(),
		createTags(),
		deleteTags(),
	}
}

type caller[I, O any] func(API, context.Context, *I, ...func(*ec2v2.Options)) (*O, error)

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

var dryRun = operation.Param{
	Field: "DryRun",
	Kind:  operation.Bool,
	Usage: "check permissions without making the request",
}

var maxResults = operation.Param{
	Field: "MaxResults",
	Kind:  operation.Int32,
	Usage: "page size used while iterating",
}

// serverFilters converts the underscore entries of --filter into request
// Filters. "_vpc-id=vpc-1|vpc-2" becomes {Name: vpc-id, Values: [vpc-1 vpc-2]}.
func serverFilters(b *operation.Bag) []ec2types.Filter {
	var out []ec2types.Filter
	for _, f := range b.ServerFilters() {
		name := f.Key
		out = append(out, ec2types.Filter{Name: &name, Values: f.Values()})
	}
	return out
}

func tags(b *operation.Bag, field string) ([]ec2types.Tag, error) {
	bound, err := b.Tags(field)
	if err != nil || bound == nil {
		return nil, err
	}
	out := make([]ec2types.Tag, 0, len(bound))
	for _, t := range bound {
		out = append(out, ec2types.Tag{Key: &t.Key, Value: &t.Value})
	}
	return out, nil
}

// tagSpecs tags the resource created by the request.
func tagSpecs(b *operation.Bag, rt ec2types.ResourceType) ([]ec2types.TagSpecification, error) {
	t, err := tags(b, "Tags")
	if err != nil || t == nil {
		return nil, err
	}
	return []ec2types.TagSpecification{{ResourceType: rt, Tags: t}}, nil
}

// enum lists the values of an SDK enum type.
func enum[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func value[T ~string](b *operation.Bag, field string) T {
	if s := b.String(field); s != nil {
		return T(*s)
	}
	return ""
}
