// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package ec2

import (
	"bytes"
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/operation"
)

// fakeAPI embeds API so only the methods a test needs are implemented.
type fakeAPI struct {
	API

	attach    []*ec2v2.AttachVpnGatewayInput
	createVgw []*ec2v2.CreateVpnGatewayInput
	vgws      []*ec2v2.DescribeVpnGatewaysInput
	instances []*ec2v2.DescribeInstancesInput
	stop      []*ec2v2.StopInstancesInput
	delTags   []*ec2v2.DeleteTagsInput
}

func (f *fakeAPI) AttachVpnGateway(_ context.Context, in *ec2v2.AttachVpnGatewayInput, _ ...func(*ec2v2.Options)) (*ec2v2.AttachVpnGatewayOutput, error) {
	f.attach = append(f.attach, in)
	return &ec2v2.AttachVpnGatewayOutput{
		VpcAttachment: &ec2types.VpcAttachment{VpcId: in.VpcId, State: ec2types.AttachmentStatusAttaching},
	}, nil
}

func (f *fakeAPI) CreateVpnGateway(_ context.Context, in *ec2v2.CreateVpnGatewayInput, _ ...func(*ec2v2.Options)) (*ec2v2.CreateVpnGatewayOutput, error) {
	f.createVgw = append(f.createVgw, in)
	return &ec2v2.CreateVpnGatewayOutput{
		VpnGateway: &ec2types.VpnGateway{VpnGatewayId: aws.String("vgw-new"), Type: in.Type},
	}, nil
}

func (f *fakeAPI) DescribeVpnGateways(_ context.Context, in *ec2v2.DescribeVpnGatewaysInput, _ ...func(*ec2v2.Options)) (*ec2v2.DescribeVpnGatewaysOutput, error) {
	f.vgws = append(f.vgws, in)
	return &ec2v2.DescribeVpnGatewaysOutput{
		VpnGateways: []ec2types.VpnGateway{
			{VpnGatewayId: aws.String("vgw-1"), State: ec2types.VpnStateAvailable},
			{VpnGatewayId: aws.String("vgw-2"), State: ec2types.VpnStateDeleted},
		},
	}, nil
}

func (f *fakeAPI) DescribeInstances(_ context.Context, in *ec2v2.DescribeInstancesInput, _ ...func(*ec2v2.Options)) (*ec2v2.DescribeInstancesOutput, error) {
	// Copy the request since the runner reuses it across pages.
	req := *in
	f.instances = append(f.instances, &req)

	if in.NextToken == nil {
		return &ec2v2.DescribeInstancesOutput{
			Reservations: []ec2types.Reservation{{ReservationId: aws.String("r-1")}},
			NextToken:    aws.String("page-2"),
		}, nil
	}
	return &ec2v2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{{ReservationId: aws.String("r-2")}},
	}, nil
}

func (f *fakeAPI) StopInstances(_ context.Context, in *ec2v2.StopInstancesInput, _ ...func(*ec2v2.Options)) (*ec2v2.StopInstancesOutput, error) {
	f.stop = append(f.stop, in)
	return &ec2v2.StopInstancesOutput{}, nil
}

func (f *fakeAPI) DeleteTags(_ context.Context, in *ec2v2.DeleteTagsInput, _ ...func(*ec2v2.Options)) (*ec2v2.DeleteTagsOutput, error) {
	f.delTags = append(f.delTags, in)
	return &ec2v2.DeleteTagsOutput{}, nil
}

func useFake(t *testing.T) *fakeAPI {
	t.Helper()
	fake := &fakeAPI{}
	orig := newClient
	newClient = func(context.Context, *operation.Env) (API, error) { return fake, nil }
	t.Cleanup(func() { newClient = orig })
	return fake
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

func invoke(t *testing.T, name string, args ...string) *operation.Invocation {
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
			return err
		},
	}
	require.NoError(t, cmd.Run(t.Context(), append([]string{name}, args...)))
	require.NoError(t, err)
	return inv
}

func TestOperations(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 22)

	seen := map[string]bool{}
	for _, r := range ops {
		spec := r.Describe()
		assert.Equal(t, Service, spec.Service)
		assert.False(t, seen[spec.Name], "duplicate %s", spec.Name)
		seen[spec.Name] = true

		assert.NotEmpty(t, spec.API)
		assert.NotEmpty(t, spec.Select, spec.Name)
		if spec.Confirm {
			assert.NotEmpty(t, spec.Target, spec.Name)
			_, ok := spec.Param(spec.Target)
			assert.True(t, ok, "%s target %s is not a param", spec.Name, spec.Target)
		}
		_, err := operation.ParseSelector(spec.Select, spec)
		assert.NoError(t, err, spec.Name)
	}

	paged := []string{
		"describe-network-interfaces",
		"describe-carrier-gateways",
		"describe-instances",
		"describe-vpcs",
		"describe-subnets",
		"describe-security-groups",
	}
	for _, name := range paged {
		assert.True(t, find(t, name).Describe().Paginated, name)
	}
	assert.False(t, find(t, "describe-vpn-gateways").Describe().Paginated)
}

func TestAttachVpnGateway(t *testing.T) {
	fake := useFake(t)

	inv := invoke(t, "attach-vpn-gateway", "--vpc-id", "vpc-1", "--vpn-gateway-id", "vgw-1", "--force")

	require.Len(t, fake.attach, 1)
	assert.Equal(t, "vpc-1", aws.ToString(fake.attach[0].VpcId))
	assert.Equal(t, "vgw-1", aws.ToString(fake.attach[0].VpnGatewayId))
	assert.Nil(t, fake.attach[0].DryRun)

	require.Len(t, inv.Records, 1)
	assert.JSONEq(t, `{"State":"attaching","VpcId":"vpc-1"}`, string(inv.Records[0]))
}

func TestCreateVpnGateway(t *testing.T) {
	fake := useFake(t)

	invoke(t, "create-vpn-gateway",
		"--type", "ipsec.1", "--amazon-side-asn", "64512", "--tags", "Name=edge", "--force")

	require.Len(t, fake.createVgw, 1)
	in := fake.createVgw[0]
	assert.Equal(t, ec2types.GatewayTypeIpsec1, in.Type)
	assert.Equal(t, int64(64512), aws.ToInt64(in.AmazonSideAsn))
	assert.Nil(t, in.AvailabilityZone)
	require.Len(t, in.TagSpecifications, 1)
	assert.Equal(t, ec2types.ResourceTypeVpnGateway, in.TagSpecifications[0].ResourceType)
	assert.Equal(t, "edge", aws.ToString(in.TagSpecifications[0].Tags[0].Value))
}

func TestDescribeVpnGateways_ServerFilters(t *testing.T) {
	fake := useFake(t)

	inv := invoke(t, "describe-vpn-gateways",
		"--filter", "_state=available|pending,_attachment.vpc-id=vpc-1,State=available")

	require.Len(t, fake.vgws, 1)
	filters := fake.vgws[0].Filters
	require.Len(t, filters, 2)
	assert.Equal(t, "state", aws.ToString(filters[0].Name))
	assert.Equal(t, []string{"available", "pending"}, filters[0].Values)
	assert.Equal(t, "attachment.vpc-id", aws.ToString(filters[1].Name))

	// Client-side filtering happens at output; both records come back here.
	assert.Len(t, inv.Records, 2)
}

func TestDescribeVpnGateways_NoFilters(t *testing.T) {
	fake := useFake(t)

	invoke(t, "describe-vpn-gateways", "--id", "vgw-1")

	require.Len(t, fake.vgws, 1)
	assert.Nil(t, fake.vgws[0].Filters)
	assert.Equal(t, []string{"vgw-1"}, fake.vgws[0].VpnGatewayIds)
}

func TestDescribeInstances_Pages(t *testing.T) {
	fake := useFake(t)

	inv := invoke(t, "describe-instances", "--max-results", "5")

	require.Len(t, fake.instances, 2)
	assert.Nil(t, fake.instances[0].NextToken)
	assert.Equal(t, "page-2", aws.ToString(fake.instances[1].NextToken))
	assert.Equal(t, int32(5), aws.ToInt32(fake.instances[1].MaxResults))

	require.Len(t, inv.Records, 2)
	assert.Contains(t, string(inv.Records[1]), "r-2")
}

func TestStopInstances_EnforceFlag(t *testing.T) {
	fake := useFake(t)

	invoke(t, "stop-instances", "--id", "i-1", "--id", "i-2", "--enforce", "--force")

	require.Len(t, fake.stop, 1)
	assert.Equal(t, []string{"i-1", "i-2"}, fake.stop[0].InstanceIds)
	assert.True(t, aws.ToBool(fake.stop[0].Force))
	assert.Nil(t, fake.stop[0].Hibernate)
}

func TestDeleteTags(t *testing.T) {
	fake := useFake(t)

	inv := invoke(t, "delete-tags", "--resources", "vpc-1", "--tags", "Name=", "--tags", "Env=dev", "--force")

	require.Len(t, fake.delTags, 1)
	got := fake.delTags[0].Tags
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Value, "Key= removes any value")
	assert.Equal(t, "dev", aws.ToString(got[1].Value))

	require.Len(t, inv.Records, 1)
	assert.JSONEq(t, `"vpc-1"`, string(inv.Records[0]))
}
