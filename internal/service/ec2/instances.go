// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/tfctl/awsctl/internal/operation"
)

var stateChangeAttrs = []string{"InstanceId", "PreviousState.Name:Previous", "CurrentState.Name:Current"}

var instanceIds = operation.Param{
	Field:    "InstanceIds",
	Kind:     operation.Strings,
	Usage:    "instances",
	Required: true,
	Aliases:  []string{"id"},
}

func describeInstances() operation.Runner {
	return paged(newOp(operation.Spec{
		Name:   "describe-instances",
		API:    "DescribeInstances",
		Usage:  "describe instances, grouped by reservation",
		Select: "Reservations",
		Attrs: []string{
			"ReservationId",
			"Instances[0].InstanceId:InstanceId",
			"Instances[0].InstanceType:Type",
			"Instances[0].State.Name:State",
			"Instances[0].PrivateIpAddress:PrivateIp",
			"Instances[0].Tags[Name]:Name",
		},
		ServerFilters: true,
		Params: []operation.Param{
			{Field: "InstanceIds", Kind: operation.Strings, Usage: "instances to describe", Aliases: []string{"id"}},
			maxResults,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DescribeInstancesInput, error) {
		return &ec2v2.DescribeInstancesInput{
			InstanceIds: b.Strings("InstanceIds"),
			Filters:     serverFilters(b),
			MaxResults:  b.Int32("MaxResults"),
			DryRun:      b.Bool("DryRun"),
		}, nil
	}, API.DescribeInstances),
		func(o *ec2v2.DescribeInstancesOutput) *string { return o.NextToken },
		func(i *ec2v2.DescribeInstancesInput, t *string) { i.NextToken = t },
	)
}

func startInstances() operation.Runner {
	return newOp(operation.Spec{
		Name:    "start-instances",
		API:     "StartInstances",
		Usage:   "start stopped instances",
		Select:  "StartingInstances",
		Attrs:   stateChangeAttrs,
		Confirm: true,
		Target:  "InstanceIds",
		Params: []operation.Param{
			instanceIds,
			{Field: "AdditionalInfo", Kind: operation.String, Usage: "reserved"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.StartInstancesInput, error) {
		return &ec2v2.StartInstancesInput{
			InstanceIds:    b.Strings("InstanceIds"),
			AdditionalInfo: b.String("AdditionalInfo"),
			DryRun:         b.Bool("DryRun"),
		}, nil
	}, API.StartInstances)
}

func stopInstances() operation.Runner {
	return newOp(operation.Spec{
		Name:    "stop-instances",
		API:     "StopInstances",
		Usage:   "stop running instances",
		Select:  "StoppingInstances",
		Attrs:   stateChangeAttrs,
		Confirm: true,
		Target:  "InstanceIds",
		Params: []operation.Param{
			instanceIds,
			{Field: "Hibernate", Kind: operation.Bool, Usage: "hibernate instead of stop"},
			// --force skips the prompt, so the API's Force flag gets its own name.
			{Field: "Force", Kind: operation.Bool, Usage: "force the instances to stop", Flag: "enforce"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.StopInstancesInput, error) {
		return &ec2v2.StopInstancesInput{
			InstanceIds: b.Strings("InstanceIds"),
			Hibernate:   b.Bool("Hibernate"),
			Force:       b.Bool("Force"),
			DryRun:      b.Bool("DryRun"),
		}, nil
	}, API.StopInstances)
}

func terminateInstances() operation.Runner {
	return newOp(operation.Spec{
		Name:    "terminate-instances",
		API:     "TerminateInstances",
		Usage:   "terminate instances",
		Select:  "TerminatingInstances",
		Attrs:   stateChangeAttrs,
		Confirm: true,
		Target:  "InstanceIds",
		Params: []operation.Param{
			instanceIds,
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.TerminateInstancesInput, error) {
		return &ec2v2.TerminateInstancesInput{
			InstanceIds: b.Strings("InstanceIds"),
			DryRun:      b.Bool("DryRun"),
		}, nil
	}, API.TerminateInstances)
}
