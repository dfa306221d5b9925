// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ec2

import (
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/tfctl/awsctl/internal/operation"
)

var resources = operation.Param{
	Field:    "Resources",
	Kind:     operation.Strings,
	Usage:    "resource ids",
	Required: true,
	Aliases:  []string{"id"},
}

func createTags() operation.Runner {
	return newOp(operation.Spec{
		Name:    "create-tags",
		API:     "CreateTags",
		Usage:   "add or overwrite tags on resources",
		Select:  "^Resources",
		Confirm: true,
		Target:  "Resources",
		Params: []operation.Param{
			resources,
			{Field: "Tags", Kind: operation.Tags, Usage: "tags to set", Required: true},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.CreateTagsInput, error) {
		t, err := tags(b, "Tags")
		if err != nil {
			return nil, err
		}
		return &ec2v2.CreateTagsInput{
			Resources: b.Strings("Resources"),
			Tags:      t,
			DryRun:    b.Bool("DryRun"),
		}, nil
	}, API.CreateTags)
}

func deleteTags() operation.Runner {
	return newOp(operation.Spec{
		Name:    "delete-tags",
		API:     "DeleteTags",
		Usage:   "remove tags from resources; an empty value matches any value",
		Select:  "^Resources",
		Confirm: true,
		Target:  "Resources",
		Params: []operation.Param{
			resources,
			{Field: "Tags", Kind: operation.Tags, Usage: "tags to remove (omit to remove all)"},
			dryRun,
		},
	}, func(b *operation.Bag) (*ec2v2.DeleteTagsInput, error) {
		t, err := tags(b, "Tags")
		if err != nil {
			return nil, err
		}
		// Key= removes the tag whatever its value.
		for i := range t {
			if *t[i].Value == "" {
				t[i].Value = nil
			}
		}
		return &ec2v2.DeleteTagsInput{
			Resources: b.Strings("Resources"),
			Tags:      t,
			DryRun:    b.Bool("DryRun"),
		}, nil
	}, API.DeleteTags)
}
