// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/operation"
)

// OperationCommandBuilder constructs the cli.Command for one AWS operation.
// The builder wires metadata, adds the operation's own flags, the tldr and
// schema flags, the output flags and the AWS connection flags, and sets up
// validators.
type OperationCommandBuilder struct {
	Runner  operation.Runner
	Clients *aws.ClientCache
	Meta    meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (ocb *OperationCommandBuilder) Build() *cli.Command {
	spec := ocb.Runner.Describe()

	flags := append(ocb.Runner.Flags(), tldrFlag, schemaFlag)
	flags = append(flags, NewGlobalFlags(spec.Service, config.Config.Source)...)
	flags = append(flags, NewAWSFlags(spec.Service, config.Config.Source)...)

	runner := &OperationActionRunner{
		Runner:  ocb.Runner,
		Clients: ocb.Clients,
	}

	return &cli.Command{
		Name:      spec.Name,
		Usage:     spec.Usage,
		UsageText: "awsctl " + spec.Service + " " + spec.Name + " [options]",
		Metadata: map[string]any{
			"meta": ocb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: runner.Run,
	}
}

// serviceCommandBuilder builds the group command holding every operation of
// the service.
func serviceCommandBuilder(svc Service, clients *aws.ClientCache, m meta.Meta) *cli.Command {
	cmd := &cli.Command{
		Name:  svc.Name,
		Usage: svc.Usage,
		Metadata: map[string]any{
			"meta": m,
		},
	}

	for _, r := range svc.Operations {
		b := &OperationCommandBuilder{Runner: r, Clients: clients, Meta: m}
		cmd.Commands = append(cmd.Commands, b.Build())
	}

	sort.Slice(cmd.Commands, func(i, j int) bool {
		return cmd.Commands[i].Name < cmd.Commands[j].Name
	})

	return cmd
}
