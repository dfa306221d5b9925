// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/output"
)

// OperationActionRunner runs one AWS operation command. It handles the
// short-circuit flags, invokes the operation and hands the selected records
// to the output pipeline.
type OperationActionRunner struct {
	Runner  operation.Runner
	Clients *aws.ClientCache

	// NewEnv overrides how the operation's environment is built.
	NewEnv func(*cli.Command) *operation.Env
}

// Run executes the operation with the provided context and command.
func (oar *OperationActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	spec := oar.Runner.Describe()
	log.Debugf("Executing %s %s for %v", spec.Service, spec.Name, m.Args)

	env := oar.env(cmd)

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, spec.Service+"-"+spec.Name) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, oar.Runner.ResponseType(), env.Stdout) {
		return nil
	}

	// Step 3: Invoke.
	inv, err := oar.Runner.Invoke(ctx, cmd, env)
	if err != nil {
		return err
	}
	if inv.Declined {
		return nil
	}

	// Step 4: BuildAttrs + debug.
	raw := operation.Records(inv.Records)
	defaults := spec.Attrs
	if !inv.DefaultSelect || len(defaults) == 0 {
		defaults = output.DefaultAttrs(raw).Keys()
	}
	attrs := BuildAttrs(cmd, defaults...)
	log.Debugf("attrs: %v", attrs)

	// Step 5: Emit.
	return output.SliceDiceSpit(raw, attrs, cmd, env.Stdout)
}

func (oar *OperationActionRunner) env(cmd *cli.Command) *operation.Env {
	if oar.NewEnv != nil {
		return oar.NewEnv(cmd)
	}
	return operation.NewEnv(oar.Clients, SettingsFrom(cmd))
}
