// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/output"
)

// opRecord is one row of the ops listing.
type opRecord struct {
	Service   string
	Command   string
	API       string
	Select    string
	Paginated bool
	Confirm   bool
	Filters   bool
	Target    string `json:",omitempty"`
	Usage     string
}

var opsDefaultAttrs = []string{"Service", "Command", "API", "Select", "Paginated:Paged", "Confirm", "Filters:ServerFilter"}

func opsCommandAction(w io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		m := GetMeta(cmd)
		log.Debugf("Executing ops for %v", m.Args)

		if ShortCircuitTLDR(ctx, cmd, "ops") {
			return nil
		}

		services := Services()
		if name := cmd.Args().First(); name != "" {
			svc, ok := findService(name)
			if !ok {
				return fmt.Errorf("unknown service %q", name)
			}
			services = []Service{svc}
		}

		records := make([]opRecord, 0)
		for _, svc := range services {
			for _, r := range svc.Operations {
				spec := r.Describe()
				records = append(records, opRecord{
					Service:   spec.Service,
					Command:   spec.Name,
					API:       spec.API,
					Select:    spec.Select,
					Paginated: spec.Paginated,
					Confirm:   spec.Confirm,
					Filters:   spec.ServerFilters,
					Target:    spec.Target,
					Usage:     spec.Usage,
				})
			}
		}

		raw, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal operations: %w", err)
		}

		return output.SliceDiceSpit(raw, BuildAttrs(cmd, opsDefaultAttrs...), cmd, w)
	}
}

func opsCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ops",
		Usage:     "list the available operations",
		UsageText: "awsctl ops [service]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{tldrFlag}, NewGlobalFlags("ops", config.Config.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: opsCommandAction(os.Stdout),
	}
}
