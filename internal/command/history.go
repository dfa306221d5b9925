// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/differ"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/output"
)

var historyDefaultAttrs = []string{"time", "service", "command", "region", "nextToken", "error"}

// ErrNoNextToken is returned when the last invocation finished its listing.
var ErrNoNextToken = errors.New("no next token recorded")

// historyStore is the slice of the history package the commands use.
type historyStore struct {
	load  func(service, command string, slot history.Slot) (*history.Entry, error)
	purge func(hours int) error
}

var defaultHistoryStore = historyStore{load: history.Load, purge: history.Purge}

func historyShowAction(store historyStore, w io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args, err := argsOrUsage(cmd, 2)
		if err != nil {
			return err
		}

		slot := history.Last
		if cmd.Bool("previous") {
			slot = history.Previous
		}

		e, err := store.load(args[0], args[1], slot)
		if err != nil {
			return err
		}

		raw, err := json.Marshal([]*history.Entry{e})
		if err != nil {
			return fmt.Errorf("failed to marshal history entry: %w", err)
		}
		return output.SliceDiceSpit(raw, BuildAttrs(cmd, historyDefaultAttrs...), cmd, w)
	}
}

func historyNextTokenAction(store historyStore, w io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args, err := argsOrUsage(cmd, 2)
		if err != nil {
			return err
		}

		e, err := store.load(args[0], args[1], history.Last)
		if err != nil {
			return err
		}
		if e.NextToken == "" {
			return fmt.Errorf("%w for %s %s", ErrNoNextToken, args[0], args[1])
		}

		fmt.Fprintln(w, e.NextToken)
		return nil
	}
}

func historyDiffAction(store historyStore, w io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args, err := argsOrUsage(cmd, 2)
		if err != nil {
			return err
		}

		prev, err := store.load(args[0], args[1], history.Previous)
		if err != nil {
			return err
		}
		last, err := store.load(args[0], args[1], history.Last)
		if err != nil {
			return err
		}
		log.Debugf("diffing %s and %s", prev.ID, last.ID)

		return differ.Diff(w, prev.Response, last.Response, differ.Options{
			Ignore: cmd.StringSlice("ignore"),
			Color:  cmd.Bool("color"),
		})
	}
}

func historyPurgeAction(store historyStore) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		hours := cmd.Int("hours")
		if err := store.purge(hours); err != nil {
			return fmt.Errorf("failed to purge history: %w", err)
		}
		log.Debugf("history purged: hours=%d", hours)
		return nil
	}
}

func historyCommandBuilder(m meta.Meta) *cli.Command {
	return newHistoryCommand(m, defaultHistoryStore, os.Stdout)
}

func newHistoryCommand(m meta.Meta, store historyStore, w io.Writer) *cli.Command {
	metadata := map[string]any{"meta": m}

	return &cli.Command{
		Name:     "history",
		Usage:    "inspect recorded invocations",
		Metadata: metadata,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "show a recorded invocation",
				UsageText: "awsctl history show <service> <command> [--previous]",
				Metadata:  metadata,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:        "previous",
						Usage:       "show the invocation before the last one",
						HideDefault: true,
					},
				}, NewGlobalFlags("history", config.Config.Source)...),
				Action: historyShowAction(store, w),
			},
			{
				Name:      "next-token",
				Usage:     "print the next token from the last invocation",
				UsageText: "awsctl history next-token <service> <command>",
				Metadata:  metadata,
				Action:    historyNextTokenAction(store, w),
			},
			{
				Name:      "diff",
				Usage:     "diff the previous and last responses",
				UsageText: "awsctl history diff <service> <command>",
				Metadata:  metadata,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "color",
						Aliases: []string{"c"},
						Usage:   "enable colored diff output",
					},
					&cli.StringSliceFlag{
						Name:  "ignore",
						Usage: "top-level response keys to leave out of the comparison",
					},
				},
				Action: historyDiffAction(store, w),
			},
			{
				Name:      "purge",
				Usage:     "remove recorded invocations",
				UsageText: "awsctl history purge [--hours N]",
				Metadata:  metadata,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "hours",
						Usage: "only remove invocations older than this; 0 removes everything",
						Value: 0,
					},
				},
				Action: historyPurgeAction(store),
			},
		},
	}
}
