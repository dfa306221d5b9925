// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"context"
	"io"
	"os"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/prompt"
)

// Env carries the process-wide dependencies an operation runs against.
type Env struct {
	Clients  *aws.ClientCache
	Settings aws.Settings

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Confirm asks the user to approve a mutating call. Defaults to an
	// interactive prompt on Stdin.
	Confirm func(ctx context.Context, message string) (bool, error)

	// Record stores the invocation. Nil disables history.
	Record func(*history.Entry) error
}

// NewEnv returns an Env wired to the terminal and on-disk history.
func NewEnv(clients *aws.ClientCache, settings aws.Settings) *Env {
	return &Env{
		Clients:  clients,
		Settings: settings,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Record:   history.Record,
	}
}

// Region is the effective region for error messages and history.
func (e *Env) Region(ctx context.Context) string {
	if e.Clients == nil {
		return e.Settings.Region
	}
	return e.Clients.Region(ctx, e.Settings)
}

func (e *Env) confirm(ctx context.Context, message string) (bool, error) {
	if e.Confirm != nil {
		return e.Confirm(ctx, message)
	}
	return prompt.Confirm(ctx, e.stdin(), e.stderr(), message)
}

func (e *Env) stdin() io.Reader {
	if e.Stdin == nil {
		return os.Stdin
	}
	return e.Stdin
}

func (e *Env) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *Env) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}
