// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for awsctl. It builds one
// command per AWS operation under its service group, wires flags, validators
// and actions, and adds the ops, history and completion commands.
package command
