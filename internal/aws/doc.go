// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains the AWS SDK plumbing shared by every service command:
// config loading with command-line overrides, a process-wide client cache and
// translation of SDK errors into user-facing messages.
package aws
