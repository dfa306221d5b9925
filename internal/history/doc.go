// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package history records the last two invocations of every command in the
// on-disk cache so that responses can be re-read, diffed and paged manually.
package history
