// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output filters, sorts and renders selected response records as a
// text table, json, yaml or raw JSON, and lists the selectable paths of SDK
// response types.
package output
