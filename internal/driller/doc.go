// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dot paths against service response records,
// including list indexing and AWS tag lookups.
package driller
