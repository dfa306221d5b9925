// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package operation is the template every AWS command follows: bound flags
// become a request, the request becomes one SDK call (or a series of calls
// following NextToken), and the response is projected through --select into
// records for the output pipeline. Mutating operations confirm first unless
// --force is given.
package operation
