// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters parses --filter expressions and applies them to service
// response records.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, override with AWSCTL_FILTER_DELIM).
//
// Operators:
//
//   - = : exact match (!= negates)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < > : ordering, numeric when the value is a number
//   - @ : substring, list membership or tag key presence
//   - / : regular expression
//
// A key with no operator tests for presence.
//
// Examples:
//
//   - "State=available"
//   - "InstanceType^t3."
//   - "AmazonSideAsn>64512"
//   - "Tags@env"
//   - "Name!@test"
//
// Keys are matched against attr output keys first (see the attrs package) and
// otherwise resolved as driller paths into the record.
//
// Keys prefixed with an underscore are server-side filters. They are not
// applied locally; ServerSide returns them so a command can pass them to the
// service (for EC2, as request Filters with '|' separated values).
package filters
