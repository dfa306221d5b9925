// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ec2 defines the `awsctl ec2` commands. Each command maps its flags
// onto one EC2 request type; the operation package does the rest.
package ec2
