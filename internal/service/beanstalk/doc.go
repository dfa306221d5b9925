// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package beanstalk defines the `awsctl eb` commands for Elastic Beanstalk.
// create-application-version can also upload a local source bundle to the
// account's Elastic Beanstalk bucket before creating the version.
package beanstalk
