// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for awsctl's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/awsctl.yaml or $HOME/.config/awsctl.yaml
//   - Windows: %APPDATA%/awsctl.yaml
//
// Actual resolution relies on os.UserConfigDir which follows platform
// conventions. AWSCTL_CFG_FILE overrides the location.
//
// Keys are dotted paths. Lookups try the active namespace (usually the
// service group, e.g. "ec2") first:
//
//	region: us-east-1
//	ec2:
//	  region: us-west-2
//	  mine:
//	    - --filter _owner-id=123456789012
//	history:
//	  purge_hours: 72
package config
