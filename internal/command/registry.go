// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/service/beanstalk"
	"github.com/tfctl/awsctl/internal/service/ec2"
)

// Service is one top-level command group and its operations.
type Service struct {
	Name       string
	Usage      string
	Operations []operation.Runner
}

// Services returns every service group in command order.
func Services() []Service {
	return []Service{
		{Name: ec2.Service, Usage: "Amazon EC2 operations", Operations: ec2.Operations()},
		{Name: beanstalk.Service, Usage: "AWS Elastic Beanstalk operations", Operations: beanstalk.Operations()},
	}
}

// findService returns the named group.
func findService(name string) (Service, bool) {
	for _, s := range Services() {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}
