// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
)

// ErrorContext carries input context for improving API error messages.
type ErrorContext struct {
	Service   string // e.g., "ec2"
	Operation string // SDK API name, e.g. "AttachVpnGateway"
	Region    string
}

// NameResolutionError reports that the service endpoint could not be
// resolved, which almost always means a bad region.
type NameResolutionError struct {
	Region string
	Err    error
}

func (e *NameResolutionError) Error() string {
	return fmt.Sprintf("Name resolution failure attempting to reach service in region %s "+
		"(as supplied to the --region parameter or from configured shell default)",
		nonEmpty(e.Region, "<unknown>"))
}

func (e *NameResolutionError) Unwrap() error { return e.Err }

// OperationError is an AWS API error annotated with the failing operation.
type OperationError struct {
	Operation string
	Code      string
	Message   string
	Err       error
}

func (e *OperationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed: %s", e.Operation, e.Code)
	}
	return fmt.Sprintf("%s failed: %s: %s", e.Operation, e.Code, e.Message)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Friendly wraps an SDK error with a contextual, user-friendly message while
// preserving the original error for further inspection via errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	op := nonEmpty(ctx.Operation, "request")

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &NameResolutionError{Region: ctx.Region, Err: err}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s cancelled: %w", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s timed out: %w", op, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &OperationError{
			Operation: op,
			Code:      apiErr.ErrorCode(),
			Message:   apiErr.ErrorMessage(),
			Err:       err,
		}
	}

	// Unknown error: provide generic context and wrap
	return fmt.Errorf("%s failed in region %s: %w", op, nonEmpty(ctx.Region, "<unknown>"), err)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
