// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that no single validator can.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	access, secret := c.String("access-key"), c.String("secret-key")
	if (access == "") != (secret == "") {
		return errors.New("--access-key and --secret-key must be given together")
	}
	if c.String("session-token") != "" && access == "" {
		return errors.New("--session-token requires --access-key and --secret-key")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func PaddingValidator(value any) error {
	if n, ok := value.(int); !ok || n < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}
