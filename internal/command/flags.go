// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/log"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the selectable response paths",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags returns the output flags shared by every command that
// renders records.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters; a leading _ sends the filter to AWS",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	if len(params) == 2 {
		for _, f := range flags {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "output" {
				NameSpacedValueChainFlagFromConfigFile(params[0], params[1], sf)
			}
		}
	}

	return
}

// NewAWSFlags returns the connection flags. params[0] is the config
// namespace and params[1] the config file; when given, region and profile
// also come from <ns>.region and region in the file.
func NewAWSFlags(params ...string) []cli.Flag {
	region := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_REGION"),
			cli.EnvVar("AWS_DEFAULT_REGION"),
		),
	}
	profile := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "shared config profile",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_PROFILE"),
		),
	}

	if len(params) == 2 {
		region = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], region)
		profile = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], profile)
	}

	return []cli.Flag{
		region,
		profile,
		&cli.StringFlag{
			Name:  "endpoint-url",
			Usage: "send requests to this endpoint instead of the service default",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_ENDPOINT_URL"),
			),
		},
		&cli.StringFlag{
			Name:  "access-key",
			Usage: "access key id, used with --secret-key",
		},
		&cli.StringFlag{
			Name:  "secret-key",
			Usage: "secret access key",
		},
		&cli.StringFlag{
			Name:  "session-token",
			Usage: "session token for temporary credentials",
		},
	}
}

// SettingsFrom reads the connection flags.
func SettingsFrom(cmd *cli.Command) aws.Settings {
	return aws.Settings{
		AccessKey:    cmd.String("access-key"),
		Endpoint:     cmd.String("endpoint-url"),
		Profile:      cmd.String("profile"),
		Region:       cmd.String("region"),
		SecretKey:    cmd.String("secret-key"),
		SessionToken: cmd.String("session-token"),
		MaxAttempts:  maxAttempts(),
	}
}

// maxAttempts reads retry.max_attempts from the config file, honoring the
// service namespace. Negative or missing values mean the SDK default.
func maxAttempts() int {
	n, err := config.GetInt("retry.max_attempts", 0)
	if err != nil {
		log.Warnf("ignoring retry.max_attempts: %v", err)
		return 0
	}
	return max(n, 0)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
