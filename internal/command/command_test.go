// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/operation"
)

type gatewaysOutput struct {
	Gateways []struct {
		Id    string
		State string
	}
}

type fakeRunner struct {
	spec  operation.Spec
	inv   *operation.Invocation
	err   error
	calls int
}

func (f *fakeRunner) Describe() operation.Spec { return f.spec }

func (f *fakeRunner) Flags() []cli.Flag {
	return []cli.Flag{&cli.StringFlag{Name: "select", Value: f.spec.Select}}
}

func (f *fakeRunner) ResponseType() reflect.Type { return reflect.TypeOf(gatewaysOutput{}) }

func (f *fakeRunner) Invoke(context.Context, *cli.Command, *operation.Env) (*operation.Invocation, error) {
	f.calls++
	return f.inv, f.err
}

func records(t *testing.T, docs ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		require.True(t, json.Valid([]byte(d)), d)
		out = append(out, json.RawMessage(d))
	}
	return out
}

func runOp(t *testing.T, r operation.Runner, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	oar := &OperationActionRunner{
		Runner: r,
		NewEnv: func(*cli.Command) *operation.Env {
			return &operation.Env{Stdout: &out, Stderr: io.Discard}
		},
	}

	flags := append(r.Flags(),
		&cli.BoolFlag{Name: "schema"},
		&cli.BoolFlag{Name: "tldr"},
	)
	flags = append(flags, NewGlobalFlags()...)

	name := r.Describe().Name
	cmd := &cli.Command{Name: name, Flags: flags, Action: oar.Run}
	err := cmd.Run(t.Context(), append([]string{name}, args...))
	return out.String(), err
}

func gatewayRunner(t *testing.T, defaultSelect bool) *fakeRunner {
	return &fakeRunner{
		spec: operation.Spec{
			Service: "ec2",
			Name:    "describe-vpn-gateways",
			Select:  "VpnGateways",
			Attrs:   []string{"VpnGatewayId:Id", "State"},
		},
		inv: &operation.Invocation{
			DefaultSelect: defaultSelect,
			Records: records(t,
				`{"VpnGatewayId":"vgw-2","State":"pending","Type":"ipsec.1"}`,
				`{"VpnGatewayId":"vgw-1","State":"available","Type":"ipsec.1"}`,
			),
		},
	}
}

func TestOperationActionRunner_DefaultAttrs(t *testing.T) {
	out, err := runOp(t, gatewayRunner(t, true), "--output", "json", "--sort", "Id")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"Id":"vgw-1","State":"available"},{"Id":"vgw-2","State":"pending"}]`, out)
}

func TestOperationActionRunner_CustomSelectUsesRecordKeys(t *testing.T) {
	out, err := runOp(t, gatewayRunner(t, false), "--output", "json", "--sort", "VpnGatewayId")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"State":"available","Type":"ipsec.1","VpnGatewayId":"vgw-1"},
		{"State":"pending","Type":"ipsec.1","VpnGatewayId":"vgw-2"}
	]`, out)
}

func TestOperationActionRunner_ClientFilterAndExtraAttrs(t *testing.T) {
	out, err := runOp(t, gatewayRunner(t, true),
		"--output", "json", "--filter", "State=available", "--attrs", "Type")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Id":"vgw-1","State":"available","Type":"ipsec.1"}]`, out)
}

func TestOperationActionRunner_ScalarRecords(t *testing.T) {
	r := &fakeRunner{
		spec: operation.Spec{Service: "ec2", Name: "delete-vpn-gateway", Select: "^VpnGatewayId"},
		inv:  &operation.Invocation{DefaultSelect: true, Records: records(t, `"vgw-1"`)},
	}
	out, err := runOp(t, r, "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Value":"vgw-1"}]`, out)
}

func TestOperationActionRunner_Declined(t *testing.T) {
	r := gatewayRunner(t, true)
	r.inv = &operation.Invocation{Declined: true}

	out, err := runOp(t, r)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 1, r.calls)
}

func TestOperationActionRunner_Error(t *testing.T) {
	r := gatewayRunner(t, true)
	r.inv, r.err = nil, errors.New("DescribeVpnGateways failed: boom")

	_, err := runOp(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestOperationActionRunner_Schema(t *testing.T) {
	r := gatewayRunner(t, true)

	out, err := runOp(t, r, "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Gateways")
	assert.Zero(t, r.calls, "--schema must not call AWS")
}

func TestOperationCommands_FlagNamesUnique(t *testing.T) {
	for _, svc := range Services() {
		for _, r := range svc.Operations {
			b := &OperationCommandBuilder{Runner: r}
			cmd := b.Build()

			seen := map[string]bool{}
			for _, f := range cmd.Flags {
				for _, n := range f.Names() {
					assert.False(t, seen[n], "%s %s: flag %s defined twice", svc.Name, cmd.Name, n)
					seen[n] = true
				}
			}
			assert.True(t, seen["region"], cmd.Name)
			assert.True(t, seen["select"], cmd.Name)
			assert.Equal(t, r.Describe().Confirm, seen["force"], cmd.Name)
		}
	}
}

func TestServices(t *testing.T) {
	svcs := Services()
	require.Len(t, svcs, 2)
	assert.Equal(t, "ec2", svcs[0].Name)
	assert.Equal(t, "eb", svcs[1].Name)

	_, ok := findService("eb")
	assert.True(t, ok)
	_, ok = findService("s3")
	assert.False(t, ok)
}

func TestInitApp(t *testing.T) {
	app, err := InitApp(t.Context(), []string{"awsctl", "ec2", "describe-vpcs"})
	require.NoError(t, err)

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"ec2", "eb", "ops", "history", "completion"}, names)

	ec2 := app.Commands[0]
	assert.Len(t, ec2.Commands, 22)
	assert.Equal(t, "ec2", GetMeta(ec2).Namespace)

	// Flags are sorted for --help.
	for _, c := range ec2.Commands {
		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0], c.Name)
		}
	}
}

func TestOps(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
		err  string
	}{
		{name: "all", args: nil, want: 34},
		{name: "one service", args: []string{"eb"}, want: 12},
		{name: "unknown service", args: []string{"s3"}, err: `unknown service "s3"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := &cli.Command{
				Name:   "ops",
				Flags:  append([]cli.Flag{&cli.BoolFlag{Name: "tldr"}}, NewGlobalFlags()...),
				Action: opsCommandAction(&out),
			}
			err := cmd.Run(t.Context(), append([]string{"ops", "--output", "json"}, tt.args...))
			if tt.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
				return
			}
			require.NoError(t, err)

			var rows []map[string]any
			require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
			assert.Len(t, rows, tt.want)
		})
	}
}

func TestOps_FilterPaged(t *testing.T) {
	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "ops",
		Flags:  append([]cli.Flag{&cli.BoolFlag{Name: "tldr"}}, NewGlobalFlags()...),
		Action: opsCommandAction(&out),
	}
	require.NoError(t, cmd.Run(t.Context(),
		[]string{"ops", "--output", "json", "--filter", "Command=describe-instances", "ec2"}))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "DescribeInstances", rows[0]["API"])
	assert.Equal(t, true, rows[0]["Paged"])
	assert.Equal(t, true, rows[0]["ServerFilter"])
}

func TestOps_ServerFilterTrait(t *testing.T) {
	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "ops",
		Flags:  append([]cli.Flag{&cli.BoolFlag{Name: "tldr"}}, NewGlobalFlags()...),
		Action: opsCommandAction(&out),
	}
	require.NoError(t, cmd.Run(t.Context(),
		[]string{"ops", "--output", "json", "--filter", "Command=describe-events", "eb"}))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, false, rows[0]["ServerFilter"])
}

type memHistory struct {
	entries map[history.Slot]*history.Entry
	purged  []int
}

func (m *memHistory) store() historyStore {
	return historyStore{
		load: func(service, command string, slot history.Slot) (*history.Entry, error) {
			if e, ok := m.entries[slot]; ok {
				return e, nil
			}
			return nil, history.ErrNotFound
		},
		purge: func(hours int) error {
			m.purged = append(m.purged, hours)
			return nil
		},
	}
}

func newMemHistory() *memHistory {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &memHistory{entries: map[history.Slot]*history.Entry{
		history.Previous: {
			ID: "a", Service: "ec2", Command: "describe-vpcs", Region: "us-east-1", Time: at,
			Response: json.RawMessage(`{"Vpcs":[{"VpcId":"vpc-1"}]}`),
		},
		history.Last: {
			ID: "b", Service: "ec2", Command: "describe-vpcs", Region: "us-east-1", Time: at.Add(time.Hour),
			Response:  json.RawMessage(`{"Vpcs":[{"VpcId":"vpc-1"},{"VpcId":"vpc-2"}]}`),
			NextToken: "tok-2",
		},
	}}
}

func runHistory(t *testing.T, mem *memHistory, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newHistoryCommand(meta.Meta{}, mem.store(), &out)
	err := cmd.Run(t.Context(), append([]string{"history"}, args...))
	return out.String(), err
}

func TestHistory_Show(t *testing.T) {
	mem := newMemHistory()

	out, err := runHistory(t, mem, "show", "--output", "json", "ec2", "describe-vpcs")
	require.NoError(t, err)
	assert.Contains(t, out, `"nextToken":"tok-2"`)

	out, err = runHistory(t, mem, "show", "--previous", "--output", "json", "ec2", "describe-vpcs")
	require.NoError(t, err)
	assert.NotContains(t, out, "tok-2")
	assert.Contains(t, out, `"region":"us-east-1"`)
}

func TestHistory_ShowUsage(t *testing.T) {
	_, err := runHistory(t, newMemHistory(), "show", "ec2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: awsctl history show")
}

func TestHistory_NextToken(t *testing.T) {
	mem := newMemHistory()

	out, err := runHistory(t, mem, "next-token", "ec2", "describe-vpcs")
	require.NoError(t, err)
	assert.Equal(t, "tok-2\n", out)

	mem.entries[history.Last].NextToken = ""
	_, err = runHistory(t, mem, "next-token", "ec2", "describe-vpcs")
	assert.ErrorIs(t, err, ErrNoNextToken)
}

func TestHistory_Diff(t *testing.T) {
	mem := newMemHistory()

	out, err := runHistory(t, mem, "diff", "ec2", "describe-vpcs")
	require.NoError(t, err)
	assert.Contains(t, out, "vpc-2")

	mem.entries[history.Last].Response = mem.entries[history.Previous].Response
	out, err = runHistory(t, mem, "diff", "ec2", "describe-vpcs")
	require.NoError(t, err)
	assert.Contains(t, out, "identical")
}

func TestHistory_DiffMissing(t *testing.T) {
	mem := newMemHistory()
	delete(mem.entries, history.Previous)

	_, err := runHistory(t, mem, "diff", "ec2", "describe-vpcs")
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestHistory_Purge(t *testing.T) {
	mem := newMemHistory()

	_, err := runHistory(t, mem, "purge", "--hours", "48")
	require.NoError(t, err)
	_, err = runHistory(t, mem, "purge")
	require.NoError(t, err)
	assert.Equal(t, []int{48, 0}, mem.purged)
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{
			"complete -F _awsctl awsctl",
			`"ec2 stop-instances")`,
			"--enforce",
			"--instance-ids --id",
			`"eb create-application-version")`,
			"--source-file",
		}},
		{"zsh", []string{
			"#compdef awsctl",
			"'describe-vpn-gateways:",
			"'eb:AWS Elastic Beanstalk operations'",
			"compdef _awsctl awsctl",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, writeCompletion(&out, tt.shell, Services()))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}

	assert.Error(t, writeCompletion(io.Discard, "fish", Services()))
}

func TestFlagWords(t *testing.T) {
	got := flagWords([]cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
		&cli.BoolFlag{Name: "force"},
	})
	assert.Equal(t, "--output -o --force", got)
}

func TestGlobalFlagsValidator(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{name: "none", args: nil},
		{name: "key pair", args: []string{"--access-key", "AKIA", "--secret-key", "s"}},
		{name: "access only", args: []string{"--access-key", "AKIA"}, err: "must be given together"},
		{name: "token alone", args: []string{"--session-token", "t"}, err: "--session-token requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AWS_REGION", "")
			cmd := &cli.Command{
				Name:   "x",
				Flags:  NewAWSFlags(),
				Before: func(ctx context.Context, c *cli.Command) (context.Context, error) { return ctx, GlobalFlagsValidator(ctx, c) },
				Action: func(context.Context, *cli.Command) error { return nil },
			}
			err := cmd.Run(t.Context(), append([]string{"x"}, tt.args...))
			if tt.err == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestSettingsFrom(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_PROFILE", "")

	var got string
	var profile string
	cmd := &cli.Command{
		Name:  "x",
		Flags: NewAWSFlags(),
		Action: func(_ context.Context, c *cli.Command) error {
			s := SettingsFrom(c)
			got, profile = s.Region, s.Profile
			return nil
		},
	}
	require.NoError(t, cmd.Run(t.Context(), []string{"x", "--profile", "dev"}))
	assert.Equal(t, "eu-west-1", got)
	assert.Equal(t, "dev", profile)
}

func TestMaxAttempts(t *testing.T) {
	saved := config.Config
	t.Cleanup(func() { config.Config = saved })

	load := func(body string) {
		path := filepath.Join(t.TempDir(), "awsctl.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		config.Config = config.Type{Namespace: "ec2"}
		_, err := config.Load(path)
		require.NoError(t, err)
	}

	load("retry:\n  max_attempts: 5\n")
	assert.Equal(t, 5, maxAttempts())

	load("retry:\n  max_attempts: 5\nec2:\n  retry:\n    max_attempts: 9\n")
	assert.Equal(t, 9, maxAttempts(), "service namespace wins")

	load("retry:\n  max_attempts: lots\n")
	assert.Equal(t, 0, maxAttempts())

	load("retry:\n  max_attempts: -3\n")
	assert.Equal(t, 0, maxAttempts())

	load("region: us-east-1\n")
	assert.Equal(t, 0, maxAttempts())
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	err := OutputValidator("xml")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "must be one of"))
	assert.Error(t, PaddingValidator(-1))
}
