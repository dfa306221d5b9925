// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tfctl/awsctl/internal/command"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/version"
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// loadEnvFile loads AWSCTL_ENV_FILE, or ./.env when present. Variables
// already in the environment win.
func loadEnvFile() {
	path := os.Getenv("AWSCTL_ENV_FILE")
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return
		}
	}
	if err := godotenv.Load(path); err != nil {
		log.Warnf("failed to load env file %s: %v", path, err)
		return
	}
	log.Debugf("env file loaded: path=%s", path)
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args, lo, hi := expandSet(args)
	log.Debugf("args after set processing: args=%v injected=%d:%d", args, lo, hi)

	return deduplicateFlags(args, lo, hi)
}

// purgeHistory drops recorded invocations older than history.purge_hours.
func purgeHistory() {
	hours, _ := config.GetInt("history.purge_hours", 0)
	if hours <= 0 {
		return
	}
	if err := history.Purge(hours); err != nil {
		log.Debugf("history purge err: err=%v", err)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	purgeHistory()

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()
	loadEnvFile()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	// Ctrl-C cancels the in-flight AWS call and stops auto-iteration.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return initAndRunApp(ctx, args)
}

// expandSet expands an explicit @set argument at its position from the
// <service>.<set> config list. Without one, <service>.defaults is injected
// right after the operation name so that flags on the command line follow,
// and win over, the configured ones. It also returns the half-open range
// [lo, hi) of the injected tokens.
func expandSet(args []string) ([]string, int, int) {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args, 0, 0
	}

	// Look for an explicit @set argument starting from index 2.
	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			rest := append(append([]string{}, args[:i]...), args[i+1:]...)
			out := injectConfigSet(rest, args[1]+"."+args[i][1:], i)
			return out, i, i + len(out) - len(rest)
		}
	}

	insertIdx := min(3, len(args))
	out := injectConfigSet(args, args[1]+".defaults", insertIdx)
	return out, insertIdx, insertIdx + len(out) - len(args)
}

// injectConfigSet splices the entries of the config list at key into args at
// insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, _ := config.GetStringSlice(key)
	return insertEntries(args, entries, insertIdx)
}

// insertEntries splits each entry on whitespace and splices the fields into
// a copy of args at insertIdx.
func insertEntries(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops the injected flags, those starting inside
// [lo, hi), that are also given outside that range, so a flag typed on the
// command line overrides the same flag from a config set. Repeats among typed
// flags are all kept because list and tag flags accumulate. A flag not
// written as --name=value takes the following token as its value unless that
// token is itself a flag. Everything after "--" is kept in place.
func deduplicateFlags(args []string, lo, hi int) []string {
	type group struct {
		key      string
		injected bool
		tokens   []string
	}

	groups := make([]group, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			groups = append(groups, group{tokens: args[i:]})
			break
		}
		if !isFlag(a) {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		key, _, hasValue := strings.Cut(a, "=")
		g := group{key: key, injected: i >= lo && i < hi, tokens: []string{a}}
		if !hasValue && i+1 < len(args) && !isFlag(args[i+1]) && args[i+1] != "--" {
			g.tokens = append(g.tokens, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	typed := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g.key != "" && !g.injected {
			typed[g.key] = true
		}
	}

	out := make([]string, 0, len(args))
	for _, g := range groups {
		if g.injected && typed[g.key] {
			log.Debugf("flag overridden: flag=%s", g.key)
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

func isFlag(s string) bool {
	return len(s) > 1 && strings.HasPrefix(s, "-")
}
