// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/meta"
)

// completionOp is one operation as the completion scripts see it.
type completionOp struct {
	Service string
	Name    string
	Usage   string
	Flags   string
}

type completionData struct {
	Services []Service
	Ops      []completionOp
	Common   string
}

var completionFuncs = template.FuncMap{
	"names": func(svc Service) string {
		names := make([]string, 0, len(svc.Operations))
		for _, r := range svc.Operations {
			names = append(names, r.Describe().Name)
		}
		return strings.Join(names, " ")
	},
	"quote": func(s string) string {
		return strings.ReplaceAll(s, "'", "")
	},
}

var bashCompletionTemplate = template.Must(template.New("bash").Funcs(completionFuncs).Parse(`# bash completion for awsctl
_awsctl()
{
    local cur prev
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "{{range .Services}}{{.Name}} {{end}}ops history completion --help --version" -- "$cur") )
        return 0
    fi

    local group=${COMP_WORDS[1]}
    if [[ ${COMP_CWORD} -eq 2 ]]; then
        case "$group" in
{{- range .Services}}
        {{.Name}})
            COMPREPLY=( $(compgen -W "{{names .}}" -- "$cur") )
            ;;
{{- end}}
        history)
            COMPREPLY=( $(compgen -W "show next-token diff purge" -- "$cur") )
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
        ops)
            COMPREPLY=( $(compgen -W "{{range .Services}}{{.Name}} {{end}}{{.Common}}" -- "$cur") )
            ;;
        esac
        return 0
    fi

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    local opts="{{.Common}}"
    case "$group ${COMP_WORDS[2]}" in
{{- range .Ops}}
    "{{.Service}} {{.Name}}")
        opts="$opts {{.Flags}}"
        ;;
{{- end}}
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _awsctl awsctl
`))

var zshCompletionTemplate = template.Must(template.New("zsh").Funcs(completionFuncs).Parse(`#compdef awsctl

_awsctl() {
  local -a cmds
  cmds=(
{{- range .Services}}
    '{{.Name}}:{{quote .Usage}}'
{{- end}}
    'ops:list the available operations'
    'history:inspect recorded invocations'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'awsctl commands' cmds
    return
  fi

  local -a ops
  case $words[2] in
{{- range $svc := .Services}}
    {{$svc.Name}})
      ops=(
{{- range $svc.Operations}}{{with .Describe}}
        '{{.Name}}:{{quote .Usage}}'
{{- end}}{{end}}
      )
      ;;
{{- end}}
    history)
      ops=('show:show a recorded invocation' 'next-token:print the next token' 'diff:diff the previous and last responses' 'purge:remove recorded invocations')
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      return
      ;;
  esac

  if (( CURRENT == 3 )); then
    _describe -t ops 'awsctl operations' ops
    return
  fi

  local -a opts
  opts=({{.Common}})
  case "$words[2] $words[3]" in
{{- range .Ops}}
    "{{.Service}} {{.Name}}")
      opts+=({{.Flags}})
      ;;
{{- end}}
  esac
  compadd -- $opts
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _awsctl awsctl
`))

// flagWords renders every name of every flag as it is typed on the command
// line.
func flagWords(flags []cli.Flag) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		for _, n := range f.Names() {
			if len(n) == 1 {
				words = append(words, "-"+n)
			} else {
				words = append(words, "--"+n)
			}
		}
	}
	return strings.Join(words, " ")
}

func newCompletionData(services []Service) completionData {
	common := append([]cli.Flag{tldrFlag, schemaFlag}, NewGlobalFlags()...)
	common = append(common, NewAWSFlags()...)

	data := completionData{Services: services, Common: flagWords(common)}
	for _, svc := range services {
		for _, r := range svc.Operations {
			spec := r.Describe()
			data.Ops = append(data.Ops, completionOp{
				Service: spec.Service,
				Name:    spec.Name,
				Usage:   spec.Usage,
				Flags:   flagWords(r.Flags()),
			})
		}
	}
	return data
}

// writeCompletion renders the script for shell into w.
func writeCompletion(w io.Writer, shell string, services []Service) error {
	var t *template.Template
	switch shell {
	case "bash":
		t = bashCompletionTemplate
	case "zsh":
		t = zshCompletionTemplate
	default:
		return fmt.Errorf("unsupported shell %q: use bash or zsh", shell)
	}
	return t.Execute(w, newCompletionData(services))
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		default:
			fmt.Fprintln(os.Stderr, "usage: awsctl completion [bash|zsh]")
			return nil
		}
	}
	return writeCompletion(os.Stdout, shell, Services())
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "awsctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
