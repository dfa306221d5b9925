package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/awsctl/internal/command"
	"github.com/tfctl/awsctl/internal/operation"
)

// Extras holds the hand-written parts of the docs, keyed by
// <service>-<command>.
type Extras struct {
	Operations map[string]Extra `yaml:"operations"`
}

type Extra struct {
	Description string    `yaml:"description"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Extra
	ID        string
	Service   string
	Name      string
	API       string
	Short     string
	Usage     string
	Select    string
	Paginated bool
	Confirm   bool
	Filters   bool
	Flags     []Flag
	Date      string
	Version   string
}

type Outputs struct {
	Template *template.Template
	Folder   string
	Prefix   string
	Suffix   string
}

var mdTemplate = template.Must(template.New("md").Parse(`# awsctl {{.Service}} {{.Name}}

{{.Short}}. Calls the {{.API}} API.

` + "```" + `
{{.Usage}}
` + "```" + `
{{if .Description}}
{{.Description}}
{{end}}
Default select: ` + "`{{.Select}}`" + `{{if .Paginated}}. Results are paged automatically; use ` + "`--no-auto-iteration`" + ` to page by hand.{{end}}{{if .Confirm}} Asks for confirmation unless ` + "`--force`" + ` is given.{{end}}{{if .Filters}} A ` + "`--filter`" + ` entry with a leading ` + "`_`" + ` is sent to AWS as a request filter.{{else}} Only client-side ` + "`--filter`" + ` entries apply.{{end}}

## Flags

| flag | description | default |
|---|---|---|
{{- range .Flags}}
| ` + "`{{.Syntax}}`" + ` | {{.Description}} | {{.Default}} |
{{- end}}
{{if .Examples}}
## Examples
{{range .Examples}}
{{.Description}}:

` + "```" + `
{{.Command}}
` + "```" + `
{{end}}{{end}}{{if .Notes}}
## Notes
{{range .Notes}}
- {{.}}
{{- end}}
{{end}}
_Generated {{.Date}} for awsctl {{.Version}}._
`))

var tldrTemplate = template.Must(template.New("tldr").Parse(`# awsctl {{.Service}} {{.Name}}

> {{.Short}}.
> Calls the {{.API}} API.
{{range .Examples}}
- {{.Description}}:

` + "`{{.Command}}`" + `
{{end}}`))

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	var extras Extras
	if data, err := os.ReadFile(filepath.Join(docs, "templates", "awsctl.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &extras); err != nil {
			panic(err)
		}
	}

	types := []Outputs{
		{Template: mdTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: tldrTemplate, Folder: filepath.Join(docs, "tldr"), Prefix: "awsctl-", Suffix: ".md"},
	}

	date := time.Now().Format("January 2, 2006")
	version := getVersion()

	for _, svc := range command.Services() {
		for _, r := range svc.Operations {
			metadata := templateData(r, extras)
			metadata.Date = date
			metadata.Version = version

			for _, t := range types {
				if err := os.MkdirAll(t.Folder, 0755); err != nil {
					panic(err)
				}

				path := filepath.Join(t.Folder, t.Prefix+metadata.ID+t.Suffix)
				file, err := os.Create(path)
				if err != nil {
					panic(err)
				}
				fmt.Println("Generating", path)

				if err := t.Template.Execute(file, metadata); err != nil {
					panic(err)
				}

				file.Close()
			}
		}
	}
}

func templateData(r operation.Runner, extras Extras) TemplateData {
	spec := r.Describe()
	id := spec.Service + "-" + spec.Name

	return TemplateData{
		Extra:     extras.Operations[id],
		ID:        id,
		Service:   spec.Service,
		Name:      spec.Name,
		API:       spec.API,
		Short:     strings.ToUpper(spec.Usage[:1]) + spec.Usage[1:],
		Usage:     "awsctl " + spec.Service + " " + spec.Name + " [options]",
		Select:    spec.Select,
		Paginated: spec.Paginated,
		Confirm:   spec.Confirm,
		Filters:   spec.ServerFilters,
		Flags:     flags(r.Flags()),
	}
}

type usageFlag interface {
	GetUsage() string
	GetValue() string
	TakesValue() bool
}

func flags(in []cli.Flag) []Flag {
	out := make([]Flag, 0, len(in))
	for _, f := range in {
		names := f.Names()
		fl := Flag{ID: names[0]}

		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}
		fl.Syntax = strings.Join(syntax, ", ")

		if uf, ok := f.(usageFlag); ok {
			fl.Description = uf.GetUsage()
			if uf.TakesValue() {
				fl.Syntax += " value"
				fl.Default = uf.GetValue()
			}
		}
		out = append(out, fl)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
