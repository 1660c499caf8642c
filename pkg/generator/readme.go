package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"text/template"

	"docksmith/pkg/runtime"
	"docksmith/pkg/templates"
)

//go:embed templates/README.Docker.md.tmpl
var readmeTemplate string

var readmeTmpl = template.Must(template.New("readme").Parse(readmeTemplate))

type readmeData struct {
	ProjectName    string
	Framework      string
	ComposeCommand string
	Development    bool
	Port           int
	DebugPort      int
	Env            []string
}

// environmentLines lists NODE_ENV and PORT first, then extra variables by name.
func environmentLines(opts Options) []string {
	lines := []string{
		fmt.Sprintf("%s=%s", envNodeEnv, templates.ModeName(opts.Development)),
		fmt.Sprintf("%s=%d", envPort, opts.Port),
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		if k == envNodeEnv || k == envPort {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}
	return lines
}

func renderReadme(opts Options) ([]byte, error) {
	data := readmeData{
		ProjectName:    opts.ProjectName,
		Framework:      opts.Framework,
		ComposeCommand: runtime.GetRuntimeInfo(opts.Runtime).ComposeCommand,
		Development:    opts.Development,
		Port:           opts.Port,
		DebugPort:      opts.DebugPort(),
		Env:            environmentLines(opts),
	}

	var buf bytes.Buffer
	if err := readmeTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render README: %w", err)
	}
	return buf.Bytes(), nil
}
