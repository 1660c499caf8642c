// Package validate checks a directory for a complete, well-formed set of
// generated container configuration files.
package validate

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"docksmith/pkg/generator"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed schema/compose.schema.json
var composeSchema string

var portMapping = regexp.MustCompile(`^(\d+):(\d+)(/(tcp|udp))?$`)

// Issue is one validation finding.
type Issue struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.File, i.Message)
}

// Report collects the outcome of a validation run.
type Report struct {
	Dir     string   `json:"dir"`
	Checked []string `json:"checked"`
	Issues  []Issue  `json:"issues"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) add(file, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{File: file, Message: fmt.Sprintf(format, args...)})
}

// Validator runs the checks.
type Validator struct {
	schema gojsonschema.JSONLoader
	logger *zap.Logger
}

// New creates a Validator using the embedded compose schema.
func New(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		schema: gojsonschema.NewStringLoader(composeSchema),
		logger: logger,
	}
}

// Run validates the artifacts in dir. The returned error is reserved for an
// unusable directory; findings are reported through the Report.
func (v *Validator) Run(dir string) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access path '%s': %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path '%s' is not a directory", dir)
	}

	report := &Report{Dir: dir, Issues: []Issue{}}

	for _, name := range generator.ArtifactNames {
		report.Checked = append(report.Checked, name)
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				report.add(name, "file is missing")
			} else {
				report.add(name, "cannot access file: %v", err)
			}
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, generator.ComposeFileName))
	if err == nil {
		v.checkCompose(report, content)
	}

	v.logger.Debug("validation finished",
		zap.String("dir", dir),
		zap.Int("issues", len(report.Issues)))

	return report, nil
}

func (v *Validator) checkCompose(report *Report, content []byte) {
	file := generator.ComposeFileName

	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		report.add(file, "invalid YAML: %v", err)
		return
	}
	if doc == nil {
		report.add(file, "file is empty")
		return
	}

	result, err := gojsonschema.Validate(v.schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		report.add(file, "schema validation error: %v", err)
		return
	}
	for _, e := range result.Errors() {
		report.add(file, "%s", e.String())
	}

	for _, issue := range portIssues(doc) {
		report.add(file, "%s", issue)
	}
}

// portIssues checks every service's port entries are host:container.
func portIssues(doc any) []string {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	services, ok := root["services"].(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(services))
	for n := range services {
		names = append(names, n)
	}
	sort.Strings(names)

	var issues []string
	for _, name := range names {
		svc, ok := services[name].(map[string]any)
		if !ok {
			continue
		}
		ports, ok := svc["ports"].([]any)
		if !ok {
			continue
		}
		for _, p := range ports {
			s, ok := p.(string)
			if !ok || !validPortMapping(s) {
				issues = append(issues, fmt.Sprintf("service %q: port %v is not a host:container mapping", name, p))
			}
		}
	}
	return issues
}

func validPortMapping(s string) bool {
	m := portMapping.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	for _, part := range m[1:3] {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 65535 {
			return false
		}
	}
	return true
}
