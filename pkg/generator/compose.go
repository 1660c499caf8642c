package generator

import (
	"bytes"
	"fmt"

	"docksmith/pkg/runtime"
	"docksmith/pkg/templates"

	"gopkg.in/yaml.v3"
)

// AppService is the name of the application service in compose.yaml
const AppService = "app"

// reserved environment keys derived from the options
const (
	envNodeEnv = "NODE_ENV"
	envPort    = "PORT"
)

// Compose is the subset of the compose file format docksmith writes.
type Compose struct {
	Version  string              `yaml:"version,omitempty"`
	Name     string              `yaml:"name,omitempty"`
	Services map[string]*Service `yaml:"services"`
}

// Service is one compose service.
type Service struct {
	Build       *Build         `yaml:"build,omitempty"`
	Ports       PortList       `yaml:"ports"`
	Environment map[string]any `yaml:"environment,omitempty"`
	Volumes     []string       `yaml:"volumes"`
	OrbStack    *OrbStack      `yaml:"x-orbstack,omitempty"`
}

// PortList holds HOST:CONTAINER mappings. They are written double-quoted so
// YAML 1.1 readers never take a value like 22:22 for a base-60 number.
type PortList []string

func (p PortList) MarshalYAML() (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, mapping := range p {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: mapping,
			Style: yaml.DoubleQuotedStyle,
		})
	}
	return seq, nil
}

// Build is the compose build section.
type Build struct {
	Context string `yaml:"context"`
	Target  string `yaml:"target"`
}

// OrbStack is the runtime extension block for accelerated runtimes.
type OrbStack struct {
	Accelerated bool `yaml:"accelerated"`
}

// BuildCompose assembles the compose document for opts.
func BuildCompose(opts Options) *Compose {
	info := runtime.GetRuntimeInfo(opts.Runtime)
	mode := templates.ModeName(opts.Development)

	env := map[string]any{}
	for k, v := range opts.Env {
		if k == envNodeEnv || k == envPort {
			continue
		}
		env[k] = v
	}
	env[envNodeEnv] = mode
	env[envPort] = opts.Port

	volumes := []string{}
	if opts.Development {
		volumes = append(volumes, ".:/app")
	}

	app := &Service{
		Build: &Build{
			Context: ".",
			Target:  mode,
		},
		Ports:       PortList{fmt.Sprintf("%d:%d", opts.Port, opts.Port)},
		Environment: env,
		Volumes:     volumes,
	}
	if info.Accelerated {
		app.OrbStack = &OrbStack{Accelerated: true}
	}

	return &Compose{
		Version:  info.ComposeVersion,
		Name:     opts.ProjectName,
		Services: map[string]*Service{AppService: app},
	}
}

// ToYAML encodes the compose document.
func (c *Compose) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode compose file: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode compose file: %w", err)
	}
	return buf.Bytes(), nil
}

func renderCompose(opts Options) ([]byte, error) {
	return BuildCompose(opts).ToYAML()
}
