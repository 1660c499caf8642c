package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"docksmith/pkg/generator"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AddOptions describes one add operation.
type AddOptions struct {
	Name string // service key in compose.yaml
	Type string // catalog type, defaults to Name
}

// Adder inserts catalog services into an existing compose.yaml.
type Adder struct {
	logger *zap.Logger
}

// NewAdder creates an Adder.
func NewAdder(logger *zap.Logger) *Adder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adder{logger: logger}
}

// Add reads dir/compose.yaml, inserts the service and makes the app service
// depend on it, then rewrites the file atomically.
func (a *Adder) Add(dir string, opts AddOptions) (Definition, error) {
	if opts.Name == "" {
		return Definition{}, fmt.Errorf("service name is required")
	}
	serviceType := opts.Type
	if serviceType == "" {
		serviceType = opts.Name
	}
	def, err := Lookup(serviceType)
	if err != nil {
		return Definition{}, err
	}

	path := filepath.Join(dir, generator.ComposeFileName)
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Definition{}, fmt.Errorf("%w in %s: run 'docksmith init' first", ErrNoComposeFile, dir)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, err := Insert(content, opts.Name, def)
	if err != nil {
		return Definition{}, err
	}

	set := &generator.ArtifactSet{Artifacts: []generator.Artifact{
		{Name: generator.ComposeFileName, Content: updated},
	}}
	if err := set.Commit(dir); err != nil {
		return Definition{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	a.logger.Debug("added service",
		zap.String("name", opts.Name),
		zap.String("type", def.Type),
		zap.String("file", path))

	return def, nil
}

// Insert adds service name built from def to a compose document. Keys and
// comments already present in the document are preserved.
func Insert(content []byte, name string, def Definition) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", generator.ComposeFileName, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s is not a mapping", generator.ComposeFileName)
	}
	root := doc.Content[0]

	servicesNode := mappingValue(root, "services")
	if servicesNode == nil || servicesNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s has no services section", generator.ComposeFileName)
	}
	if mappingValue(servicesNode, name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceExists, name)
	}

	serviceNode, err := definitionNode(def, name)
	if err != nil {
		return nil, err
	}
	servicesNode.Content = append(servicesNode.Content, scalar(name), serviceNode)

	if app := mappingValue(servicesNode, generator.AppService); app != nil && app.Kind == yaml.MappingNode {
		addDependency(app, name)
	}

	if def.DataPath != "" {
		volumes := mappingValue(root, "volumes")
		if volumes == nil || volumes.Kind != yaml.MappingNode {
			volumes = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			setMappingValue(root, "volumes", volumes)
		}
		if mappingValue(volumes, volumeName(name)) == nil {
			volumes.Content = append(volumes.Content, scalar(volumeName(name)), &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"})
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", generator.ComposeFileName, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", generator.ComposeFileName, err)
	}
	return buf.Bytes(), nil
}

type serviceEntry struct {
	Image       string            `yaml:"image"`
	Ports       generator.PortList `yaml:"ports"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Volumes     []string          `yaml:"volumes,omitempty"`
}

func definitionNode(def Definition, name string) (*yaml.Node, error) {
	entry := serviceEntry{
		Image:       def.Image,
		Ports:       generator.PortList{strconv.Itoa(def.Port) + ":" + strconv.Itoa(def.Port)},
		Environment: def.Env,
	}
	if def.DataPath != "" {
		entry.Volumes = []string{volumeName(name) + ":" + def.DataPath}
	}

	var node yaml.Node
	if err := node.Encode(entry); err != nil {
		return nil, fmt.Errorf("failed to encode service %s: %w", name, err)
	}
	return &node, nil
}

func addDependency(app *yaml.Node, name string) {
	deps := mappingValue(app, "depends_on")
	if deps == nil {
		deps = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		setMappingValue(app, "depends_on", deps)
	}

	switch deps.Kind {
	case yaml.SequenceNode:
		for _, n := range deps.Content {
			if n.Value == name {
				return
			}
		}
		deps.Content = append(deps.Content, scalar(name))
	case yaml.MappingNode:
		// long syntax: depends_on: {db: {condition: service_started}}
		if mappingValue(deps, name) != nil {
			return
		}
		cond := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setMappingValue(cond, "condition", scalar("service_started"))
		deps.Content = append(deps.Content, scalar(name), cond)
	}
}

func volumeName(service string) string {
	return service + "-data"
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, scalar(key), value)
}

// ServiceNames lists the services defined in a compose document.
func ServiceNames(content []byte) ([]string, error) {
	var doc struct {
		Services map[string]yaml.Node `yaml:"services"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", generator.ComposeFileName, err)
	}
	names := make([]string, 0, len(doc.Services))
	for n := range doc.Services {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
