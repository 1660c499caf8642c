package manifests

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

const poetryDependenciesHeader = "[tool.poetry.dependencies]"

// ParseRequirements parses a pip requirements file. Each non-blank line
// contributes the text before its first "==" or ">=" pin.
func ParseRequirements(content []byte) Set {
	deps := Set{}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		deps.Add(stripPin(line))
	}

	return deps
}

// stripPin cuts a requirement line at the earliest "==" or ">=" operator.
func stripPin(line string) string {
	cut := len(line)
	for _, op := range []string{"==", ">="} {
		if i := strings.Index(line, op); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(line[:cut])
}

// ParsePyproject parses a pyproject.toml document. Keys of
// [tool.poetry.dependencies] and PEP 621 [project].dependencies are
// collected. When the document is not valid TOML the poetry dependency table
// is recovered with a line scan bounded by the next section header.
func ParsePyproject(content []byte) Set {
	var doc struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}

	if _, err := toml.Decode(string(content), &doc); err != nil {
		return scanPoetryDependencies(string(content))
	}

	deps := Set{}
	for name := range doc.Tool.Poetry.Dependencies {
		deps.Add(name)
	}
	for _, req := range doc.Project.Dependencies {
		deps.Add(requirementName(req))
	}
	return deps
}

// scanPoetryDependencies extracts the body of [tool.poetry.dependencies] up to
// the next section header (or end of text) and takes the text before "=" on
// every line.
func scanPoetryDependencies(text string) Set {
	deps := Set{}

	start := strings.Index(text, poetryDependenciesHeader)
	if start < 0 {
		return deps
	}
	body := text[start+len(poetryDependenciesHeader):]

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			break
		}
		name, _, _ := strings.Cut(trimmed, "=")
		deps.Add(name)
	}

	return deps
}

// ParsePipfile returns the keys of the [packages] and [dev-packages] tables.
func ParsePipfile(content []byte) Set {
	deps := Set{}

	var doc struct {
		Packages    map[string]any `toml:"packages"`
		DevPackages map[string]any `toml:"dev-packages"`
	}
	if _, err := toml.Decode(string(content), &doc); err != nil {
		return deps
	}

	for name := range doc.Packages {
		deps.Add(name)
	}
	for name := range doc.DevPackages {
		deps.Add(name)
	}
	return deps
}

// ParseSetupCfg returns the distribution names listed under
// [options] install_requires of a setuptools setup.cfg.
func ParseSetupCfg(content []byte) Set {
	deps := Set{}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		IgnoreInlineComment:        true,
	}, content)
	if err != nil || !cfg.HasSection("options") {
		return deps
	}

	requires := cfg.Section("options").Key("install_requires").String()
	for _, line := range strings.Split(requires, "\n") {
		deps.Add(requirementName(line))
	}
	return deps
}
