// Package manifests extracts declared dependency names from project manifests.
//
// Every parser is total: malformed or unreadable content yields an empty Set,
// never an error. A manifest that cannot be understood simply contributes no
// evidence to framework detection.
package manifests

import (
	"path"
	"sort"
	"strings"
)

// Set is a set of dependency names, normalized to lower case.
type Set map[string]struct{}

// Add inserts a dependency name. Blank names are ignored.
func (s Set) Add(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether the set contains name (case-insensitive).
func (s Set) Has(name string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the sorted dependency names.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Parser extracts dependency names from one manifest dialect.
type Parser interface {
	Parse(content []byte) Set
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(content []byte) Set

func (f ParserFunc) Parse(content []byte) Set {
	return f(content)
}

var parsers = map[string]Parser{
	"package.json":     ParserFunc(ParsePackageJSON),
	"requirements.txt": ParserFunc(ParseRequirements),
	"pyproject.toml":   ParserFunc(ParsePyproject),
	"Pipfile":          ParserFunc(ParsePipfile),
	"setup.cfg":        ParserFunc(ParseSetupCfg),
}

// ForFile returns the parser registered for a manifest file name.
// Only the base name is consulted, so "api/requirements.txt" resolves
// to the requirements parser.
func ForFile(name string) (Parser, bool) {
	p, ok := parsers[path.Base(name)]
	return p, ok
}

// Parse dispatches content to the parser for name. Unknown manifests yield
// an empty set.
func Parse(name string, content []byte) Set {
	p, ok := ForFile(name)
	if !ok {
		return Set{}
	}
	return p.Parse(content)
}

// requirementName returns the distribution name from a PEP 508 requirement
// string such as "Django>=4.2; python_version>'3.8'" or "uvicorn[standard]".
func requirementName(req string) string {
	req = strings.TrimSpace(req)
	end := strings.IndexAny(req, " <>=!~;[(@")
	if end >= 0 {
		req = req[:end]
	}
	return strings.TrimSpace(req)
}
