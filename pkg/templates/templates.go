// Package templates resolves build recipe templates keyed by framework and mode.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Template file names inside <templates>/<framework>/
const (
	ProductionFile  = "Dockerfile"
	DevelopmentFile = "Dockerfile.dev"
)

// Mode names, also used as compose build targets
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

//go:embed defaults
var defaultsFS embed.FS

// ErrTemplateNotFound is matched by every NotFoundError.
var ErrTemplateNotFound = errors.New("template not found")

// NotFoundError names the framework and mode that had no build recipe.
type NotFoundError struct {
	Framework string
	Mode      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no Dockerfile template for framework %q in %s mode", e.Framework, e.Mode)
}

func (e *NotFoundError) Unwrap() error { return ErrTemplateNotFound }

// ModeName returns "development" or "production".
func ModeName(development bool) string {
	if development {
		return ModeDevelopment
	}
	return ModeProduction
}

// FileName returns the template file name for a mode.
func FileName(development bool) string {
	if development {
		return DevelopmentFile
	}
	return ProductionFile
}

// Store looks up raw build recipe bytes.
type Store interface {
	Lookup(framework string, development bool) ([]byte, error)
}

// FSStore reads templates laid out as <framework>/<Dockerfile|Dockerfile.dev>.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store rooted at fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// Lookup returns the template bytes unmodified.
func (s *FSStore) Lookup(framework string, development bool) ([]byte, error) {
	notFound := &NotFoundError{Framework: framework, Mode: ModeName(development)}

	if framework == "" || strings.ContainsAny(framework, `/\`) || framework == "." || framework == ".." {
		return nil, notFound
	}

	name := path.Join(framework, FileName(development))
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return data, nil
}

// Embedded returns the templates compiled into the binary.
func Embedded() *FSStore {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return NewFSStore(sub)
}

// Layered consults each store in order. A not-found result falls through to
// the next store; any other error stops the lookup.
type Layered []Store

// Lookup implements Store.
func (l Layered) Lookup(framework string, development bool) ([]byte, error) {
	for _, s := range l {
		data, err := s.Lookup(framework, development)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			return nil, err
		}
	}
	return nil, &NotFoundError{Framework: framework, Mode: ModeName(development)}
}

// New returns the embedded templates, overlaid by overrideDir when it is set.
// The override directory must exist.
func New(overrideDir string) (Store, error) {
	if overrideDir == "" {
		return Embedded(), nil
	}

	info, err := os.Stat(overrideDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access templates directory '%s': %w", overrideDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates path '%s' is not a directory", overrideDir)
	}

	return Layered{NewFSStore(os.DirFS(overrideDir)), Embedded()}, nil
}

