package detector

import (
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FSReader provides filesystem operations abstracted over fs.FS
type FSReader struct {
	fsys fs.FS
}

// NewFSReader creates a new FSReader for the given filesystem
func NewFSReader(fsys fs.FS) *FSReader {
	return &FSReader{fsys: fsys}
}

// Has checks if a file exists at the given path
func (r *FSReader) Has(path string) bool {
	_, err := fs.Stat(r.fsys, path)
	return err == nil
}

// Read reads a file and returns its content
func (r *FSReader) Read(path string) ([]byte, error) {
	return fs.ReadFile(r.fsys, path)
}

// DirExists checks if a directory exists at the given path
func (r *FSReader) DirExists(path string) bool {
	fi, err := fs.Stat(r.fsys, path)
	return err == nil && fi.IsDir()
}

// Match returns the first path satisfying the marker, or "" when none does.
// Plain paths are stat'ed, glob patterns such as "next.config.{js,mjs,ts}"
// are expanded with doublestar.
func (r *FSReader) Match(marker string) (string, error) {
	if !isPattern(marker) {
		if r.Has(marker) {
			return marker, nil
		}
		return "", nil
	}

	matches, err := doublestar.Glob(r.fsys, marker)
	if err != nil || len(matches) == 0 {
		return "", err
	}
	return matches[0], nil
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
