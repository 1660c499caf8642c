package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docksmith/pkg/config"
)

// Artifact file names, in the order they appear in an ArtifactSet
const (
	DockerfileName  = "Dockerfile"
	ComposeFileName = "compose.yaml"
	IgnoreFileName  = ".dockerignore"
	ReadmeFileName  = "README.Docker.md"
)

// ArtifactNames lists every generated file in commit order.
var ArtifactNames = []string{DockerfileName, ComposeFileName, IgnoreFileName, ReadmeFileName}

// Artifact is one named file staged in memory.
type Artifact struct {
	Name    string
	Content []byte
}

// ArtifactSet is an ordered, all-or-nothing group of artifacts.
type ArtifactSet struct {
	Artifacts []Artifact
}

// Get returns the artifact called name.
func (s *ArtifactSet) Get(name string) (Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// Names returns the artifact names in order.
func (s *ArtifactSet) Names() []string {
	names := make([]string, len(s.Artifacts))
	for i, a := range s.Artifacts {
		names[i] = a.Name
	}
	return names
}

type staged struct {
	target   string
	tmp      string
	previous []byte
	existed  bool
	renamed  bool
}

// Commit writes every artifact into dir. All contents are first written to
// temporary files in dir and then renamed over the targets. If staging fails
// no target is touched; if a rename fails the targets already replaced are
// restored to their previous contents.
func (s *ArtifactSet) Commit(dir string) (err error) {
	stages := make([]*staged, 0, len(s.Artifacts))

	defer func() {
		for _, st := range stages {
			if !st.renamed {
				os.Remove(st.tmp)
			}
		}
	}()

	for _, a := range s.Artifacts {
		st, stageErr := stage(dir, a)
		if st != nil {
			stages = append(stages, st)
		}
		if stageErr != nil {
			return stageErr
		}
	}

	for _, st := range stages {
		if renameErr := os.Rename(st.tmp, st.target); renameErr != nil {
			return errors.Join(
				fmt.Errorf("failed to write %s: %w", st.target, renameErr),
				rollback(stages),
			)
		}
		st.renamed = true
	}

	return nil
}

func stage(dir string, a Artifact) (*staged, error) {
	target := filepath.Join(dir, a.Name)
	st := &staged{target: target}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("cannot write %s: path is a directory", target)
	case err == nil:
		previous, readErr := os.ReadFile(target)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read existing %s: %w", target, readErr)
		}
		st.previous = previous
		st.existed = true
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to inspect %s: %w", target, err)
	}

	f, err := os.CreateTemp(dir, "."+a.Name+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", a.Name, err)
	}
	st.tmp = f.Name()

	if _, err := f.Write(a.Content); err != nil {
		f.Close()
		return st, fmt.Errorf("failed to stage %s: %w", a.Name, err)
	}
	if err := f.Close(); err != nil {
		return st, fmt.Errorf("failed to stage %s: %w", a.Name, err)
	}
	if err := os.Chmod(st.tmp, config.PermArtifactFile); err != nil {
		return st, fmt.Errorf("failed to stage %s: %w", a.Name, err)
	}
	return st, nil
}

func rollback(stages []*staged) error {
	var errs []error
	for _, st := range stages {
		if !st.renamed {
			continue
		}
		if st.existed {
			if err := os.WriteFile(st.target, st.previous, config.PermArtifactFile); err != nil {
				errs = append(errs, fmt.Errorf("failed to restore %s: %w", st.target, err))
			}
			continue
		}
		if err := os.Remove(st.target); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", st.target, err))
		}
	}
	return errors.Join(errs...)
}
