package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docksmith/cmd/ui/sequential"
	"docksmith/pkg/detector"
	"docksmith/pkg/generator"
	"docksmith/pkg/runtime"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// fakeRunner reports the listed commands as installed.
type fakeRunner map[string]string

func (f fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	out, ok := f[strings.TrimSpace(name+" "+strings.Join(args, " "))]
	if !ok {
		return nil, errors.New("executable file not found in $PATH")
	}
	return []byte(out), nil
}

func useRuntimes(t *testing.T, installed fakeRunner) {
	t.Helper()
	orig := newProber
	newProber = func(logger *zap.Logger) *runtime.Prober {
		return runtime.NewProber(runtime.DefaultSpecs(), runtime.WithRunner(installed), runtime.WithLogger(logger))
	}
	t.Cleanup(func() { newProber = orig })
}

var dockerOnly = fakeRunner{"docker --version": "Docker version 24.0.7, build afdd53b"}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func readCompose(t *testing.T, dir string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, generator.ComposeFileName))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(content, &doc))
	return doc
}

func appOf(doc map[string]any) map[string]any {
	return doc["services"].(map[string]any)["app"].(map[string]any)
}

// scriptedPrompter answers prompts from fixed values.
type scriptedPrompter struct {
	framework string
	runtime   string
	offered   []runtime.Runtime
	confirm   bool
	answers   sequential.InitAnswers
	asked     []string
}

func (s *scriptedPrompter) ChooseFramework(sigs []detector.Signature) (string, error) {
	s.asked = append(s.asked, "framework")
	return s.framework, nil
}

func (s *scriptedPrompter) ChooseRuntime(candidates []runtime.Candidate) (string, error) {
	s.asked = append(s.asked, "runtime")
	for _, c := range candidates {
		s.offered = append(s.offered, c.Runtime)
	}
	return s.runtime, nil
}

func (s *scriptedPrompter) Progress(_ string, task func() error) error {
	s.asked = append(s.asked, "progress")
	return task()
}

func (s *scriptedPrompter) Confirm(detector.Detection, runtime.Candidate) (bool, error) {
	s.asked = append(s.asked, "confirm")
	return s.confirm, nil
}

func (s *scriptedPrompter) Questions(string, int, bool) (sequential.InitAnswers, error) {
	s.asked = append(s.asked, "questions")
	return s.answers, nil
}
