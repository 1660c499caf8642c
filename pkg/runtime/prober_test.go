package runtime

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	out  string
	err  error
	hang bool
}

// fakeRunner answers probes from a table keyed by "command args".
type fakeRunner struct {
	mu      sync.Mutex
	results map[string]fakeResult
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	f.calls = append(f.calls, key)
	res, ok := f.results[key]
	f.mu.Unlock()

	if !ok {
		return nil, errors.New("executable file not found in $PATH")
	}
	if res.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte(res.out), res.err
}

func newFake(results map[string]fakeResult) *fakeRunner {
	return &fakeRunner{results: results}
}

func TestProbe_OneCandidatePerRuntime(t *testing.T) {
	runner := newFake(map[string]fakeResult{
		"docker --version": {out: "Docker version 24.0.7, build afdd53b"},
	})
	p := NewProber(DefaultSpecs(), WithRunner(runner))

	cands := p.Probe(context.Background())

	require.Len(t, cands, 4)
	assert.Equal(t, []Runtime{RuntimeDocker, RuntimePodman, RuntimeOrbStack, RuntimeLima},
		[]Runtime{cands[0].Runtime, cands[1].Runtime, cands[2].Runtime, cands[3].Runtime})
	assert.True(t, cands[0].Available)
	assert.Equal(t, "24.0.7", cands[0].Version)
	for _, c := range cands[1:] {
		assert.False(t, c.Available)
		assert.Empty(t, c.Version)
		assert.Error(t, c.Err)
	}
	assert.Len(t, runner.calls, 4)
}

func TestDetect_NoRuntimeAvailable(t *testing.T) {
	runner := newFake(map[string]fakeResult{
		"docker --version": {err: errors.New("exit status 1")},
	})
	p := NewProber(DefaultSpecs(), WithRunner(runner))

	_, err := p.Detect(context.Background())

	assert.ErrorIs(t, err, ErrNoRuntimeAvailable)
}

func TestDetect_PriorityIgnoresVersion(t *testing.T) {
	runner := newFake(map[string]fakeResult{
		"docker --version": {out: "Docker version 99.9.9"},
		"orbctl version":   {out: "Version: 0.0.1 (1)"},
	})
	p := NewProber(DefaultSpecs(), WithRunner(runner))

	got, err := p.Detect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RuntimeOrbStack, got.Runtime)
	assert.Equal(t, "0.0.1", got.Version)
}

func TestDetect_PriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		want      Runtime
	}{
		{"docker over podman", []string{"docker --version", "podman --version"}, RuntimeDocker},
		{"podman over lima", []string{"podman --version", "limactl --version"}, RuntimePodman},
		{"lima alone", []string{"limactl --version"}, RuntimeLima},
		{"all four", []string{"docker --version", "podman --version", "orbctl version", "limactl --version"}, RuntimeOrbStack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := map[string]fakeResult{}
			for _, cmd := range tt.available {
				results[cmd] = fakeResult{out: "version 1.2.3"}
			}
			p := NewProber(DefaultSpecs(), WithRunner(newFake(results)))

			got, err := p.Detect(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Runtime)
		})
	}
}

func TestProbe_TimeoutIsIsolated(t *testing.T) {
	runner := newFake(map[string]fakeResult{
		"docker --version": {hang: true},
		"podman --version": {out: "podman version 4.9.3"},
	})
	p := NewProber(DefaultSpecs(), WithRunner(runner), WithTimeout(50*time.Millisecond))

	start := time.Now()
	got, err := p.Detect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RuntimePodman, got.Runtime)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestProbe_AvailableWithoutVersion(t *testing.T) {
	runner := newFake(map[string]fakeResult{
		"limactl --version": {out: "limactl version dev"},
	})
	p := NewProber(DefaultSpecs(), WithRunner(runner))

	got, err := p.Detect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RuntimeLima, got.Runtime)
	assert.True(t, got.Available)
	assert.Empty(t, got.Version)
}

func TestResolve(t *testing.T) {
	runner := newFake(map[string]fakeResult{
		"docker --version": {out: "Docker version 24.0.7"},
		"orbctl version":   {out: "1.5.0"},
	})
	p := NewProber(DefaultSpecs(), WithRunner(runner))
	ctx := context.Background()

	got, err := p.Resolve(ctx, "Docker")
	require.NoError(t, err)
	assert.Equal(t, RuntimeDocker, got.Runtime)

	got, err = p.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, RuntimeOrbStack, got.Runtime)

	_, err = p.Resolve(ctx, "podman")
	assert.ErrorIs(t, err, ErrRuntimeUnavailable)

	_, err = p.Resolve(ctx, "containerd")
	assert.ErrorIs(t, err, ErrRuntimeUnavailable)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"Docker version 24.0.7, build afdd53b", "24.0.7"},
		{"podman version 4.9.3\n", "4.9.3"},
		{"Version: 1.5.1 (1050100)\nCommit: abc", "1.5.1"},
		{"limactl version 0.21.0 1.2.3", "0.21.0"},
		{"no version here", ""},
		{"v1.2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVersion(tt.output))
		})
	}
}

func TestGetRuntimeInfo(t *testing.T) {
	assert.True(t, GetRuntimeInfo(RuntimeOrbStack).Accelerated)
	assert.True(t, GetRuntimeInfo(RuntimePodman).Rootless)
	assert.Equal(t, "podman", GetRuntimeInfo(RuntimePodman).ComposeCommand)
	assert.Equal(t, RuntimeDocker, GetRuntimeInfo(Runtime("unknown")).Runtime)
	for _, rt := range []Runtime{RuntimeDocker, RuntimePodman, RuntimeOrbStack, RuntimeLima} {
		assert.Equal(t, "3.8", GetRuntimeInfo(rt).ComposeVersion)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "docksmith-no-such-binary-xyz", "--version")
	assert.Error(t, err)
}

func TestChoose_FromEarlierProbe(t *testing.T) {
	p := NewProber(DefaultSpecs(), WithRunner(newFake(nil)))

	got, err := p.Choose([]Candidate{
		{Runtime: RuntimeLima, Available: true},
		{Runtime: RuntimePodman, Available: true, Version: "5.0.0"},
		{Runtime: RuntimeDocker},
	})
	require.NoError(t, err)
	assert.Equal(t, RuntimePodman, got.Runtime)

	_, err = p.Choose(nil)
	assert.ErrorIs(t, err, ErrNoRuntimeAvailable)
}

func TestProbe_TimeoutBoundsWrapperChildren(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p := NewProber([]Spec{{
		Runtime:  RuntimeDocker,
		Command:  "sh",
		Args:     []string{"-c", "sleep 3; echo 1.2.3"},
		Priority: 1,
	}}, WithTimeout(100*time.Millisecond))

	start := time.Now()
	cands := p.Probe(context.Background())
	elapsed := time.Since(start)

	require.Len(t, cands, 1)
	assert.False(t, cands[0].Available)
	assert.Error(t, cands[0].Err)
	assert.Less(t, elapsed, 2*time.Second)
}
