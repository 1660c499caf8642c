package runtime

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"docksmith/pkg/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoRuntimeAvailable is returned when every probe failed.
	ErrNoRuntimeAvailable = errors.New("no container runtime detected; install Docker, Podman, OrbStack or Lima")

	// ErrRuntimeUnavailable is returned when an explicitly requested runtime
	// is unknown or did not answer its probe.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
)

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// Prober queries the known container runtimes and picks one.
type Prober struct {
	specs   []Spec
	runner  CommandRunner
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Prober
type Option func(*Prober)

// WithRunner replaces the process runner (used by tests).
func WithRunner(r CommandRunner) Option {
	return func(p *Prober) { p.runner = r }
}

// WithTimeout bounds every individual probe.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Prober) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProber creates a Prober over the given runtime specs.
func NewProber(specs []Spec, opts ...Option) *Prober {
	p := &Prober{
		specs:   append([]Spec(nil), specs...),
		runner:  ExecRunner{},
		timeout: config.DefaultProbeTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe runs every version query and returns exactly one candidate per known
// runtime, in registry order. Probes are isolated: one failing or hanging never
// affects the others.
func (p *Prober) Probe(ctx context.Context) []Candidate {
	candidates := make([]Candidate, len(p.specs))

	var g errgroup.Group
	for i, spec := range p.specs {
		g.Go(func() error {
			candidates[i] = p.probe(ctx, spec)
			return nil
		})
	}
	_ = g.Wait()

	return candidates
}

func (p *Prober) probe(ctx context.Context, spec Spec) Candidate {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Run(ctx, spec.Command, spec.Args...)
	if err != nil {
		p.logger.Debug("runtime probe failed",
			zap.String("runtime", string(spec.Runtime)),
			zap.String("command", spec.Command+" "+strings.Join(spec.Args, " ")),
			zap.Error(err))
		return Candidate{Runtime: spec.Runtime, Err: err}
	}

	version := ParseVersion(string(out))
	p.logger.Debug("runtime probe succeeded",
		zap.String("runtime", string(spec.Runtime)),
		zap.String("version", version))
	return Candidate{Runtime: spec.Runtime, Version: version, Available: true}
}

// Detect probes all runtimes and returns the available one with the highest
// static priority.
func (p *Prober) Detect(ctx context.Context) (Candidate, error) {
	return p.Choose(p.Probe(ctx))
}

// Choose picks the available candidate with the highest static priority from
// an earlier Probe.
func (p *Prober) Choose(candidates []Candidate) (Candidate, error) {
	available := filterAvailable(candidates)
	if len(available) == 0 {
		return Candidate{}, ErrNoRuntimeAvailable
	}

	sort.SliceStable(available, func(i, j int) bool {
		return p.priority(available[i].Runtime) > p.priority(available[j].Runtime)
	})
	return available[0], nil
}

// Resolve returns the named runtime if it is known and available.
// An empty name falls back to Detect.
func (p *Prober) Resolve(ctx context.Context, name string) (Candidate, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return p.Detect(ctx)
	}

	for _, c := range p.Probe(ctx) {
		if string(c.Runtime) != name {
			continue
		}
		if !c.Available {
			return Candidate{}, fmt.Errorf("%w: %s: %v", ErrRuntimeUnavailable, name, c.Err)
		}
		return c, nil
	}
	return Candidate{}, fmt.Errorf("%w: unknown runtime %s", ErrRuntimeUnavailable, name)
}

func (p *Prober) priority(rt Runtime) int {
	for _, s := range p.specs {
		if s.Runtime == rt {
			return s.Priority
		}
	}
	return 0
}

func filterAvailable(cands []Candidate) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if c.Available {
			out = append(out, c)
		}
	}
	return out
}

// ParseVersion returns the first major.minor.patch found in output, or ""
// when there is none.
func ParseVersion(output string) string {
	return versionPattern.FindString(output)
}
