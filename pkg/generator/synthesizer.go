// Package generator turns a detected framework and runtime into the set of
// container configuration files for a project.
package generator

import (
	"context"
	"fmt"

	"docksmith/pkg/templates"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Synthesizer renders ArtifactSets from Options.
type Synthesizer struct {
	store  templates.Store
	logger *zap.Logger
}

// NewSynthesizer creates a synthesizer reading build recipes from store.
func NewSynthesizer(store templates.Store, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{store: store, logger: logger}
}

// Synthesize renders all four artifacts concurrently and returns them staged
// in memory. Nothing is written to disk; call ArtifactSet.Commit for that.
// A missing build recipe fails the whole run with *templates.NotFoundError.
func (s *Synthesizer) Synthesize(ctx context.Context, opts Options) (*ArtifactSet, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	renderers := []func() ([]byte, error){
		func() ([]byte, error) { return s.store.Lookup(opts.Framework, opts.Development) },
		func() ([]byte, error) { return renderCompose(opts) },
		func() ([]byte, error) { return renderIgnore(opts), nil },
		func() ([]byte, error) { return renderReadme(opts) },
	}

	contents := make([][]byte, len(renderers))
	g, ctx := errgroup.WithContext(ctx)
	for i, render := range renderers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := render()
			if err != nil {
				return err
			}
			contents[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Debug("synthesis failed",
			zap.String("framework", opts.Framework),
			zap.String("mode", templates.ModeName(opts.Development)),
			zap.Error(err))
		return nil, err
	}

	set := &ArtifactSet{Artifacts: make([]Artifact, len(ArtifactNames))}
	for i, name := range ArtifactNames {
		set.Artifacts[i] = Artifact{Name: name, Content: contents[i]}
	}

	s.logger.Debug("synthesized artifacts",
		zap.String("framework", opts.Framework),
		zap.String("runtime", string(opts.Runtime)),
		zap.Bool("development", opts.Development),
		zap.Int("port", opts.Port))

	return set, nil
}

// Generate synthesizes and commits in one step.
func (s *Synthesizer) Generate(ctx context.Context, opts Options, dir string) (*ArtifactSet, error) {
	set, err := s.Synthesize(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := set.Commit(dir); err != nil {
		return nil, fmt.Errorf("failed to write artifacts: %w", err)
	}
	return set, nil
}
