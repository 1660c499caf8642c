package steps

import (
	"testing"

	"docksmith/pkg/detector"
	"docksmith/pkg/runtime"

	"github.com/stretchr/testify/assert"
)

func TestInitSteps(t *testing.T) {
	s := InitSteps(detector.DefaultSignatures(), []runtime.Candidate{
		{Runtime: runtime.RuntimeDocker, Version: "24.0.7", Available: true},
		{Runtime: runtime.RuntimePodman},
		{Runtime: runtime.RuntimeLima, Available: true},
	})

	fw := s.Steps["framework"].Options
	assert.Len(t, fw, 5)
	assert.Equal(t, "nextjs", fw[0].Flag)
	assert.Equal(t, "fastapi", fw[4].Title)

	rt := s.Steps["runtime"].Options
	assert.Equal(t, []Item{
		{Flag: "docker", Title: "docker", Desc: "version 24.0.7"},
		{Flag: "lima", Title: "lima", Desc: "version unknown"},
	}, rt)
}
