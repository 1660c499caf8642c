// Package steps provides utility for creating
// each step of the CLI flow
package steps

import (
	"docksmith/pkg/detector"
	"docksmith/pkg/runtime"
)

// A StepSchema contains the data that is used
// for an individual step of the CLI
type StepSchema struct {
	StepName string // The name of a given step
	Options  []Item // The slice of each option for a given step
	Headers  string // The title displayed at the top of a given step
}

// Steps contains a map of steps
type Steps struct {
	Steps map[string]StepSchema
}

// An Item contains the data for each option
// in a StepSchema.Options
type Item struct {
	Flag, Title, Desc string
}

// InitSteps builds the selection steps from the registered frameworks and
// the runtimes found on this machine.
func InitSteps(signatures []detector.Signature, candidates []runtime.Candidate) *Steps {
	frameworks := make([]Item, 0, len(signatures))
	for _, sig := range signatures {
		frameworks = append(frameworks, Item{
			Flag:  sig.Name,
			Title: sig.Name,
			Desc:  sig.Language,
		})
	}

	runtimes := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		if !c.Available {
			continue
		}
		desc := "version unknown"
		if c.Version != "" {
			desc = "version " + c.Version
		}
		runtimes = append(runtimes, Item{
			Flag:  string(c.Runtime),
			Title: string(c.Runtime),
			Desc:  desc,
		})
	}

	return &Steps{
		map[string]StepSchema{
			"framework": {
				StepName: "Framework",
				Options:  frameworks,
				Headers:  "No framework was detected. Which framework does this project use?",
			},
			"runtime": {
				StepName: "Container Runtime",
				Options:  runtimes,
				Headers:  "Several container runtimes are available. Which one should the configuration target?",
			},
		},
	}
}
