package sequential

import (
	"strings"

	"docksmith/pkg/config"
)

type StepBuilder struct {
	step Step
}

func NewStep(id, title string) *StepBuilder {
	return &StepBuilder{
		step: Step{
			ID:    id,
			Title: title,
			Type:  StepTypeText,
		},
	}
}

func (b *StepBuilder) Description(desc string) *StepBuilder {
	b.step.Description = desc
	return b
}

func (b *StepBuilder) Type(stepType StepType) *StepBuilder {
	b.step.Type = stepType
	return b
}

func (b *StepBuilder) Placeholder(placeholder string) *StepBuilder {
	b.step.Placeholder = placeholder
	return b
}

func (b *StepBuilder) DefaultValue(value string) *StepBuilder {
	b.step.Value = value
	return b
}

func (b *StepBuilder) Required() *StepBuilder {
	b.step.Required = true
	return b
}

func (b *StepBuilder) Validate(fn func(string) error) *StepBuilder {
	b.step.Validate = fn
	return b
}

// Options turns the step into a choice between the given values.
func (b *StepBuilder) Options(options ...string) *StepBuilder {
	b.step.Options = options
	b.step.Type = StepTypeChoice
	if b.step.Value == "" && len(options) > 0 {
		b.step.Value = options[0]
	}
	return b
}

func (b *StepBuilder) Build() Step {
	return b.step
}

func ValidatePort(value string) error {
	_, err := config.ParsePort(strings.TrimSpace(value))
	return err
}

func CreatePortStep(id, defaultPort string) Step {
	return NewStep(id, "Application Port").
		Description("Port the application listens on inside the container").
		Placeholder(defaultPort).
		DefaultValue(defaultPort).
		Required().
		Validate(ValidatePort).
		Build()
}

func CreateModeStep(id string, development bool) Step {
	options := []string{"production", "development"}
	if development {
		options = []string{"development", "production"}
	}
	return NewStep(id, "Build Mode").
		Description("Development mounts the project into the container and exposes a debug port").
		Options(options...).
		Build()
}
