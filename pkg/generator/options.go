package generator

import (
	"fmt"

	"docksmith/pkg/runtime"
)

// Options is the single consistent input every artifact is rendered from.
type Options struct {
	Framework        string
	Runtime          runtime.Runtime
	Development      bool
	Port             int
	InterpreterCache bool              // taken from the framework signature
	ProjectName      string            // optional compose project name
	Env              map[string]string // extra environment for the app service
}

// Validate checks the option set before any artifact is rendered.
func (o Options) Validate() error {
	if o.Framework == "" {
		return fmt.Errorf("framework is required")
	}
	if o.Port < 1 || o.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", o.Port)
	}
	if o.Development && o.Port == 65535 {
		return fmt.Errorf("invalid port %d: debug port %d is out of range", o.Port, o.DebugPort())
	}
	return nil
}

// DebugPort is the port reserved for a debugger in development mode.
func (o Options) DebugPort() int {
	return o.Port + 1
}
