package config

import "time"

// Timeouts & Durations
const (
	// DefaultProbeTimeout bounds each container runtime version query
	DefaultProbeTimeout = 5 * time.Second
)

// Default Values
const (
	// DefaultPort is the application port when neither the user nor the
	// project configuration sets one
	DefaultPort = 3000

	// DefaultDevelopment selects the production build target by default
	DefaultDevelopment = false
)

// File Permissions
const (
	// PermArtifactFile is the file permission for generated artifacts
	PermArtifactFile = 0644
)

// Path Constants - Project
const (
	// ProjectConfigFile is the optional per-project settings file
	ProjectConfigFile = "docksmith.toml"

	// ProjectEnvFile supplies DOCKSMITH_* variables not set in the process
	// environment
	ProjectEnvFile = ".env"

	// DefaultTemplatesDir is consulted before the embedded templates when it
	// exists in the working directory
	DefaultTemplatesDir = ".docksmith/templates"
)

// Environment variable names
const (
	EnvFramework = "DOCKSMITH_FRAMEWORK"
	EnvRuntime   = "DOCKSMITH_RUNTIME"
	EnvDev       = "DOCKSMITH_DEV"
	EnvPort      = "DOCKSMITH_PORT"
	EnvTemplates = "DOCKSMITH_TEMPLATES"
)
