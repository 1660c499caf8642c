package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Settings holds the user-adjustable inputs of a synthesis run. Pointer and
// empty-string fields mean "not set" so layers can be merged.
type Settings struct {
	Framework string
	Runtime   string
	Dev       *bool
	Port      *int
	Templates string
	Env       map[string]string
}

// fileConfig mirrors docksmith.toml
type fileConfig struct {
	Framework   string            `toml:"framework"`
	Runtime     string            `toml:"runtime"`
	Development bool              `toml:"development"`
	Port        int               `toml:"port"`
	Templates   string            `toml:"templates"`
	Env         map[string]string `toml:"env"`
}

// Defaults returns the lowest-precedence settings layer.
func Defaults() Settings {
	return Settings{
		Dev:  Bool(DefaultDevelopment),
		Port: Int(DefaultPort),
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Merge returns s overlaid with every field set in over.
func (s Settings) Merge(over Settings) Settings {
	out := s
	if over.Framework != "" {
		out.Framework = over.Framework
	}
	if over.Runtime != "" {
		out.Runtime = over.Runtime
	}
	if over.Dev != nil {
		out.Dev = Bool(*over.Dev)
	}
	if over.Port != nil {
		out.Port = Int(*over.Port)
	}
	if over.Templates != "" {
		out.Templates = over.Templates
	}
	if len(s.Env) > 0 || len(over.Env) > 0 {
		out.Env = make(map[string]string, len(s.Env)+len(over.Env))
		for k, v := range s.Env {
			out.Env[k] = v
		}
		for k, v := range over.Env {
			out.Env[k] = v
		}
	}
	return out
}

// Resolve layers defaults < detected < user. Explicit user input always wins
// over detected values, which win over defaults.
func Resolve(detected, user Settings) (Settings, error) {
	out := Defaults().Merge(detected).Merge(user)
	if err := out.Validate(); err != nil {
		return Settings{}, err
	}
	return out, nil
}

// Development reports the resolved mode flag.
func (s Settings) Development() bool {
	return s.Dev != nil && *s.Dev
}

// PortOrDefault reports the resolved port.
func (s Settings) PortOrDefault() int {
	if s.Port == nil {
		return DefaultPort
	}
	return *s.Port
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Port != nil && (*s.Port < 1 || *s.Port > 65535) {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", *s.Port)
	}
	for k := range s.Env {
		if k == "" || strings.ContainsAny(k, "= \t") {
			return fmt.Errorf("invalid environment variable name %q", k)
		}
	}
	return nil
}

// LoadProjectFile reads docksmith.toml from dir. A missing file yields empty
// settings.
func LoadProjectFile(dir string) (Settings, error) {
	path := filepath.Join(dir, ProjectConfigFile)

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var s Settings
	if meta.IsDefined("framework") {
		s.Framework = strings.TrimSpace(raw.Framework)
	}
	if meta.IsDefined("runtime") {
		s.Runtime = strings.TrimSpace(raw.Runtime)
	}
	if meta.IsDefined("development") {
		s.Dev = Bool(raw.Development)
	}
	if meta.IsDefined("port") {
		s.Port = Int(raw.Port)
	}
	if meta.IsDefined("templates") {
		s.Templates = resolvePath(dir, raw.Templates)
	}
	if meta.IsDefined("env") {
		s.Env = raw.Env
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadDotEnv returns the variables in dir/.env. The process environment is
// left untouched. A missing file yields nil.
func ReadDotEnv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, ProjectEnvFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return vars, nil
}

// EnvLookup resolves a variable from the process environment, then from
// dotenv. Variables already set in the environment win, as with a loaded
// .env file.
func EnvLookup(dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// FromEnv reads DOCKSMITH_* variables through lookup (os.LookupEnv in
// production).
func FromEnv(lookup func(string) (string, bool)) (Settings, error) {
	var s Settings

	if v, ok := lookup(EnvFramework); ok {
		s.Framework = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvRuntime); ok {
		s.Runtime = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTemplates); ok {
		s.Templates = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDev); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s value %q: %w", EnvDev, v, err)
		}
		s.Dev = Bool(b)
	}
	if v, ok := lookup(EnvPort); ok && strings.TrimSpace(v) != "" {
		p, err := ParsePort(v)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		s.Port = Int(p)
	}

	return s, nil
}

// ParsePort parses and range-checks a port number.
func ParsePort(v string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("port %q is not a number", v)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("invalid port %d: must be between 1 and 65535", p)
	}
	return p, nil
}

func resolvePath(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
