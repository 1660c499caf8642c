package util

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var nameInvalidChars = regexp.MustCompile(`[^a-z0-9_.-]+`)

// ValidateProjectPath validates and cleans a project path
// Returns the cleaned absolute path or an error
func ValidateProjectPath(projectPath string) (string, error) {
	projectPath = filepath.Clean(projectPath)

	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("cannot access path '%s': %w", projectPath, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("path '%s' is not a directory", projectPath)
	}

	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return projectPath, nil // Return cleaned path if we can't get absolute
	}

	return absPath, nil
}

// ProjectName derives a compose-safe project name from a directory path.
// Compose project names are lowercase and may contain digits, '-', '_' and '.'.
func ProjectName(projectPath string) string {
	base := filepath.Base(filepath.Clean(projectPath))
	name := strings.ToLower(base)
	name = strings.ReplaceAll(name, " ", "-")
	name = nameInvalidChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "-_.")
	if name == "" {
		return "app"
	}
	return name
}
