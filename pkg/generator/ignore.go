package generator

import "strings"

var baselineIgnores = []string{
	".git",
	"node_modules",
	"npm-debug.log",
	"Dockerfile",
	".dockerignore",
	".env",
	"*.md",
	"*.log",
}

var interpreterCacheIgnores = []string{
	"__pycache__",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	".Python",
	"env/",
	"venv/",
}

// IgnorePatterns returns the .dockerignore entries for opts.
func IgnorePatterns(opts Options) []string {
	patterns := append([]string(nil), baselineIgnores...)
	if opts.InterpreterCache {
		patterns = append(patterns, interpreterCacheIgnores...)
	}
	return patterns
}

func renderIgnore(opts Options) []byte {
	return []byte(strings.Join(IgnorePatterns(opts), "\n") + "\n")
}
