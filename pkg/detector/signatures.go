package detector

// DefaultSignatures returns the built-in framework registry in declaration
// order. A fresh slice is returned on every call so callers may extend or
// reorder it without affecting other detectors.
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Name:         "nextjs",
			Language:     "JavaScript/TypeScript",
			Markers:      []string{"next.config.{js,mjs,ts}"},
			Manifests:    []string{"package.json"},
			Dependencies: []string{"next"},
		},
		{
			Name:     "express",
			Language: "JavaScript/TypeScript",
			Markers: []string{
				"app.js",
				"index.js",
				"server.js",
				"src/app.js",
				"src/server.js",
				"src/index.js",
			},
			Manifests:    []string{"package.json"},
			Dependencies: []string{"express"},
		},
		{
			Name:             "flask",
			Language:         "Python",
			Markers:          []string{"app.py", "wsgi.py"},
			Manifests:        []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.cfg"},
			Dependencies:     []string{"flask"},
			InterpreterCache: true,
		},
		{
			Name:             "django",
			Language:         "Python",
			Markers:          []string{"manage.py", "wsgi.py"},
			Manifests:        []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.cfg"},
			Dependencies:     []string{"django"},
			InterpreterCache: true,
		},
		{
			Name:             "fastapi",
			Language:         "Python",
			Markers:          []string{"main.py"},
			Manifests:        []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.cfg"},
			Dependencies:     []string{"fastapi"},
			InterpreterCache: true,
		},
	}
}
