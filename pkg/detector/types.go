package detector

// Detection represents the result of framework detection
type Detection struct {
	Framework        string   `json:"framework"`
	Language         string   `json:"language"`
	Confidence       float64  `json:"confidence"`
	Signals          []string `json:"signals"`
	InterpreterCache bool     `json:"interpreter_cache"`
	PackageManager   string   `json:"package_manager,omitempty"`
}

// Signature describes how one supported framework is recognized.
// Signatures are immutable values; the order of a registry slice is the
// tie-break order for equal confidence.
type Signature struct {
	// Name is the canonical framework name, e.g. "django".
	Name string

	// Language is a display label for the framework's ecosystem.
	Language string

	// Markers are paths relative to the project root whose existence is
	// strong evidence. Entries may be doublestar glob patterns.
	Markers []string

	// Manifests are consulted in order when no marker exists.
	Manifests []string

	// Dependencies are package names that mark the framework in a manifest.
	Dependencies []string

	// Check is an optional extra predicate evaluated when neither markers nor
	// manifests produced evidence.
	Check func(r *FSReader) bool

	// InterpreterCache reports whether the ecosystem writes interpreter cache
	// files (__pycache__, *.pyc) that belong in the ignore list.
	InterpreterCache bool
}
