package detector

// Confidence tiers for framework detection.
// A signature contributes at most one result, at the tier of the strongest
// evidence that fired for it.
const (
	// ConfidenceHigh is assigned when a framework marker file exists.
	// Examples: manage.py, next.config.js
	ConfidenceHigh = 0.8

	// ConfidenceMedium is assigned when a parsed manifest lists one of the
	// framework's dependency markers, or a custom check matched.
	// Examples: "fastapi" in requirements.txt, "next" in package.json
	ConfidenceMedium = 0.6
)
