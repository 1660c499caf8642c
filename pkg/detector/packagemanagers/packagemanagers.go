// Package packagemanagers identifies the dependency tool a project uses from
// its lockfiles.
package packagemanagers

// Exists reports whether a path exists relative to the project root.
type Exists func(rel string) bool

// DetectJS detects the JavaScript package manager used in a project
func DetectJS(has Exists) string {
	switch {
	case has("bun.lockb") || has("bun.lock"):
		return "bun"
	case has(".yarnrc.yml"):
		return "yarn-berry"
	case has("pnpm-lock.yaml"):
		return "pnpm"
	case has("yarn.lock"):
		return "yarn"
	default:
		return "npm"
	}
}

// DetectPython detects the Python package manager used in a project
func DetectPython(has Exists) string {
	switch {
	case has("uv.lock"):
		return "uv"
	case has("pdm.lock"):
		return "pdm"
	case has("poetry.lock"):
		return "poetry"
	case has("Pipfile.lock") || has("Pipfile"):
		return "pipenv"
	default:
		return "pip"
	}
}

// Detect picks the detector matching a signature language label.
// Unknown languages yield "".
func Detect(language string, has Exists) string {
	switch language {
	case "JavaScript/TypeScript":
		return DetectJS(has)
	case "Python":
		return DetectPython(has)
	default:
		return ""
	}
}

// InstallCommand returns the install command for the given package manager
func InstallCommand(pm string) string {
	switch pm {
	case "bun":
		return "bun install"
	case "pnpm":
		return "pnpm install"
	case "yarn", "yarn-berry":
		return "yarn install"
	case "npm":
		return "npm install"
	case "uv":
		return "uv sync"
	case "pdm":
		return "pdm install --prod"
	case "poetry":
		return "poetry install"
	case "pipenv":
		return "pipenv install"
	case "pip":
		return "pip install -r requirements.txt"
	default:
		return ""
	}
}
