package runtime

// Runtime identifies a container runtime installed on the local machine
type Runtime string

const (
	RuntimeDocker   Runtime = "docker"   // Docker Engine / Docker Desktop
	RuntimePodman   Runtime = "podman"   // Podman (rootless)
	RuntimeOrbStack Runtime = "orbstack" // OrbStack (accelerated desktop VM)
	RuntimeLima     Runtime = "lima"     // Lima (lightweight VM)
)

// Spec describes how to probe one runtime and how it ranks against the
// others. Higher Priority wins when several runtimes are available.
type Spec struct {
	Runtime  Runtime
	Command  string
	Args     []string
	Priority int
}

// DefaultSpecs returns the known runtimes with their version-query commands.
// Priority order is orbstack > docker > podman > lima, chosen for developer
// experience rather than version recency.
func DefaultSpecs() []Spec {
	return []Spec{
		{Runtime: RuntimeDocker, Command: "docker", Args: []string{"--version"}, Priority: 3},
		{Runtime: RuntimePodman, Command: "podman", Args: []string{"--version"}, Priority: 2},
		{Runtime: RuntimeOrbStack, Command: "orbctl", Args: []string{"version"}, Priority: 4},
		{Runtime: RuntimeLima, Command: "limactl", Args: []string{"--version"}, Priority: 1},
	}
}

// Candidate is the outcome of probing one runtime
type Candidate struct {
	Runtime   Runtime `json:"runtime"`
	Version   string  `json:"version,omitempty"`
	Available bool    `json:"available"`
	Err       error   `json:"-"`
}

// Info contains static facts used when generating configuration for a runtime
type Info struct {
	Runtime        Runtime
	ComposeVersion string // compose file schema version
	DefaultSocket  string // API socket path
	Rootless       bool
	Accelerated    bool   // emits the x-orbstack extension block
	ComposeCommand string // binary that provides "<cmd> compose"
}

// GetRuntimeInfo returns configuration facts for a specific runtime.
// Unknown runtimes fall back to docker.
func GetRuntimeInfo(rt Runtime) Info {
	switch rt {
	case RuntimePodman:
		return Info{
			Runtime:        RuntimePodman,
			ComposeVersion: "3.8",
			DefaultSocket:  "/run/podman/podman.sock",
			Rootless:       true,
			ComposeCommand: "podman",
		}

	case RuntimeOrbStack:
		return Info{
			Runtime:        RuntimeOrbStack,
			ComposeVersion: "3.8",
			DefaultSocket:  "/var/run/docker.sock",
			Accelerated:    true,
			ComposeCommand: "docker",
		}

	case RuntimeLima:
		return Info{
			Runtime:        RuntimeLima,
			ComposeVersion: "3.8",
			DefaultSocket:  "/var/run/lima/docker.sock",
			ComposeCommand: "lima nerdctl",
		}

	default:
		return Info{
			Runtime:        RuntimeDocker,
			ComposeVersion: "3.8",
			DefaultSocket:  "/var/run/docker.sock",
			ComposeCommand: "docker",
		}
	}
}
