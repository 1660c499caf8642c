package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docksmith/cmd/steps"
	"docksmith/cmd/ui/detection"
	"docksmith/cmd/ui/multiInput"
	"docksmith/cmd/ui/sequential"
	"docksmith/cmd/ui/spinner"
	"docksmith/pkg/config"
	"docksmith/pkg/detector"
	"docksmith/pkg/generator"
	"docksmith/pkg/runtime"
	"docksmith/pkg/templates"
	"docksmith/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	initYes       bool
	initFramework string
	initDev       bool
	initPort      string
	initRuntime   string
	initTemplates string
	initEnvFile   string
	initEnvVars   []string
)

// errNoFramework is returned when detection finds nothing and no prompt is possible.
var errNoFramework = errors.New("no framework detected")

// errSkipped is returned when the user declines generation.
var errSkipped = errors.New("generation skipped")

var initCmd = &cobra.Command{
	Use:   "init [PROJECT_PATH]",
	Short: "Initialize container configuration",
	Long: `Detect the framework and container runtime, then write Dockerfile, compose.yaml,
.dockerignore and README.Docker.md into the project directory.

Settings are layered: built-in defaults, then detected values, then docksmith.toml,
then DOCKSMITH_* environment variables (a project .env file is loaded first), then flags.

Examples:
  docksmith init
  docksmith init -y --dev --port 8080
  docksmith init --framework fastapi --runtime podman ./api`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectPath := projectPathOrExit(args)

		logger := newLogger()
		defer logger.Sync()

		opts := initOptions{
			dir:       projectPath,
			yes:       initYes,
			framework: initFramework,
			runtime:   initRuntime,
			templates: initTemplates,
			envFile:   initEnvFile,
			envVars:   initEnvVars,
		}
		if cmd.Flags().Changed("dev") {
			opts.dev = config.Bool(initDev)
		}
		if cmd.Flags().Changed("port") {
			port, err := config.ParsePort(initPort)
			if err != nil {
				exitWithError(err)
			}
			opts.port = config.Int(port)
		}

		var p prompter
		if interactive() {
			fmt.Printf("%s\n", logoStyle.Render(Logo))
			p = terminalPrompter{}
		}

		result, err := runInit(cmd.Context(), opts, p, logger)
		if errors.Is(err, errSkipped) {
			fmt.Println("Skipping container configuration.")
			return
		}
		if errors.Is(err, errNoFramework) {
			fmt.Fprintf(os.Stderr, "%s\n", errorMsgStyle.Render("No supported framework detected in "+projectPath))
			fmt.Fprintf(os.Stderr, "\nUse --framework to choose one. Run 'docksmith list' to see supported frameworks.\n")
			os.Exit(1)
		}
		if errors.Is(err, runtime.ErrNoRuntimeAvailable) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "\nInstall a container runtime, or pass --runtime to target one explicitly.\n")
			os.Exit(1)
		}
		if err != nil {
			exitWithError(err)
		}

		if jsonOutput {
			if err := printJSON(os.Stdout, result); err != nil {
				exitWithError(err)
			}
			return
		}

		fmt.Printf("\n%s\n", endingMsgStyle.Render(fmt.Sprintf("✅ Generated %s configuration for %s", result.Mode, result.Detection.Framework)))
		for _, name := range result.Files {
			fmt.Printf("   %s\n", filepath.Join(result.Dir, name))
		}
		fmt.Printf("\n%s\n", endingMsgStyle.Render(fmt.Sprintf("Run '%s compose up' to start your stack.", result.ComposeCommand)))
		fmt.Printf("%s\n", tipMsgStyle.Render("Tip: add a database with 'docksmith add db --type postgres'"))
	},
}

type initOptions struct {
	dir       string
	yes       bool
	framework string
	runtime   string
	templates string
	dev       *bool
	port      *int
	envFile   string
	envVars   []string
}

type initResult struct {
	Dir            string             `json:"dir"`
	Detection      detector.Detection `json:"detection"`
	Runtime        runtime.Candidate  `json:"runtime"`
	Mode           string             `json:"mode"`
	Port           int                `json:"port"`
	ComposeCommand string             `json:"compose_command"`
	Files          []string           `json:"files"`
}

// prompter is the interactive side of init. A nil prompter means no prompts.
type prompter interface {
	ChooseFramework(signatures []detector.Signature) (string, error)
	ChooseRuntime(candidates []runtime.Candidate) (string, error)
	Progress(message string, task func() error) error
	Confirm(det detector.Detection, rt runtime.Candidate) (bool, error)
	Questions(framework string, port int, development bool) (sequential.InitAnswers, error)
}

type terminalPrompter struct{}

func (terminalPrompter) ChooseFramework(signatures []detector.Signature) (string, error) {
	step := steps.InitSteps(signatures, nil).Steps["framework"]
	return multiInput.ShowMenu(step.Options, step.Headers)
}

func (terminalPrompter) ChooseRuntime(candidates []runtime.Candidate) (string, error) {
	step := steps.InitSteps(nil, candidates).Steps["runtime"]
	return multiInput.ShowMenu(step.Options, step.Headers)
}

func (terminalPrompter) Progress(message string, task func() error) error {
	return spinner.Run(message, task)
}

func (terminalPrompter) Confirm(det detector.Detection, rt runtime.Candidate) (bool, error) {
	return detection.ShowDetectionResults(det, rt)
}

func (terminalPrompter) Questions(framework string, port int, development bool) (sequential.InitAnswers, error) {
	return sequential.RunInitFlow(framework, port, development)
}

// userSettings layers docksmith.toml < environment < flags.
func userSettings(opts initOptions) (config.Settings, error) {
	dotenv, err := config.ReadDotEnv(opts.dir)
	if err != nil {
		return config.Settings{}, err
	}

	fileSettings, err := config.LoadProjectFile(opts.dir)
	if err != nil {
		return config.Settings{}, err
	}

	envSettings, err := config.FromEnv(config.EnvLookup(dotenv))
	if err != nil {
		return config.Settings{}, err
	}

	extraEnv, err := util.ParseEnvOverrides(opts.envFile, opts.envVars)
	if err != nil {
		return config.Settings{}, err
	}

	flagSettings := config.Settings{
		Framework: opts.framework,
		Runtime:   opts.runtime,
		Templates: opts.templates,
		Dev:       opts.dev,
		Port:      opts.port,
		Env:       extraEnv,
	}

	return fileSettings.Merge(envSettings).Merge(flagSettings), nil
}

// templateStore picks the override directory: an explicit setting, else the
// project's .docksmith/templates when present.
func templateStore(dir, override string) (templates.Store, error) {
	if override == "" {
		candidate := filepath.Join(dir, config.DefaultTemplatesDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			override = candidate
		}
	}
	return templates.New(override)
}

func runInit(ctx context.Context, opts initOptions, p prompter, logger *zap.Logger) (*initResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	user, err := userSettings(opts)
	if err != nil {
		return nil, err
	}

	// Detection completes before anything else is resolved.
	det := detector.New(detector.DefaultSignatures(), logger)
	var found detector.Detection
	if user.Framework != "" {
		found, err = det.Select(os.DirFS(opts.dir), user.Framework)
		if err != nil {
			return nil, err
		}
	} else {
		var ok bool
		found, ok, err = det.Detect(opts.dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			if p == nil || opts.yes {
				return nil, errNoFramework
			}
			name, err := p.ChooseFramework(det.Signatures())
			if err != nil {
				return nil, err
			}
			found, err = det.Select(os.DirFS(opts.dir), name)
			if err != nil {
				return nil, err
			}
		}
	}

	sig, err := det.Lookup(found.Framework)
	if err != nil {
		return nil, err
	}

	prober := newProber(logger)
	var rt runtime.Candidate
	var candidates []runtime.Candidate
	probe := func() error {
		var probeErr error
		if user.Runtime != "" {
			rt, probeErr = prober.Resolve(ctx, user.Runtime)
			return probeErr
		}
		candidates = prober.Probe(ctx)
		rt, probeErr = prober.Choose(candidates)
		return probeErr
	}
	if p != nil {
		err = p.Progress("Probing container runtimes...", probe)
	} else {
		err = probe()
	}
	if err != nil {
		return nil, err
	}

	if p != nil && !opts.yes {
		rt, err = pickRuntime(p, rt, candidates)
		if err != nil {
			return nil, err
		}
	}

	resolved, err := config.Resolve(config.Settings{Framework: found.Framework}, user)
	if err != nil {
		return nil, err
	}

	if p != nil && !opts.yes {
		ok, err := p.Confirm(found, rt)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errSkipped
		}

		answers, err := p.Questions(found.Framework, resolved.PortOrDefault(), resolved.Development())
		if err != nil {
			return nil, err
		}
		resolved = resolved.Merge(config.Settings{
			Port: config.Int(answers.Port),
			Dev:  config.Bool(answers.Development),
		})
	}

	store, err := templateStore(opts.dir, resolved.Templates)
	if err != nil {
		return nil, err
	}

	genOpts := generator.Options{
		Framework:        found.Framework,
		Runtime:          rt.Runtime,
		Development:      resolved.Development(),
		Port:             resolved.PortOrDefault(),
		InterpreterCache: sig.InterpreterCache,
		ProjectName:      util.ProjectName(opts.dir),
		Env:              resolved.Env,
	}

	set, err := generator.NewSynthesizer(store, logger).Generate(ctx, genOpts, opts.dir)
	if err != nil {
		return nil, err
	}

	logger.Debug("init complete",
		zap.String("dir", opts.dir),
		zap.String("framework", found.Framework),
		zap.String("runtime", string(rt.Runtime)))

	return &initResult{
		Dir:            opts.dir,
		Detection:      found,
		Runtime:        rt,
		Mode:           templates.ModeName(genOpts.Development),
		Port:           genOpts.Port,
		ComposeCommand: runtime.GetRuntimeInfo(rt.Runtime).ComposeCommand,
		Files:          set.Names(),
	}, nil
}

// pickRuntime asks the user to choose when more than one runtime answered.
// The preferred runtime is offered first.
func pickRuntime(p prompter, preferred runtime.Candidate, candidates []runtime.Candidate) (runtime.Candidate, error) {
	ordered := []runtime.Candidate{preferred}
	for _, c := range candidates {
		if c.Available && c.Runtime != preferred.Runtime {
			ordered = append(ordered, c)
		}
	}
	if len(ordered) < 2 {
		return preferred, nil
	}

	name, err := p.ChooseRuntime(ordered)
	if err != nil {
		return runtime.Candidate{}, err
	}
	for _, c := range ordered {
		if string(c.Runtime) == name {
			return c, nil
		}
	}
	return runtime.Candidate{}, fmt.Errorf("%w: %s", runtime.ErrRuntimeUnavailable, name)
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip prompts and use defaults")
	initCmd.Flags().StringVarP(&initFramework, "framework", "f", "", "Specify framework manually")
	initCmd.Flags().BoolVarP(&initDev, "dev", "d", false, "Generate development configuration")
	initCmd.Flags().StringVarP(&initPort, "port", "p", "", "Specify port number")
	initCmd.Flags().StringVar(&initRuntime, "runtime", "", "Target a specific runtime (docker, podman, orbstack, lima)")
	initCmd.Flags().StringVar(&initTemplates, "templates", "", "Directory of Dockerfile templates overriding the built-in ones")
	initCmd.Flags().StringVar(&initEnvFile, "env-file", "", "Env file whose variables are added to the app service")
	initCmd.Flags().StringArrayVar(&initEnvVars, "env", nil, "Extra app environment variable KEY=VALUE (repeatable)")
}
