package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"docksmith/pkg/runtime"
	"docksmith/pkg/util"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// newProber builds the runtime prober; tests replace it with a fake runner.
var newProber = func(logger *zap.Logger) *runtime.Prober {
	return runtime.NewProber(runtime.DefaultSpecs(), runtime.WithLogger(logger))
}

// newLogger writes to stderr at warn level, or debug with --verbose.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// interactive reports whether prompts and spinners may be shown.
func interactive() bool {
	return !jsonOutput && !skipInteractive && isTerminal()
}

// projectPathOrExit resolves the optional PATH argument, defaulting to ".".
func projectPathOrExit(args []string) string {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	absPath, err := util.ValidateProjectPath(projectPath)
	if err != nil {
		exitWithError(err)
	}
	return absPath
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
