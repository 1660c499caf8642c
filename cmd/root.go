package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	jsonOutput      bool
	skipInteractive bool
	verbose         bool

	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	tipMsgStyle    = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
	endingMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	errorMsgStyle  = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("196")).Bold(true)
)

const Logo = `
     _            _                  _ _   _
  __| | ___   ___| | _____ _ __ ___ (_) |_| |__
 / _' |/ _ \ / __| |/ / __| '_ ' _ \| | __| '_ \
| (_| | (_) | (__|   <\__ \ | | | | | | |_| | | |
 \__,_|\___/ \___|_|\_\___/_| |_| |_|_|\__|_| |_|
`

var rootCmd = &cobra.Command{
	Use:   "docksmith",
	Short: "Intelligent container configuration generator",
	Long: Logo + `
docksmith detects your project's framework and the container runtime installed on
this machine, then generates a Dockerfile, compose.yaml, .dockerignore and
README.Docker.md tailored to both.

Supports Next.js, Express, Flask, Django and FastAPI on Docker, Podman, OrbStack and Lima.`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("docksmith version {{.Version}}\n")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detectCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (disables interactive mode)")
	rootCmd.PersistentFlags().BoolVar(&skipInteractive, "no-interactive", false, "Skip interactive prompts (for CI/automation)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
