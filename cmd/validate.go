package cmd

import (
	"fmt"
	"os"

	"docksmith/pkg/validate"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [PROJECT_PATH]",
	Short: "Validate container configuration",
	Long: `Check that Dockerfile, compose.yaml, .dockerignore and README.Docker.md exist and
that compose.yaml is well formed. Exits with status 1 when any issue is found.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := projectPathOrExit(args)

		logger := newLogger()
		defer logger.Sync()

		report, err := validate.New(logger).Run(dir)
		if err != nil {
			exitWithError(err)
		}

		if jsonOutput {
			if err := printJSON(os.Stdout, report); err != nil {
				exitWithError(err)
			}
		} else {
			printReport(report)
		}

		if !report.OK() {
			os.Exit(1)
		}
	},
}

func printReport(report *validate.Report) {
	if report.OK() {
		fmt.Printf("%s\n", endingMsgStyle.Render("✅ Configuration is valid"))
		return
	}

	fmt.Printf("%s\n\n", errorMsgStyle.Render(fmt.Sprintf("Found %d issue(s) in %s", len(report.Issues), report.Dir)))
	for _, issue := range report.Issues {
		fmt.Printf("  ✗ %s\n", issue)
	}
	fmt.Printf("\n%s\n", tipMsgStyle.Render("Tip: run 'docksmith init' to regenerate missing files"))
}
