package cmd

import (
	"context"
	"fmt"
	"os"

	"docksmith/cmd/ui/detection"
	"docksmith/pkg/detector"
	"docksmith/pkg/runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type detectReport struct {
	Detected   bool                 `json:"detected"`
	Detection  *detector.Detection  `json:"detection,omitempty"`
	Candidates []detector.Detection `json:"candidates"`
	Runtimes   []runtime.Candidate  `json:"runtimes"`
	Selected   *runtime.Candidate   `json:"selected_runtime,omitempty"`
}

var detectCmd = &cobra.Command{
	Use:   "detect [PROJECT_PATH]",
	Short: "Detect the framework and container runtimes without writing files",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectPath := projectPathOrExit(args)

		logger := newLogger()
		defer logger.Sync()

		report, err := runDetect(cmd.Context(), projectPath, logger)
		if err != nil {
			exitWithError(err)
		}

		if jsonOutput || !isTerminal() {
			if err := printJSON(os.Stdout, report); err != nil {
				exitWithError(err)
			}
			return
		}

		if !report.Detected {
			fmt.Printf("%s\n", errorMsgStyle.Render("No supported framework detected in "+projectPath))
		} else {
			var selected runtime.Candidate
			if report.Selected != nil {
				selected = *report.Selected
			}
			fmt.Println(detection.Summary(*report.Detection, selected))
		}

		if report.Selected == nil {
			fmt.Printf("\n%s\n", errorMsgStyle.Render(runtime.ErrNoRuntimeAvailable.Error()))
		}
	},
}

func runDetect(ctx context.Context, projectPath string, logger *zap.Logger) (*detectReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	det := detector.New(detector.DefaultSignatures(), logger)
	found, ok, err := det.Detect(projectPath)
	if err != nil {
		return nil, err
	}

	report := &detectReport{
		Detected:   ok,
		Candidates: det.Evaluate(os.DirFS(projectPath)),
	}
	if ok {
		report.Detection = &found
	}

	prober := newProber(logger)
	report.Runtimes = prober.Probe(ctx)
	if rt, err := prober.Choose(report.Runtimes); err == nil {
		report.Selected = &rt
	}

	return report, nil
}
