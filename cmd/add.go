package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docksmith/pkg/generator"
	"docksmith/pkg/services"

	"github.com/spf13/cobra"
)

var (
	addType string
	addDir  string
)

var addCmd = &cobra.Command{
	Use:   "add <service>",
	Short: "Add a service to existing configuration",
	Long: `Add a backing service (database, cache, ...) to compose.yaml and make the app
service depend on it. The service type defaults to the service name.

Examples:
  docksmith add postgres
  docksmith add db --type mysql
  docksmith add cache -t redis`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := projectPathOrExit([]string{addDir})

		logger := newLogger()
		defer logger.Sync()

		def, err := services.NewAdder(logger).Add(dir, services.AddOptions{
			Name: args[0],
			Type: addType,
		})
		if err != nil {
			exitWithError(err)
		}

		if jsonOutput {
			if err := printJSON(os.Stdout, map[string]any{
				"service": args[0],
				"type":    def.Type,
				"image":   def.Image,
				"port":    def.Port,
			}); err != nil {
				exitWithError(err)
			}
			return
		}

		fmt.Printf("%s\n", endingMsgStyle.Render(fmt.Sprintf("✅ Added %s service '%s' (%s)", def.Type, args[0], def.Image)))

		content, err := os.ReadFile(filepath.Join(dir, generator.ComposeFileName))
		if err != nil {
			return
		}
		if names, err := services.ServiceNames(content); err == nil {
			fmt.Printf("%s\n", tipMsgStyle.Render("Services: "+strings.Join(names, ", ")))
		}
	},
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "Service type (postgres, mysql, redis, mongodb)")
	addCmd.Flags().StringVar(&addDir, "dir", ".", "Directory containing compose.yaml")
}
