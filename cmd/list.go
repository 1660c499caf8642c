package cmd

import (
	"fmt"
	"os"

	"docksmith/pkg/detector"
	"docksmith/pkg/runtime"
	"docksmith/pkg/services"

	"github.com/spf13/cobra"
)

type listing struct {
	Frameworks []frameworkEntry `json:"frameworks"`
	Services   []serviceEntry   `json:"services"`
	Runtimes   []string         `json:"runtimes"`
}

type frameworkEntry struct {
	Name     string   `json:"name"`
	Language string   `json:"language"`
	Markers  []string `json:"markers"`
}

type serviceEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Port        int    `json:"port"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available frameworks and services",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		l := buildListing()

		if jsonOutput {
			if err := printJSON(os.Stdout, l); err != nil {
				exitWithError(err)
			}
			return
		}

		fmt.Printf("%s\n", logoStyle.Render("Frameworks"))
		for _, fw := range l.Frameworks {
			fmt.Printf("  %-10s %s\n", fw.Name, fw.Language)
		}

		fmt.Printf("\n%s\n", logoStyle.Render("Services"))
		for _, s := range l.Services {
			fmt.Printf("  %-10s %-20s %s\n", s.Type, s.Image, s.Description)
		}

		fmt.Printf("\n%s\n", logoStyle.Render("Runtimes"))
		for _, r := range l.Runtimes {
			fmt.Printf("  %s\n", r)
		}
	},
}

func buildListing() listing {
	var l listing
	for _, sig := range detector.DefaultSignatures() {
		l.Frameworks = append(l.Frameworks, frameworkEntry{
			Name:     sig.Name,
			Language: sig.Language,
			Markers:  sig.Markers,
		})
	}
	for _, def := range services.All() {
		l.Services = append(l.Services, serviceEntry{
			Type:        def.Type,
			Description: def.Description,
			Image:       def.Image,
			Port:        def.Port,
		})
	}
	for _, spec := range runtime.DefaultSpecs() {
		l.Runtimes = append(l.Runtimes, string(spec.Runtime))
	}
	return l
}
