package sequential

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// InitAnswers holds the values collected by the init flow.
type InitAnswers struct {
	Port        int
	Development bool
}

func CreateInitFlow(framework string, port int, development bool) *FlowModel {
	steps := []Step{
		CreatePortStep("port", strconv.Itoa(port)),
		CreateModeStep("mode", development),
	}

	return NewFlow(fmt.Sprintf("Configure %s container", framework), steps)
}

// ParseInitResults converts raw flow results into answers.
func ParseInitResults(results map[string]string) (InitAnswers, error) {
	port, err := strconv.Atoi(strings.TrimSpace(results["port"]))
	if err != nil {
		return InitAnswers{}, fmt.Errorf("invalid port %q", results["port"])
	}

	return InitAnswers{
		Port:        port,
		Development: results["mode"] == "development",
	}, nil
}

func RunInitFlow(framework string, port int, development bool) (InitAnswers, error) {
	flow := CreateInitFlow(framework, port, development)

	p := tea.NewProgram(flow)
	finalModel, err := p.Run()
	if err != nil {
		return InitAnswers{}, err
	}

	final := finalModel.(FlowModel)
	if final.Cancelled {
		return InitAnswers{}, fmt.Errorf("configuration cancelled")
	}

	if !final.Completed {
		return InitAnswers{}, fmt.Errorf("configuration not completed")
	}

	return ParseInitResults(final.GetResults())
}
