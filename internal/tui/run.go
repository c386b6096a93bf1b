package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/weave/internal/logger"
	"github.com/alexisbeaulieu97/weave/internal/orchestrator"
)

// RunWithProgress drives one orchestrator run behind a live terminal
// progress bar. The run itself executes on a background goroutine; stage
// transitions are forwarded into the Bubbletea program as StageMsg values
// so the render loop never blocks pipeline work.
func RunWithProgress(ctx context.Context, discover orchestrator.DiscoverFunc, opts orchestrator.Options, log *logger.Logger) orchestrator.Result {
	program := tea.NewProgram(NewModel())

	resultCh := make(chan orchestrator.Result, 1)
	go func() {
		opts.OnStage = func(s orchestrator.State) { program.Send(StageMsg(s)) }
		result := orchestrator.Run(ctx, discover, opts, log)
		program.Send(DoneMsg{Result: result})
		resultCh <- result
	}()

	if _, err := program.Run(); err != nil {
		log.Error(err, "progress display failed")
	}

	return <-resultCh
}
