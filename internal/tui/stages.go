package tui

import "github.com/alexisbeaulieu97/weave/internal/orchestrator"

// stageOrder is the fixed sequence a run progresses through, used to compute
// how far the progress bar is filled.
var stageOrder = []orchestrator.State{
	orchestrator.StateDiscovering,
	orchestrator.StateRegistered,
	orchestrator.StateGraphBuilt,
	orchestrator.StateValidated,
	orchestrator.StateGenerated,
	orchestrator.StateWrittenOrSkipped,
	orchestrator.StateDone,
}

func stageIndex(s orchestrator.State) int {
	for i, candidate := range stageOrder {
		if candidate == s {
			return i
		}
	}
	return -1
}
