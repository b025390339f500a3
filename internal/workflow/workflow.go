package workflow

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the report drafting workflow for a single case. It builds
// the state graph (init → draft → revise? → finalize), executes it, and
// extracts the WorkflowResult from the final state.
func Execute(ctx context.Context, rt *Runtime, caseID uuid.UUID) (*WorkflowResult, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyCaseID, caseID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("docket-report")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("init", InitNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("draft", DraftNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("revise", ReviseNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// init → draft (unconditional)
	if err := graph.AddEdge("init", "draft", nil); err != nil {
		return nil, err
	}

	// draft → revise (when any section came back empty)
	if err := graph.AddEdge("draft", "revise", needsRevision); err != nil {
		return nil, err
	}

	// draft → finalize (when all sections drafted)
	if err := graph.AddEdge("draft", "finalize", state.Not(needsRevision)); err != nil {
		return nil, err
	}

	// revise → finalize (unconditional)
	if err := graph.AddEdge("revise", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("init"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*WorkflowResult, error) {
	draftVal, ok := s.Get(KeyDraft)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyDraft)
	}

	draft, ok := draftVal.(ReportDraft)
	if !ok {
		return nil, fmt.Errorf("%s is not ReportDraft", KeyDraft)
	}

	dossierVal, ok := s.Get(KeyDossier)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyDossier)
	}

	dossier, ok := dossierVal.(Dossier)
	if !ok {
		return nil, fmt.Errorf("%s is not Dossier", KeyDossier)
	}

	return &WorkflowResult{
		CaseID:      dossier.CaseID,
		Reference:   dossier.Reference,
		Draft:       draft,
		CompletedAt: time.Now(),
	}, nil
}

func needsRevision(s state.State) bool {
	val, ok := s.Get(KeyDraft)
	if !ok {
		return false
	}

	draft, ok := val.(ReportDraft)
	if !ok {
		return false
	}

	return draft.NeedsRevision()
}

func workerCount(sectionCount int) int {
	return max(min(runtime.NumCPU(), sectionCount), 1)
}
