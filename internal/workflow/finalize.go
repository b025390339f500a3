package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/pkg/formatting"
)

type finalizeResponse struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// FinalizeNode returns a state node that produces the report title and
// executive summary from the completed sections. It performs a single Chat
// inference that reviews the full draft and writes the material that has to
// be consistent with every section at once.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		dossier, err := extractDossier(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		draft, err := extractDraft(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		if err := synthesize(ctx, rt, dossier, draft); err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"case_id", dossier.CaseID,
			"title", draft.Title,
		)

		s = s.Set(KeyDraft, *draft)
		return s, nil
	})
}

func synthesize(ctx context.Context, rt *Runtime, d *Dossier, draft *ReportDraft) error {
	a, err := agent.New(&rt.Agent)
	if err != nil {
		return fmt.Errorf("%w: create agent: %w", ErrFinalizeFailed, err)
	}

	prompt, err := composeFinalizePrompt(d, draft)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFinalizeFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%w: chat call: %w", ErrFinalizeFailed, err)
	}

	parsed, err := formatting.Parse[finalizeResponse](resp.Content())
	if err != nil {
		return fmt.Errorf("%w: parse response: %w", ErrFinalizeFailed, err)
	}

	draft.Title = parsed.Title
	draft.Summary = parsed.Summary

	return nil
}

func composeFinalizePrompt(d *Dossier, draft *ReportDraft) (string, error) {
	sectionsJSON, err := json.MarshalIndent(draft.Sections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize sections: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are finalizing an insolvency case progress report for ")
	sb.WriteString(d.CompanyName)
	sb.WriteString(" (case reference ")
	sb.WriteString(d.Reference)
	sb.WriteString("). Review the drafted sections below and respond with a JSON object: ")
	sb.WriteString(`{"title": "<report title>", "summary": "<executive summary, one paragraph>"}.`)
	sb.WriteString("\n\nDrafted sections:\n\n")
	sb.Write(sectionsJSON)

	return sb.String(), nil
}
