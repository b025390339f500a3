package workflow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/pkg/formatting"
)

type sectionResponse struct {
	Body string `json:"body"`
}

// DraftNode returns a state node that drafts all report sections using
// bounded errgroup concurrency. Each goroutine creates its own agent and
// drafts one section independently against the shared dossier; cross-section
// consistency is deferred to the finalize node.
func DraftNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		dossier, err := extractDossier(s)
		if err != nil {
			return s, fmt.Errorf("draft: %w", err)
		}

		draft, err := extractDraft(s)
		if err != nil {
			return s, fmt.Errorf("draft: %w", err)
		}

		if err := draftSections(ctx, rt, dossier, draft); err != nil {
			return s, fmt.Errorf("draft: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "draft node complete",
			"case_id", dossier.CaseID,
			"section_count", len(draft.Sections),
		)

		s = s.Set(KeyDraft, *draft)
		return s, nil
	})
}

func extractDossier(s state.State) (*Dossier, error) {
	val, ok := s.Get(KeyDossier)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrDraftFailed, KeyDossier)
	}

	d, ok := val.(Dossier)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Dossier", ErrDraftFailed, KeyDossier)
	}

	return &d, nil
}

func extractDraft(s state.State) (*ReportDraft, error) {
	val, ok := s.Get(KeyDraft)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrDraftFailed, KeyDraft)
	}

	rd, ok := val.(ReportDraft)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not ReportDraft", ErrDraftFailed, KeyDraft)
	}

	return &rd, nil
}

func draftSections(ctx context.Context, rt *Runtime, d *Dossier, draft *ReportDraft) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(draft.Sections)))

	for i := range draft.Sections {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			a, err := agent.New(&rt.Agent)
			if err != nil {
				return fmt.Errorf("section %q: create agent: %w", draft.Sections[i].Title, err)
			}

			prompt, err := ComposePrompt(gctx, rt.Templates, draft.Sections[i].Title, d)
			if err != nil {
				return fmt.Errorf("section %q: %w", draft.Sections[i].Title, err)
			}

			resp, err := a.Chat(gctx, prompt)
			if err != nil {
				return fmt.Errorf("section %q: chat call: %w", draft.Sections[i].Title, err)
			}

			parsed, err := formatting.Parse[sectionResponse](resp.Content())
			if err != nil {
				return fmt.Errorf("section %q: parse response: %w", draft.Sections[i].Title, err)
			}

			draft.Sections[i].Body = parsed.Body
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrDraftFailed, err)
	}

	return nil
}
