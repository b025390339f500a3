package workflow

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/docket/pkg/formatting"
)

// ReviseNode returns a state node that re-drafts sections that came back
// without a body. The revised prompt includes the sections already written
// so the second attempt stays consistent with the rest of the report. A
// section still empty after revision fails the workflow rather than
// producing a report with a hole in it.
func ReviseNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		dossier, err := extractDossier(s)
		if err != nil {
			return s, fmt.Errorf("revise: %w", err)
		}

		draft, err := extractDraft(s)
		if err != nil {
			return s, fmt.Errorf("revise: %w", err)
		}

		empty := draft.EmptySections()

		if err := reviseSections(ctx, rt, dossier, draft); err != nil {
			return s, fmt.Errorf("revise: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "revise node complete",
			"case_id", dossier.CaseID,
			"sections_revised", len(empty),
		)

		s = s.Set(KeyDraft, *draft)
		return s, nil
	})
}

func reviseSections(ctx context.Context, rt *Runtime, d *Dossier, draft *ReportDraft) error {
	empty := draft.EmptySections()

	// Prompts are composed up front; they marshal the draft, which the
	// goroutines below mutate.
	prompts := make(map[int]string, len(empty))
	for _, i := range empty {
		prompt, err := ComposeRevisePrompt(ctx, rt.Templates, draft.Sections[i].Title, d, draft)
		if err != nil {
			return fmt.Errorf("%w: section %q: %w", ErrReviseFailed, draft.Sections[i].Title, err)
		}
		prompts[i] = prompt
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(empty)))

	for _, i := range empty {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			a, err := agent.New(&rt.Agent)
			if err != nil {
				return fmt.Errorf("section %q: create agent: %w", draft.Sections[i].Title, err)
			}

			resp, err := a.Chat(gctx, prompts[i])
			if err != nil {
				return fmt.Errorf("section %q: chat call: %w", draft.Sections[i].Title, err)
			}

			parsed, err := formatting.Parse[sectionResponse](resp.Content())
			if err != nil {
				return fmt.Errorf("section %q: parse response: %w", draft.Sections[i].Title, err)
			}

			if parsed.Body == "" {
				return fmt.Errorf("section %q: empty after revision", draft.Sections[i].Title)
			}

			draft.Sections[i].Body = parsed.Body
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrReviseFailed, err)
	}

	return nil
}
