package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/docket/internal/templates"
)

// Report sections in presentation order. Each is drafted independently and
// assembled by the finalize node.
var reportSections = []string{
	"Introduction",
	"Case Progress",
	"Strategy",
	"Asset Realisations",
	"Creditor Matters",
	"Next Steps",
}

const defaultInstructions = `You are drafting a section of an insolvency case progress report
for circulation to creditors. Write in formal British English, third person,
grounded strictly in the case material provided. Do not invent figures,
dates, or events that are not in the material. Respond with a JSON object:
{"body": "<the drafted section text>"}.`

// ComposePrompt builds a drafting prompt from the active report template's
// body, the target section, and the case dossier. When no report template
// is active, built-in instructions are used so drafting never depends on
// template seeding.
func ComposePrompt(ctx context.Context, ts TemplateSource, section string, d *Dossier) (string, error) {
	instructions := defaultInstructions

	tpl, err := ts.ActiveForKind(ctx, templates.KindReport)
	switch {
	case err == nil:
		instructions = tpl.Body
	case errors.Is(err, templates.ErrNotFound):
	default:
		return "", fmt.Errorf("load report template: %w", err)
	}

	dossierJSON, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize dossier: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\nSection to draft: ")
	sb.WriteString(section)
	sb.WriteString("\n\nCase material:\n\n")
	sb.Write(dossierJSON)

	return sb.String(), nil
}

// ComposeRevisePrompt extends the drafting prompt with the sections already
// written, so revised sections stay consistent with the rest of the report.
func ComposeRevisePrompt(ctx context.Context, ts TemplateSource, section string, d *Dossier, draft *ReportDraft) (string, error) {
	prompt, err := ComposePrompt(ctx, ts, section, d)
	if err != nil {
		return "", err
	}

	draftJSON, err := json.MarshalIndent(draft.Sections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize draft state: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nYour previous attempt at this section was empty.")
	sb.WriteString(" Draft it now, consistent with the sections already written:\n\n")
	sb.Write(draftJSON)

	return sb.String(), nil
}
