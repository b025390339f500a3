// Package workflow implements the report drafting workflow for Docket.
// It provides foundational types, prompt composition, and response parsing
// used by the 4-node state graph (init → draft → revise? → finalize).
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrCaseNotFound   = errors.New("case not found")
	ErrDossierFailed  = errors.New("failed to assemble case dossier")
	ErrDraftFailed    = errors.New("report drafting failed")
	ErrReviseFailed   = errors.New("section revision failed")
	ErrFinalizeFailed = errors.New("report finalization failed")
)
