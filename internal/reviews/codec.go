package reviews

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Persisted field mapping per slot. The column names and encodings are
// load-bearing: existing stored data uses them, so they must match
// exactly.
//
//   - case_strategy:  case_strategy_note (JSON text) + case_strategy_note_date
//   - one_month:      review_1_month_note (JSON text) + review_1_month_date
//   - six_month:      review_6_month_note (structured object, action_points
//     excluded) + review_6_month_date
//   - additional:     elements of additional_reviews, each
//     {review_name, review_note (JSON text incl. action points), review_date}
//
// Review dates are always the sibling scalar, never embedded in the
// payload. Action points for the primary six-month slot live only in the
// session draft.

// EncodePayload serializes a draft into the persisted form for the slot.
// Text slots return a JSON string; the six-month slot returns raw JSON of
// the structured object with the action_points section stripped.
func EncodePayload(slot Slot, draft Draft) (string, error) {
	if slot.Kind == SixMonth {
		trimmed := draft.Clone()
		delete(trimmed, "action_points")
		data, err := json.Marshal(trimmed)
		if err != nil {
			return "", fmt.Errorf("encode %s payload: %w", slot, err)
		}
		return string(data), nil
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", slot, err)
	}
	return string(data), nil
}

// DecodeSlotPayload merges a stored payload into the slot's default
// structure, producing the session's initial draft. Malformed payloads
// fall back to pure defaults.
func DecodeSlotPayload(slot Slot, raw any, logger *slog.Logger) Draft {
	loaded := DecodePayload(raw, logger)
	return Merge(DefaultDraft(slot.Kind), loaded)
}

// AdditionalReview is one element of the additional_reviews array field.
type AdditionalReview struct {
	ReviewName string  `json:"review_name"`
	ReviewNote string  `json:"review_note"`
	ReviewDate *string `json:"review_date"`
}

// AdditionalMeta summarizes an additional review for listing.
type AdditionalMeta struct {
	Index      int     `json:"index"`
	ReviewName string  `json:"review_name"`
	ReviewDate *string `json:"review_date"`
}

// EncodeAdditionalReviews marshals the array field for storage.
func EncodeAdditionalReviews(items []AdditionalReview) (string, error) {
	if items == nil {
		items = []AdditionalReview{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode additional reviews: %w", err)
	}
	return string(data), nil
}

// DecodeAdditionalReviews parses the stored array field. Malformed or
// empty text yields an empty slice; parse failures are logged, never raised.
func DecodeAdditionalReviews(raw *string, logger *slog.Logger) []AdditionalReview {
	if raw == nil || *raw == "" {
		return []AdditionalReview{}
	}

	var items []AdditionalReview
	if err := json.Unmarshal([]byte(*raw), &items); err != nil {
		if logger != nil {
			logger.Warn("additional reviews parse failed", "error", err)
		}
		return []AdditionalReview{}
	}
	return items
}
