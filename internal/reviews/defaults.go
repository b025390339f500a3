package reviews

// Default draft structures per slot kind. Every section and field a review
// form renders must appear here: Merge guarantees the loaded payload is
// overlaid onto these, so the UI never sees a missing key. Line-item
// sections carry their minimum placeholder rows (one asset row, three
// six-month action-point rows).

func assetRow() map[string]any {
	return map[string]any{
		"asset_name":           "",
		"book_value":           "",
		"estimated_to_realise": "",
		"realised_to_date":     "",
		"notes":                "",
	}
}

func actionPointRow() map[string]any {
	return map[string]any{
		"description": "",
		"owner":       "",
		"due_date":    "",
		"completed":   "",
	}
}

// DefaultDraft returns the default structure for the given slot kind.
// The result is freshly allocated on every call; callers may mutate it.
func DefaultDraft(kind SlotKind) Draft {
	switch kind {
	case CaseStrategy:
		return defaultCaseStrategy()
	case OneMonth:
		return defaultOneMonth()
	case SixMonth:
		return defaultSixMonth()
	case Additional:
		return defaultAdditional()
	default:
		return Draft{}
	}
}

func defaultCaseStrategy() Draft {
	return Draft{
		"strategy": map[string]any{
			"appointment_summary": "",
			"case_objectives":     "",
			"proposed_strategy":   "",
			"exit_route":          "",
		},
		"funding": map[string]any{
			"funding_source":  "",
			"estimated_costs": "",
			"wip_to_date":     "",
		},
		"creditors": map[string]any{
			"secured_position":      "",
			"preferential_position": "",
			"unsecured_estimate":    "",
		},
		"assets": []any{assetRow()},
	}
}

func defaultOneMonth() Draft {
	return Draft{
		"statutory": map[string]any{
			"appointment_notified": "",
			"gazette_placed":       "",
			"bond_in_place":        "",
			"books_secured":        "",
		},
		"tax": map[string]any{
			"tlr_hmrc_owed":       "",
			"tlr_vat_position":    "",
			"tlr_paye_position":   "",
			"tlr_returns_to_date": "",
		},
		"banking": map[string]any{
			"estate_account_opened": "",
			"funds_transferred":     "",
			"receipts_to_date":      "",
		},
		"narrative": map[string]any{
			"progress_summary": "",
			"issues_arising":   "",
		},
	}
}

func defaultSixMonth() Draft {
	return Draft{
		"progress": map[string]any{
			"realisations_summary": "",
			"distributions_made":   "",
			"estimated_completion": "",
		},
		"compliance": map[string]any{
			"bond_adequate":      "",
			"vat_deregistered":   "",
			"reviews_up_to_date": "",
		},
		"fees": map[string]any{
			"time_costs_to_date": "",
			"fees_drawn":         "",
			"fee_basis":          "",
		},
		"action_points": []any{
			actionPointRow(),
			actionPointRow(),
			actionPointRow(),
		},
	}
}

func defaultAdditional() Draft {
	return Draft{
		"review": map[string]any{
			"review_summary":  "",
			"outcome":         "",
			"next_review_due": "",
		},
		"action_points": []any{actionPointRow()},
	}
}
