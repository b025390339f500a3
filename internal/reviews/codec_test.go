package reviews_test

import (
	"encoding/json"
	"testing"

	"github.com/JaimeStill/docket/internal/reviews"
)

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in      string
		want    reviews.Slot
		wantErr bool
	}{
		{"case_strategy", reviews.Slot{Kind: reviews.CaseStrategy}, false},
		{"one_month", reviews.Slot{Kind: reviews.OneMonth}, false},
		{"six_month", reviews.Slot{Kind: reviews.SixMonth}, false},
		{"additional/0", reviews.Slot{Kind: reviews.Additional, Index: 0}, false},
		{"additional/3", reviews.Slot{Kind: reviews.Additional, Index: 3}, false},
		{"additional/-1", reviews.Slot{}, true},
		{"additional/x", reviews.Slot{}, true},
		{"quarterly", reviews.Slot{}, true},
		{"", reviews.Slot{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := reviews.ParseSlot(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSlot(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlot(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSlot(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlotBehaviorFlags(t *testing.T) {
	if !(reviews.Slot{Kind: reviews.OneMonth}).LocksOnLoad() {
		t.Error("one-month slot should load locked")
	}
	if !(reviews.Slot{Kind: reviews.SixMonth}).LocksOnLoad() {
		t.Error("six-month slot should load locked")
	}
	if (reviews.Slot{Kind: reviews.CaseStrategy}).LocksOnLoad() {
		t.Error("case strategy slot should load unlocked")
	}
	if !(reviews.Slot{Kind: reviews.SixMonth}).Immediate() {
		t.Error("six-month edits save without debounce")
	}
	if (reviews.Slot{Kind: reviews.CaseStrategy}).Immediate() {
		t.Error("case strategy edits are debounced")
	}
}

func TestEncodePayloadSixMonthExcludesActionPoints(t *testing.T) {
	draft := reviews.Merge(reviews.DefaultDraft(reviews.SixMonth), nil)
	if draft.List("action_points") == nil {
		t.Fatal("six-month defaults should carry action points in memory")
	}

	encoded, err := reviews.EncodePayload(reviews.Slot{Kind: reviews.SixMonth}, draft)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}

	var stored map[string]any
	if err := json.Unmarshal([]byte(encoded), &stored); err != nil {
		t.Fatalf("encoded payload not valid JSON: %v", err)
	}
	if _, ok := stored["action_points"]; ok {
		t.Error("action_points must not be persisted for the six-month slot")
	}
	if _, ok := stored["progress"]; !ok {
		t.Error("structured sections must be persisted for the six-month slot")
	}

	// Encoding must not strip the section from the live draft.
	if draft.List("action_points") == nil {
		t.Error("encoding mutated the source draft")
	}
}

func TestEncodePayloadTextSlotsKeepEverything(t *testing.T) {
	draft := reviews.Merge(reviews.DefaultDraft(reviews.Additional), nil)

	encoded, err := reviews.EncodePayload(reviews.Slot{Kind: reviews.Additional, Index: 1}, draft)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}

	var stored map[string]any
	if err := json.Unmarshal([]byte(encoded), &stored); err != nil {
		t.Fatalf("encoded payload not valid JSON: %v", err)
	}
	if _, ok := stored["action_points"]; !ok {
		t.Error("additional review payloads include their action points")
	}
}

func TestDecodeSlotPayloadRoundTrip(t *testing.T) {
	slot := reviews.Slot{Kind: reviews.CaseStrategy}
	draft := reviews.Merge(reviews.DefaultDraft(reviews.CaseStrategy), nil)
	draft.Set("strategy", "exit_route", "MVL")

	encoded, err := reviews.EncodePayload(slot, draft)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}

	decoded := reviews.DecodeSlotPayload(slot, encoded, discard())
	if got := decoded.Section("strategy")["exit_route"]; got != "MVL" {
		t.Errorf("round-tripped value = %v, want MVL", got)
	}
	// Defaults backfill anything the stored payload lacks.
	if decoded.List("assets") == nil {
		t.Error("decoded draft missing defaulted assets list")
	}
}

func TestDecodeSlotPayloadMalformedFallsBackToDefaults(t *testing.T) {
	slot := reviews.Slot{Kind: reviews.SixMonth}
	decoded := reviews.DecodeSlotPayload(slot, "{broken", discard())

	if got := len(decoded.List("action_points")); got != 3 {
		t.Errorf("action point rows = %d, want 3 defaults", got)
	}
	if decoded.Section("progress") == nil {
		t.Error("decoded draft missing default progress section")
	}
}

func TestAdditionalReviewsCodec(t *testing.T) {
	date := "2026-05-01"
	items := []reviews.AdditionalReview{
		{ReviewName: "12 Month Review", ReviewNote: `{"review":{}}`, ReviewDate: &date},
		{ReviewName: "Ad-hoc", ReviewNote: "", ReviewDate: nil},
	}

	encoded, err := reviews.EncodeAdditionalReviews(items)
	if err != nil {
		t.Fatalf("EncodeAdditionalReviews() error = %v", err)
	}

	decoded := reviews.DecodeAdditionalReviews(&encoded, discard())
	if len(decoded) != 2 {
		t.Fatalf("decoded %d items, want 2", len(decoded))
	}
	if decoded[0].ReviewName != "12 Month Review" {
		t.Errorf("ReviewName = %q", decoded[0].ReviewName)
	}
	if decoded[0].ReviewDate == nil || *decoded[0].ReviewDate != date {
		t.Errorf("ReviewDate = %v, want %s", decoded[0].ReviewDate, date)
	}
	if decoded[1].ReviewDate != nil {
		t.Errorf("absent date decoded as %v, want nil", *decoded[1].ReviewDate)
	}
}

func TestDecodeAdditionalReviewsTolerant(t *testing.T) {
	malformed := "[{broken"

	tests := []struct {
		name string
		in   *string
	}{
		{"nil", nil},
		{"empty", ptr("")},
		{"malformed", &malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reviews.DecodeAdditionalReviews(tt.in, discard())
			if got == nil || len(got) != 0 {
				t.Errorf("DecodeAdditionalReviews() = %v, want empty slice", got)
			}
		})
	}
}

func TestEncodeAdditionalReviewsNilIsEmptyArray(t *testing.T) {
	encoded, err := reviews.EncodeAdditionalReviews(nil)
	if err != nil {
		t.Fatalf("EncodeAdditionalReviews(nil) error = %v", err)
	}
	if encoded != "[]" {
		t.Errorf("encoded = %q, want empty JSON array", encoded)
	}
}

func ptr(s string) *string { return &s }
