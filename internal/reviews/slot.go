// Package reviews implements the statutory review domain for Docket.
// It provides the draft model, the debounced auto-save scheduler, the
// edit-lock state machine, session management, persistence mapping,
// and the standalone HTML export for case strategy, 1-month, 6-month,
// and additional review documents.
package reviews

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotKind identifies one of the fixed review document slots on a case.
type SlotKind string

// Review slot kinds. CaseStrategy, OneMonth, and SixMonth exist implicitly
// on every case; Additional slots are created explicitly and addressed by index.
const (
	CaseStrategy SlotKind = "case_strategy"
	OneMonth     SlotKind = "one_month"
	SixMonth     SlotKind = "six_month"
	Additional   SlotKind = "additional"
)

// Slot addresses a single review document on a case. Index is meaningful
// only when Kind is Additional.
type Slot struct {
	Kind  SlotKind
	Index int
}

// String renders the slot as its wire form: the kind name, with the
// element index appended for additional reviews (e.g. "additional/2").
func (s Slot) String() string {
	if s.Kind == Additional {
		return fmt.Sprintf("%s/%d", s.Kind, s.Index)
	}
	return string(s.Kind)
}

// ParseSlot parses the wire form produced by String.
// Returns ErrInvalidSlot for unknown kinds or malformed indexes.
func ParseSlot(raw string) (Slot, error) {
	switch SlotKind(raw) {
	case CaseStrategy, OneMonth, SixMonth:
		return Slot{Kind: SlotKind(raw)}, nil
	}

	if after, ok := strings.CutPrefix(raw, string(Additional)+"/"); ok {
		idx, err := strconv.Atoi(after)
		if err != nil || idx < 0 {
			return Slot{}, fmt.Errorf("%w: %s", ErrInvalidSlot, raw)
		}
		return Slot{Kind: Additional, Index: idx}, nil
	}

	return Slot{}, fmt.Errorf("%w: %s", ErrInvalidSlot, raw)
}

// LocksOnLoad reports whether a freshly opened session for this slot
// starts in the locked state. Periodic reviews open read-only; the case
// strategy and additional reviews open editable.
func (s Slot) LocksOnLoad() bool {
	return s.Kind == OneMonth || s.Kind == SixMonth
}

// Immediate reports whether edits on this slot save without debouncing.
// The six-month review writes through on every mutation.
func (s Slot) Immediate() bool {
	return s.Kind == SixMonth
}
