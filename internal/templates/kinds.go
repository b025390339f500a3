package templates

import (
	"encoding/json"
	"slices"
)

// Kind represents the category of case boilerplate a template provides.
type Kind string

// Valid template kinds.
const (
	KindDiary  Kind = "diary"
	KindTask   Kind = "task"
	KindFee    Kind = "fee"
	KindReport Kind = "report"
)

var kinds = []Kind{
	KindDiary,
	KindTask,
	KindFee,
	KindReport,
}

// Kinds returns the list of valid template kinds.
func Kinds() []Kind {
	return kinds
}

// UnmarshalJSON validates that the decoded string is a known kind value.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Kind(raw)
	if !slices.Contains(kinds, v) {
		return ErrInvalidKind
	}
	*k = v
	return nil
}

// ParseKind validates a string as a known template kind.
// Returns ErrInvalidKind if the value is not recognized.
func ParseKind(s string) (Kind, error) {
	v := Kind(s)
	if !slices.Contains(kinds, v) {
		return "", ErrInvalidKind
	}
	return v, nil
}
