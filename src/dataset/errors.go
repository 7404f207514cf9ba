package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidDataset is matched (errors.Is) by every ConfigError.
var ErrInvalidDataset = errors.New("invalid dataset")

// ConfigError describes one violated dataset invariant, with enough context to
// locate the offending literal.
type ConfigError struct {
	Field    string // series or record name, e.g. "p95 latency" or "chaos"
	Index    int    // element index, -1 when the error is about the whole field
	Expected string
	Actual   string
	Reason   string
}

func (e *ConfigError) Error() string {
	loc := e.Field
	if e.Index >= 0 {
		loc = fmt.Sprintf("%s[%d]", e.Field, e.Index)
	}
	msg := fmt.Sprintf("dataset: %s: %s", loc, e.Reason)
	if e.Expected != "" || e.Actual != "" {
		msg += fmt.Sprintf(" (expected %s, got %s)", e.Expected, e.Actual)
	}
	return msg
}

// Is lets callers test for the whole class of dataset errors.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidDataset }

func fieldErr(field, reason, expected, actual string) *ConfigError {
	return &ConfigError{Field: field, Index: -1, Reason: reason, Expected: expected, Actual: actual}
}

func indexErr(field string, i int, reason, expected, actual string) *ConfigError {
	return &ConfigError{Field: field, Index: i, Reason: reason, Expected: expected, Actual: actual}
}
