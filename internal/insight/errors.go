package insight

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Repository.Find when no row exists for the
// requested industry.
var ErrNotFound = errors.New("industry insight not found")

// Storage failure kinds, wrapped around the driver error so callers can
// tell transient timeouts and write contention apart from everything else
// with errors.Is.
var (
	ErrStorageTimeout  = errors.New("storage operation timed out")
	ErrStorageConflict = errors.New("storage write conflict")
)

// Reasons carried by MalformedError.
const (
	ReasonNotParseable   = "not parseable"
	ReasonSchemaMismatch = "schema mismatch"
	ReasonInvalidEnum    = "invalid enum"
)

// MalformedError reports a completion payload that failed validation.
// Field and Value are set when a specific field triggered the failure.
type MalformedError struct {
	Reason string
	Field  string
	Value  string
}

func (e *MalformedError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("malformed insight: %s (field %s, value %q)", e.Reason, e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("malformed insight: %s (field %s)", e.Reason, e.Field)
	default:
		return fmt.Sprintf("malformed insight: %s", e.Reason)
	}
}
