package ingest

import (
	"errors"
	"fmt"
)

// ErrTooFewLines is returned when the input lacks a header plus at least one
// data line.
var ErrTooFewLines = errors.New("need a header and at least one data line")

// TypeError is returned when a row's type is neither income nor expense after
// layout-specific conversion. It aborts the whole parse because it means the
// layout was misclassified, not that one row is bad.
type TypeError struct {
	Line  int
	Value string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("line %d: unrecognized transaction type %q (expected income or expense)", e.Line, e.Value)
}

// Severity grades a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Reason is a machine-readable diagnostic code.
type Reason string

const (
	ReasonLayoutUncertain     Reason = "layout_uncertain"
	ReasonSingleColumnHeader  Reason = "single_column_header"
	ReasonInsufficientColumns Reason = "insufficient_columns"
	ReasonInvalidAmount       Reason = "invalid_amount"
	ReasonInvalidDate         Reason = "invalid_date"
	ReasonRepeatedHeader      Reason = "repeated_header"
)

// Diagnostic explains why a source line was skipped or looked suspicious.
// Line is 1-based and refers to the original input, blank lines included.
type Diagnostic struct {
	Line     int
	Severity Severity
	Reason   Reason
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
}

func warning(line int, reason Reason, format string, args ...any) Diagnostic {
	return Diagnostic{Line: line, Severity: SeverityWarning, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func rejection(line int, reason Reason, format string, args ...any) Diagnostic {
	return Diagnostic{Line: line, Severity: SeverityError, Reason: reason, Message: fmt.Sprintf(format, args...)}
}
