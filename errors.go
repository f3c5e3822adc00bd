package invoicepdf

import "fmt"

// ValidationError reports caller-supplied data missing a required field.
// It is returned before any drawing starts, so the HTTP boundary can map it
// to a 400 without ever touching a partial document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invoicepdf: invalid %s: %s", e.Field, e.Reason)
}

// RenderError reports a failure while drawing a document. It aborts the
// whole render; no partial PDF is ever returned.
type RenderError struct {
	Section string // section being drawn, e.g. "lineItemTable"
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("invoicepdf: rendering %s: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
