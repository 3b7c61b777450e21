// Package errs classifies failures by the phase of a run that produced them.
package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrConnection    = errors.New("connection error")
	ErrSchema        = errors.New("schema error")
	ErrSeedIntegrity = errors.New("seed integrity error")
	ErrQuery         = errors.New("query error")
)

// Phase names used in PhaseError.
const (
	PhaseConnect = "connect"
	PhaseSchema  = "schema"
	PhaseSeed    = "seed"
	PhaseReport  = "report"
)

// PhaseError wraps an underlying error with its kind, the phase it happened
// in and, for query failures, the report name.
type PhaseError struct {
	Kind   error
	Phase  string
	Report string
	Err    error
}

func (e *PhaseError) Error() string {
	if e.Report != "" {
		return fmt.Sprintf("%s: %s %q: %v", e.Phase, e.Kind, e.Report, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Phase, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PhaseError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Connection reports that the store could not be reached.
func Connection(err error) error {
	return &PhaseError{Kind: ErrConnection, Phase: PhaseConnect, Err: err}
}

// Schema reports a DDL failure.
func Schema(err error) error {
	return &PhaseError{Kind: ErrSchema, Phase: PhaseSchema, Err: err}
}

// SeedIntegrity reports a failed clear or insert during seeding.
func SeedIntegrity(err error) error {
	return &PhaseError{Kind: ErrSeedIntegrity, Phase: PhaseSeed, Err: err}
}

// Query reports a failed report query.
func Query(report string, err error) error {
	return &PhaseError{Kind: ErrQuery, Phase: PhaseReport, Report: report, Err: err}
}

// ReportName returns the report a query error belongs to, or "".
func ReportName(err error) string {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Report
	}
	return ""
}
