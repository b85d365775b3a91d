package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/internal/common"
)

// Diagnostic codes emitted by this module.
const (
	CodeLooseAmbiguous = "loose_ambiguous"
	CodeDropped        = "dropped"
	CodeRightOnly      = "right_only"
	CodeParameterRange = "parameter_out_of_range"
	CodeUnmatched      = "unmatched"
)

// Diagnostics holds all diagnostic information from one operation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class is the full obfuscated name of the class concerned (if any).
	Class string
	// Member is the field or method signature concerned (if any).
	Member string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, class, member string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, class, member))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, member string, suggestions ...string) {
	w := newDiagnostic(DiagnosticWarning, code, message, class, member)
	w.Suggestions = suggestions
	d.Warnings = append(d.Warnings, w)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, member string, suggestions ...string) {
	i := newDiagnostic(DiagnosticInfo, code, message, class, member)
	i.Suggestions = suggestions
	d.Infos = append(d.Infos, i)
}

func newDiagnostic(severity DiagnosticSeverity, code, message, class, member string) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (candidates: " + strings.Join(d.Suggestions, ", ") + ")"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
