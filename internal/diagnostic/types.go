package diagnostic

import (
	"fmt"
	"slices"
	"strings"

	"schema-tools/internal/common"
)

// Diagnostics holds diagnostics in the order they were reported.
type Diagnostics struct {
	Items []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic (a check ID for lint issues).
	Code string `json:"checkId"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Source names the document this relates to (if any).
	Source string `json:"source,omitempty"`
	// Path is the traversal path inside the document (if any).
	Path string `json:"path"`
	// Context carries structured details such as actual and expected values.
	Context map[string]any `json:"context,omitempty"`
	// Suggestions are potential fixes.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// New creates a diagnostic with the given severity.
func New(sev Severity, code, message, path string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Path:     path,
	}
}

// With returns a copy of d with one context entry added.
func (d Diagnostic) With(key string, value any) Diagnostic {
	ctx := make(map[string]any, len(d.Context)+1)
	for k, v := range d.Context {
		ctx[k] = v
	}

	ctx[key] = value
	d.Context = ctx

	return d
}

// Suggest returns a copy of d with a suggestion appended.
func (d Diagnostic) Suggest(s string) Diagnostic {
	d.Suggestions = append(slices.Clone(d.Suggestions), s)
	return d
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.Items = append(d.Items, diag)
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, source, path string) {
	d.add(SeverityError, code, message, source, path)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, source, path string) {
	d.add(SeverityWarning, code, message, source, path)
}

func (d *Diagnostics) add(sev Severity, code, message, source, path string) {
	d.Items = append(d.Items, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Source:   source,
		Path:     path,
	})
}

// BySeverity returns the diagnostics with the given severity, in order.
func (d *Diagnostics) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic

	for _, it := range d.Items {
		if it.Severity == sev {
			out = append(out, it)
		}
	}

	return out
}

// Errors returns the error diagnostics.
func (d *Diagnostics) Errors() []Diagnostic { return d.BySeverity(SeverityError) }

// Warnings returns the warning diagnostics.
func (d *Diagnostics) Warnings() []Diagnostic { return d.BySeverity(SeverityWarning) }

// Infos returns the info diagnostics.
func (d *Diagnostics) Infos() []Diagnostic { return d.BySeverity(SeverityInfo) }

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return slices.ContainsFunc(d.Items, func(it Diagnostic) bool {
		return it.Severity == SeverityError
	})
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Source != "" {
		prefix = append(prefix, "["+d.Source+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
