package schema

import (
	"errors"
	"fmt"
	"strings"
)

// InputError reports that the immersion log could not be located or read.
type InputError struct {
	Path      string
	Discovery bool // True when automatic input discovery found zero or several candidates
	Reason    string
	Err       error
}

func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString("input error")
	if e.Path != "" {
		fmt.Fprintf(&b, " for %q", e.Path)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *InputError) Unwrap() error { return e.Err }

// DataFormatError reports a value that cannot be parsed.
type DataFormatError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	msg := fmt.Sprintf("data format error on line %d: invalid %s value %q", e.Line, e.Column, e.Value)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// UnknownCategoryError reports a media type absent from the weight table.
// It is only returned when strict category checking is enabled.
type UnknownCategoryError struct {
	Line  int
	Media MediaType
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown media type %q on line %d", e.Media, e.Line)
}

// FormatDriftWarning reports that media_type labels no longer share the expected
// namespaced layout. It is never fatal: normalization is skipped and raw labels are kept.
type FormatDriftWarning struct {
	Prefixed   int    // Labels containing the separator
	Unprefixed int    // Labels without the separator
	Example    string // First label without the separator
}

func (w *FormatDriftWarning) Error() string {
	return fmt.Sprintf("logging format has changed: %d of %d media_type labels lack the %q prefix separator (e.g. %q); labels were left unnormalized",
		w.Unprefixed, w.Prefixed+w.Unprefixed, LabelSeparator, w.Example)
}

// ErrNoRecords is returned when nothing is left to aggregate after cleaning and filtering.
var ErrNoRecords = errors.New("no records left after filtering")
