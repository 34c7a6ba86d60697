// Package ui renders rewrite reports and decisions in terminal, plain text
// or JSON form.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how reports are written.
type Format int

const (
	// FormatAuto picks terminal or text depending on where output goes
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// aliases accepted by --format besides the canonical names
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat reads a --format value. Matching ignores case.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(s)
	for f, canonical := range formatNames {
		if name == canonical {
			return f, nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// DetectFormat resolves FormatAuto for w. Styled tables are only written to
// a color capable terminal; pipes, buffers and NO_COLOR get plain text.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	f, ok := w.(fdWriter)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(w).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
