package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/scriptext/pkg/errors"
	"github.com/pterm/pterm"
)

// Renderer writes command output in one format.
type Renderer interface {
	// RenderReports renders the outcome of a rewrite run
	RenderReports(reports []Report) error

	// RenderEntry renders the decision for a single identifier
	RenderEntry(outputFile string, e Entry) error

	// RenderMessage renders a plain informational message
	RenderMessage(msg string) error

	// RenderError renders a failure
	RenderError(err error) error
}

// NewRenderer returns the renderer for format. FormatAuto must be resolved
// with DetectFormat first; it falls back to text here.
func NewRenderer(format Format, w io.Writer) Renderer {
	switch format {
	case FormatTerminal:
		return &TerminalRenderer{w: w}
	case FormatJSON:
		return &JSONRenderer{w: w}
	default:
		return &TextRenderer{w: w}
	}
}

// TextRenderer renders plain text.
type TextRenderer struct {
	w io.Writer
}

func (r *TextRenderer) RenderReports(reports []Report) error {
	for _, rep := range reports {
		if _, err := io.WriteString(r.w, textReport(rep)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) RenderEntry(outputFile string, e Entry) error {
	_, err := fmt.Fprintf(r.w, "%s on %s: %s\n", e.Identifier, outputFile, describeEntry(e))
	return err
}

func (r *TextRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *TextRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %v\n", err)
	return werr
}

func textReport(rep Report) string {
	var b strings.Builder
	b.WriteString(rep.OutputFile)
	if rep.Skipped {
		b.WriteString(": skipped, nothing configured\n")
		return b.String()
	}
	fmt.Fprintf(&b, ": %d tags, %d scripts", rep.TagCount, len(rep.Entries))
	if rep.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n")
	for _, e := range rep.Entries {
		fmt.Fprintf(&b, "  [%d] %s: %s\n", e.Index, e.Identifier, describeEntry(e))
	}
	return b.String()
}

func describeEntry(e Entry) string {
	s := e.Action
	if e.Module {
		s += ", module"
	}
	return fmt.Sprintf("%s (%s)", s, e.Reason)
}

// TerminalRenderer renders styled output for interactive terminals.
type TerminalRenderer struct {
	w io.Writer
}

func (r *TerminalRenderer) RenderReports(reports []Report) error {
	for i, rep := range reports {
		if i > 0 {
			if _, err := io.WriteString(r.w, "\n"); err != nil {
				return err
			}
		}
		out, err := r.renderReport(rep)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(r.w, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *TerminalRenderer) renderReport(rep Report) (string, error) {
	var b strings.Builder
	title := GetStyle("FilePath").Render(rep.OutputFile)
	if rep.DryRun {
		title += " " + GetStyle("Muted").Render("(dry run)")
	}
	b.WriteString(title + "\n")

	if rep.Skipped {
		b.WriteString(GetStyle("Muted").Render("  nothing configured, left untouched") + "\n")
		return b.String(), nil
	}
	if len(rep.Entries) == 0 {
		b.WriteString(GetStyle("Muted").Render("  no scripts") + "\n")
		return b.String(), nil
	}

	data := pterm.TableData{{"#", "Script", "Action", "Module", "Reason"}}
	for _, e := range rep.Entries {
		module := ""
		if e.Module {
			module = GetStyle("Module").Render("module")
		}
		data = append(data, []string{
			fmt.Sprint(e.Index),
			e.Identifier,
			actionBadge(e.Action),
			module,
			GetStyle("Muted").Render(e.Reason),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render table")
	}
	b.WriteString(table + "\n")
	b.WriteString(summaryLine(rep.Counts()) + "\n")
	return b.String(), nil
}

func (r *TerminalRenderer) RenderEntry(outputFile string, e Entry) error {
	line := fmt.Sprintf("%s on %s: %s", e.Identifier, GetStyle("FilePath").Render(outputFile), actionBadge(e.Action))
	if e.Module {
		line += " " + GetStyle("Module").Render("module")
	}
	line += " " + GetStyle("Muted").Render("("+e.Reason+")")
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func (r *TerminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *TerminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.w, GetStyle("Error").Render("Error:")+" "+err.Error())
	return werr
}

func actionBadge(action string) string {
	switch action {
	case ActionInline:
		return GetStyle("Inline").Render(action)
	case "async":
		return GetStyle("Async").Render(action)
	case "defer":
		return GetStyle("Defer").Render(action)
	default:
		return GetStyle("Sync").Render(action)
	}
}

func summaryLine(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d %s", counts[k], k)
	}
	return GetStyle("Muted").Render(strings.Join(parts, ", "))
}

// JSONRenderer renders machine-readable output.
type JSONRenderer struct {
	w io.Writer
}

func (r *JSONRenderer) encode(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *JSONRenderer) RenderReports(reports []Report) error {
	if reports == nil {
		reports = []Report{}
	}
	return r.encode(reports)
}

func (r *JSONRenderer) RenderEntry(outputFile string, e Entry) error {
	return r.encode(struct {
		OutputFile string `json:"outputFile"`
		Entry
	}{outputFile, e})
}

func (r *JSONRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

func (r *JSONRenderer) RenderError(err error) error {
	out := map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		out["details"] = details
	}
	return r.encode(out)
}
