// Package output provides consistent CLI output: status lines, contact
// listings in text or JSON, and a progress bar.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/addrbook/internal/contact"
	"github.com/Aman-CERP/addrbook/internal/ui"
)

// NoContacts is printed for an empty result.
const NoContacts = "No contacts found."

// Format selects how results are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (use text or json)", s)
	}
}

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	format Format
	styles ui.Styles
}

// New creates a plain text Writer.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		format: FormatText,
		styles: ui.NoColorStyles(),
	}
}

// NewStyled creates a Writer that colors output when out is a terminal
// and noColor is false.
func NewStyled(out io.Writer, format Format, noColor bool) *Writer {
	return &Writer{
		out:    out,
		format: format,
		styles: ui.GetStyles(!ui.UseColor(out, noColor)),
	}
}

// Format returns the writer's output format.
func (w *Writer) Format() Format {
	return w.format
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", w.styles.Success.Render(msg))
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", w.styles.Warning.Render(msg))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", w.styles.Error.Render(msg))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Println prints a plain line.
func (w *Writer) Println(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Contact prints one contact.
func (w *Writer) Contact(c contact.Contact) error {
	if w.format == FormatJSON {
		return w.JSON(c)
	}
	_, err := fmt.Fprintln(w.out, ui.FormatContact(w.styles, c))
	return err
}

// Contacts prints contacts one per line, or NoContacts when empty.
// In JSON mode an empty result is an empty array.
func (w *Writer) Contacts(contacts []contact.Contact) error {
	if w.format == FormatJSON {
		if contacts == nil {
			contacts = []contact.Contact{}
		}
		return w.JSON(contacts)
	}
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(w.out, NoContacts)
		return err
	}
	for _, c := range contacts {
		if _, err := fmt.Fprintln(w.out, ui.FormatContact(w.styles, c)); err != nil {
			return err
		}
	}
	return nil
}

// JSON prints v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Progress prints a progress bar with message.
func (w *Writer) Progress(current, total int, msg string) {
	if total <= 0 {
		return
	}

	pct := float64(current) / float64(total) * 100
	bar := renderProgressBar(current, total, 30)

	// Carriage return for in-place updates
	_, _ = fmt.Fprintf(w.out, "\r[%s] %.0f%% %s", bar, pct, msg)

	if current >= total {
		_, _ = fmt.Fprintln(w.out)
	}
}

func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = max(0, min(filled, width))

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
