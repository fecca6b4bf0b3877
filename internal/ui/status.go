package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// StatusInfo summarizes an address book and its backing file.
type StatusInfo struct {
	Path           string    `json:"path"`
	Contacts       int       `json:"contacts"`
	LastAssignedID uint64    `json:"last_assigned_id"`
	DistinctNames  int       `json:"distinct_names"`
	DistinctPhones int       `json:"distinct_phones"`
	SharedPhones   int       `json:"shared_phones"` // phone numbers held by more than one contact
	FileSize       int64     `json:"file_size"`
	Modified       time.Time `json:"modified"`
	LockHeld       bool      `json:"lock_held"` // another process is writing
}

// StatusRenderer displays book status.
type StatusRenderer struct {
	out    io.Writer
	styles Styles
}

// NewStatusRenderer creates a status renderer.
func NewStatusRenderer(out io.Writer, noColor bool) *StatusRenderer {
	return &StatusRenderer{
		out:    out,
		styles: GetStyles(noColor),
	}
}

// Render displays status info to the terminal.
func (r *StatusRenderer) Render(info StatusInfo) error {
	_, _ = fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render("Address book: "+info.Path))

	_, _ = fmt.Fprintf(r.out, "  Contacts:       %d\n", info.Contacts)
	_, _ = fmt.Fprintf(r.out, "  Last id:        %d\n", info.LastAssignedID)
	_, _ = fmt.Fprintf(r.out, "  Distinct names: %d\n", info.DistinctNames)
	_, _ = fmt.Fprintf(r.out, "  Phones:         %d", info.DistinctPhones)
	if info.SharedPhones > 0 {
		_, _ = fmt.Fprintf(r.out, " (%s)", r.styles.Warning.Render(fmt.Sprintf("%d shared", info.SharedPhones)))
	}
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintln(r.out)

	_, _ = fmt.Fprintln(r.out, "  File:")
	_, _ = fmt.Fprintf(r.out, "    Size:     %s\n", humanize.IBytes(uint64(max(info.FileSize, 0))))
	if !info.Modified.IsZero() {
		_, _ = fmt.Fprintf(r.out, "    Modified: %s\n", humanize.Time(info.Modified))
	}
	lock := r.styles.Success.Render("free")
	if info.LockHeld {
		lock = r.styles.Warning.Render("held by another process")
	}
	_, _ = fmt.Fprintf(r.out, "    Lock:     %s\n", lock)

	return nil
}

// RenderJSON outputs status as JSON.
func (r *StatusRenderer) RenderJSON(info StatusInfo) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}
