package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suykerbuyk/note-connections/internal/host"
)

// NamePrefix starts every report file name; the date follows it.
const NamePrefix = "Note Connections Analysis"

// FileName returns the vault-root file name of a report written at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s %s.md", NamePrefix, t.Format("2006-01-02"))
}

// Render builds the report body: a wikilink bullet per analyzed note,
// followed by the analysis text as returned by the model.
func Render(titles []string, analysis string) string {
	var b strings.Builder

	b.WriteString("# " + NamePrefix + "\n\n")

	b.WriteString("## Analyzed Notes\n")
	for _, t := range titles {
		b.WriteString(fmt.Sprintf("- [[%s]]\n", t))
	}

	b.WriteString("\n## Analysis\n")
	b.WriteString(analysis)
	b.WriteString("\n")

	return b.String()
}

// Write renders the report for docs and creates it as a new document named
// after now. An existing document with the same name is not overwritten; the
// host's error is returned instead.
func Write(ctx context.Context, h host.Host, docs []host.Document, analysis string, now time.Time) (host.Document, error) {
	titles := make([]string, len(docs))
	for i, d := range docs {
		titles[i] = d.Title
	}

	doc, err := h.CreateDocument(ctx, FileName(now), Render(titles, analysis))
	if err != nil {
		return host.Document{}, fmt.Errorf("create report: %w", err)
	}
	return doc, nil
}
