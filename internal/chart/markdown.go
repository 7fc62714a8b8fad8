package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Markdown renders a Figure as a standalone document.
type Markdown struct {
	Width int
	// Now and NewID are overridable for reproducible output.
	Now   func() time.Time
	NewID func() string
}

// Render produces the document: header, box rows, legend and summary table.
func (m Markdown) Render(f *Figure) string {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	newID := uuid.NewString
	if m.NewID != nil {
		newID = m.NewID
	}
	term := Terminal{Width: m.Width}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", f.Title))
	b.WriteString(fmt.Sprintf("Report: %s  \n", newID()))
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", now().UTC().Format(time.RFC3339)))

	b.WriteString("## Distribution\n\n")
	b.WriteString("```\n")
	b.WriteString(term.Boxes(f))
	b.WriteString("```\n")
	for _, l := range f.Lines {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", l.Label, l.Dash))
	}
	if len(f.Legend) > 0 {
		title := f.LegendTitle
		if title == "" {
			title = "Legend"
		}
		b.WriteString(fmt.Sprintf("\n**%s:** ", title))
		parts := make([]string, len(f.Legend))
		for i, it := range f.Legend {
			parts[i] = fmt.Sprintf("%s `%s`", it.Label, it.Color)
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	b.WriteString("\n## Summary\n\n")
	b.WriteString("| ")
	b.WriteString(strings.Join(escapeAll(f.Table.Header), " | "))
	b.WriteString(" |\n|")
	b.WriteString(strings.Repeat(" --- |", len(f.Table.Header)))
	b.WriteString("\n")
	for _, row := range f.Table.Rows {
		b.WriteString("| ")
		b.WriteString(strings.Join(escapeAll(row), " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}

func escapeAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	}
	return out
}
