package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// tableStyle is the dark style with no document margin so tables sit flush
// with the rest of the output.
var tableStyle ansi.StyleConfig

func init() {
	tableStyle = styles.DarkStyleConfig
	zero := uint(0)
	tableStyle.Document.Margin = &zero
	tableStyle.Document.StylePrimitive.BlockPrefix = ""
	tableStyle.Document.StylePrimitive.BlockSuffix = ""
}

// EffectRow is one line of the effect table.
type EffectRow struct {
	ID          string
	Const       string
	Duration    float64
	Frames      int
	Bytes       int
	Chunks      int
	Description string
}

// EffectTable builds a markdown table of effects.
func EffectTable(rows []EffectRow) string {
	var b strings.Builder
	b.WriteString("| ID | Constant | Duration | Frames | WAV bytes | Chunks | Description |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| `%s` | `%s` | %.1fs | %d | %d | %d | %s |\n",
			r.ID, r.Const, r.Duration, r.Frames, r.Bytes, r.Chunks, escapeCell(r.Description))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders markdown as styled terminal output. On renderer
// failure the raw markdown is returned.
func RenderMarkdown(markdown string, width int) string {
	if width <= 0 || strings.TrimSpace(markdown) == "" {
		return markdown
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(tableStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}

	// Trim leading/trailing blank lines that glamour adds
	return strings.TrimSpace(rendered)
}

// ansiStripRegex matches ANSI escape codes for stripping in tests.
var ansiStripRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiStripRegex.ReplaceAllString(s, "")
}
