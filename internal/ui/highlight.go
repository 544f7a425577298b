package ui

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightTypeScript colours TypeScript source for a 256-colour terminal.
// The source is returned unchanged if highlighting fails.
func HighlightTypeScript(src string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, src, "typescript", "terminal256", "monokai"); err != nil {
		return src
	}
	return b.String()
}

// Abbreviate keeps the first and last head chunk lines of a rendered
// declaration and replaces the middle with a count.
func Abbreviate(decl string, head int) string {
	lines := strings.Split(decl, "\n")
	if head <= 0 || len(lines) <= 2*head+2 {
		return decl
	}
	omitted := len(lines) - 2*head - 1
	out := make([]string, 0, 2*head+2)
	out = append(out, lines[:head+1]...)
	out = append(out, "  // ... "+strconv.Itoa(omitted)+" more chunks")
	out = append(out, lines[len(lines)-head:]...)
	return strings.Join(out, "\n")
}
