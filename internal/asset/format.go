package asset

import (
	"fmt"
	"regexp"
	"strings"
)

// Formatter renders an asset as a source-level declaration.
type Formatter interface {
	Format(a Asset) string
}

// TypeScript renders assets as exported `as const` string concatenations.
type TypeScript struct{}

// Format implements Formatter.
func (TypeScript) Format(a Asset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export const %s = '%s'", a.Name, MIMEPrefix)
	for _, chunk := range a.Chunks {
		fmt.Fprintf(&b, "\n  + '%s'", chunk)
	}
	b.WriteString(" as const;")
	return b.String()
}

var (
	declRegex    = regexp.MustCompile(`export const ([A-Za-z_][A-Za-z0-9_]*) = ((?:'[^']*'\s*\+\s*)*'[^']*')\s*as const;`)
	literalRegex = regexp.MustCompile(`'([^']*)'`)
)

// ParseTypeScript reads back declarations produced by TypeScript.Format.
// The returned assets carry Name, Base64 and Chunks; ID is left empty.
func ParseTypeScript(src string) ([]Asset, error) {
	matches := declRegex.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no asset declarations found")
	}

	assets := make([]Asset, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		literals := literalRegex.FindAllStringSubmatch(m[2], -1)
		if literals[0][1] != MIMEPrefix {
			return nil, fmt.Errorf("%s: first literal is %q, want %q", name, literals[0][1], MIMEPrefix)
		}
		chunks := make([]string, 0, len(literals)-1)
		for _, lit := range literals[1:] {
			chunks = append(chunks, lit[1])
		}
		assets = append(assets, Asset{
			Name:   name,
			Base64: strings.Join(chunks, ""),
			Chunks: chunks,
		})
	}
	return assets, nil
}

// CheckChunks verifies that every chunk but the last is exactly width long
// and the last is 1..width.
func CheckChunks(chunks []string, width int) error {
	for i, c := range chunks {
		last := i == len(chunks)-1
		switch {
		case !last && len(c) != width:
			return fmt.Errorf("chunk %d has length %d, want %d", i, len(c), width)
		case last && (len(c) == 0 || len(c) > width):
			return fmt.Errorf("final chunk has length %d, want 1..%d", len(c), width)
		}
	}
	return nil
}
