// Package asset turns binary payloads into chunked base64 data URLs that can
// be embedded as concatenated string literals.
package asset

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// MIMEPrefix starts every emitted data URL.
	MIMEPrefix = "data:audio/wav;base64,"

	// ChunkWidth is the length of every chunk except possibly the last.
	ChunkWidth = 96
)

// Asset is one encoded payload ready for emission.
type Asset struct {
	ID     string // manifest identifier, e.g. "ufo-elvis"
	Name   string // constant name, e.g. "UFO_ELVIS_SFX"
	Base64 string
	Chunks []string
}

// Encode base64-encodes data and splits the result into ChunkWidth chunks.
func Encode(id, name string, data []byte) Asset {
	encoded := base64.StdEncoding.EncodeToString(data)
	return Asset{
		ID:     id,
		Name:   name,
		Base64: encoded,
		Chunks: Chunk(encoded, ChunkWidth),
	}
}

// Chunk splits text into consecutive pieces of width bytes. The last piece
// holds the remainder. Empty text yields no chunks.
func Chunk(text string, width int) []string {
	if width <= 0 {
		panic(fmt.Sprintf("asset: chunk width must be positive, got %d", width))
	}
	chunks := make([]string, 0, (len(text)+width-1)/width)
	for start := 0; start < len(text); start += width {
		end := min(start+width, len(text))
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

// DataURL returns the prefix followed by the joined chunks.
func (a Asset) DataURL() string {
	return MIMEPrefix + strings.Join(a.Chunks, "")
}

// Bytes decodes the chunks back into the original payload.
func (a Asset) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.Join(a.Chunks, ""))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", a.Name, err)
	}
	return data, nil
}

// StripPrefix removes MIMEPrefix from a data URL.
func StripPrefix(url string) (string, error) {
	payload, ok := strings.CutPrefix(url, MIMEPrefix)
	if !ok {
		return "", fmt.Errorf("data url does not start with %q", MIMEPrefix)
	}
	return payload, nil
}
