// Package manifest builds the identifier-to-description document that ships
// alongside the generated audio module.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/minicodemonkey/sfxgen/internal/synth"
)

// Entry pairs an effect identifier with its human-readable description.
type Entry struct {
	ID          string
	Description string
}

// Manifest is an ordered list of entries. It serializes to a JSON object
// whose keys keep the list order.
type Manifest []Entry

var idRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// FromEffects builds a manifest in registry order.
func FromEffects(effects []synth.Effect) Manifest {
	m := make(Manifest, 0, len(effects))
	for _, e := range effects {
		m = append(m, Entry{ID: e.ID, Description: e.Description})
	}
	return m
}

// IDs returns the identifiers in order.
func (m Manifest) IDs() []string {
	ids := make([]string, len(m))
	for i, e := range m {
		ids[i] = e.ID
	}
	return ids
}

// Validate checks for kebab-case, unique identifiers and non-empty descriptions.
func (m Manifest) Validate() error {
	seen := make(map[string]bool, len(m))
	for _, e := range m {
		if !idRegex.MatchString(e.ID) {
			return fmt.Errorf("invalid manifest id %q: must be kebab-case", e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate manifest id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Description == "" {
			return fmt.Errorf("manifest id %q has an empty description", e.ID)
		}
	}
	return nil
}

// MarshalJSON writes the entries as a single object in list order.
func (m Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string values, keeping key order.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("manifest must be a JSON object")
	}

	var out Manifest
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var desc string
		if err := dec.Decode(&desc); err != nil {
			return fmt.Errorf("manifest id %q: %w", key, err)
		}
		out = append(out, Entry{ID: key, Description: desc})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// Encode renders the manifest as indented JSON.
func (m Manifest) Encode() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(m, "", "  ")
}

// Parse reads a manifest document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}
