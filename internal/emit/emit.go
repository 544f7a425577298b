// Package emit writes the generated source module and manifest to disk.
package emit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/manifest"
)

// Outputs holds everything one regeneration writes.
type Outputs struct {
	SourcePath   string
	ManifestPath string
	Banner       string
	Assets       []asset.Asset
	Manifest     manifest.Manifest
	Formatter    asset.Formatter // defaults to asset.TypeScript
}

// RenderSource returns the full text of the generated module.
func RenderSource(banner string, assets []asset.Asset, f asset.Formatter) string {
	if f == nil {
		f = asset.TypeScript{}
	}
	decls := make([]string, len(assets))
	for i, a := range assets {
		decls[i] = f.Format(a)
	}
	return banner + strings.Join(decls, "\n\n") + "\n"
}

// rename is swapped out in tests.
var rename = os.Rename

// Write renders both artifacts and commits them together. Each file is
// staged next to its destination and only renamed into place once both
// stages succeed. Existing files are moved aside first and restored if a
// later rename fails.
func Write(out Outputs) error {
	if len(out.Assets) == 0 {
		return errors.New("no assets to write")
	}
	doc, err := out.Manifest.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	source := RenderSource(out.Banner, out.Assets, out.Formatter)

	files := []struct {
		path string
		data []byte
	}{
		{out.SourcePath, []byte(source)},
		{out.ManifestPath, doc},
	}

	for _, f := range files {
		if info, err := os.Lstat(f.path); err == nil && !info.Mode().IsRegular() {
			return fmt.Errorf("cannot write %s: destination is not a regular file", f.path)
		}
	}

	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(f.path, f.data)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	var done []commit
	for i, f := range files {
		c, err := commitFile(staged[i], f.path)
		if err != nil {
			cleanup()
			for j := len(done) - 1; j >= 0; j-- {
				done[j].rollback()
			}
			return err
		}
		done = append(done, c)
	}
	for _, c := range done {
		c.discardBackup()
	}
	return nil
}

// commit records one renamed file and the backup of what it replaced.
type commit struct {
	path   string
	backup string // empty when there was nothing to replace
}

func (c commit) rollback() {
	if c.backup == "" {
		os.Remove(c.path)
		return
	}
	rename(c.backup, c.path)
}

func (c commit) discardBackup() {
	if c.backup != "" {
		os.Remove(c.backup)
	}
}

// commitFile moves any existing file at path aside, then renames tmp over it.
func commitFile(tmp, path string) (commit, error) {
	c := commit{path: path}
	if _, err := os.Lstat(path); err == nil {
		bak, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.bak")
		if err != nil {
			return c, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		bak.Close()
		if err := rename(path, bak.Name()); err != nil {
			os.Remove(bak.Name())
			return c, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		c.backup = bak.Name()
	}
	if err := rename(tmp, path); err != nil {
		c.rollback()
		return c, fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return c, nil
}

// stage writes data to a temp file in the destination's directory.
func stage(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
