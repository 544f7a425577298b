package cmd

import (
	"fmt"
	"os"

	"github.com/minicodemonkey/sfxgen/embed"
	"github.com/minicodemonkey/sfxgen/internal/config"
	"github.com/minicodemonkey/sfxgen/internal/paths"
)

// InitOptions contains configuration for the init command.
type InitOptions struct {
	Common
	Force bool // Overwrite an existing config
}

// RunInit writes a commented default .sfxgen.yaml into the project.
func RunInit(opts InitOptions) error {
	c, err := opts.Common.withDefaults()
	if err != nil {
		return err
	}

	path := paths.ConfigPath(c.BaseDir)
	if config.Exists(c.BaseDir) && !opts.Force {
		return fmt.Errorf("config file already exists: %s", path)
	}

	text := embed.GetConfigTemplate(paths.DefaultSourcePath, paths.DefaultManifestPath)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	fmt.Fprintf(c.Out, "Created %s\n", path)
	return nil
}
