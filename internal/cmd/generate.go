// Package cmd provides the sfxgen command implementations: generate, check,
// list, show, play, watch and init. Each RunX function is independent of the
// CLI framework so it can be called from tests.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minicodemonkey/sfxgen/embed"
	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/config"
	"github.com/minicodemonkey/sfxgen/internal/emit"
	"github.com/minicodemonkey/sfxgen/internal/manifest"
	"github.com/minicodemonkey/sfxgen/internal/paths"
	"github.com/minicodemonkey/sfxgen/internal/pipeline"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/ui"
	"go.uber.org/zap"
)

// Common holds settings shared by every command.
type Common struct {
	BaseDir string      // Project root (default: current directory)
	Out     io.Writer   // User-facing output (default: os.Stdout)
	Logger  *zap.Logger // Diagnostics (default: built from config)
}

// env is a resolved Common plus the loaded project config.
type env struct {
	Common
	cfg *config.Config
}

// withDefaults fills in BaseDir and Out.
func (c Common) withDefaults() (Common, error) {
	if c.BaseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return c, fmt.Errorf("failed to get current directory: %w", err)
		}
		c.BaseDir = cwd
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return c, nil
}

func (c Common) resolve() (*env, error) {
	c, err := c.withDefaults()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(c.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.Logger == nil {
		logger, err := cfg.Logger()
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
		c.Logger = logger
	}
	return &env{Common: c, cfg: cfg}, nil
}

func (e *env) sourcePath() string {
	return paths.SourcePath(e.BaseDir, e.cfg.Output.Source)
}

func (e *env) manifestPath() string {
	return paths.ManifestPath(e.BaseDir, e.cfg.Output.Manifest)
}

// GenerateOptions contains configuration for the generate command.
type GenerateOptions struct {
	Common
	Seed    uint64 // Overrides the configured seed when non-zero
	Workers int    // Overrides the configured worker count when non-zero
	Command string // Regenerate command named in the banner
}

// RunGenerate synthesizes every effect and writes the source module and
// manifest.
func RunGenerate(ctx context.Context, opts GenerateOptions) error {
	e, err := opts.Common.resolve()
	if err != nil {
		return err
	}
	_, err = generate(ctx, e, opts.Seed, opts.Workers, opts.Command)
	return err
}

// generate is shared by generate and watch.
func generate(ctx context.Context, e *env, seed uint64, workers int, command string) ([]pipeline.Result, error) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	if workers == 0 {
		workers = e.cfg.Workers
	}

	effects := synth.Effects()
	results, err := pipeline.Run(ctx, pipeline.Options{
		Effects: effects,
		Seed:    seed,
		Workers: workers,
		Logger:  e.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	assets := make([]asset.Asset, len(results))
	for i, r := range results {
		assets[i] = r.Asset
	}

	out := emit.Outputs{
		SourcePath:   e.sourcePath(),
		ManifestPath: e.manifestPath(),
		Banner:       embed.GetSourceBanner(command),
		Assets:       assets,
		Manifest:     manifest.FromEffects(effects),
	}
	if err := emit.Write(out); err != nil {
		return nil, fmt.Errorf("failed to write outputs: %w", err)
	}
	e.Logger.Debug("wrote artifacts",
		zap.String("source", out.SourcePath),
		zap.String("manifest", out.ManifestPath),
	)

	for _, r := range results {
		fmt.Fprintln(e.Out, ui.OK(fmt.Sprintf("%s %s",
			ui.ID(r.Effect.ID),
			ui.Muted(fmt.Sprintf("%d bytes, %d chunks", len(r.WAV), len(r.Asset.Chunks))))))
	}
	fmt.Fprintf(e.Out, "\nWrote %s\nWrote %s\n", out.SourcePath, out.ManifestPath)
	return results, nil
}
