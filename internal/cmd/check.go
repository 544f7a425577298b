package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/manifest"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/ui"
	"github.com/minicodemonkey/sfxgen/internal/wav"
	"go.uber.org/zap"
)

// CheckOptions contains configuration for the check command.
type CheckOptions struct {
	Common
}

// ErrCheckFailed is returned when any generated artifact fails verification.
var ErrCheckFailed = errors.New("generated assets failed verification")

// RunCheck verifies the emitted module and manifest against the effect
// registry without regenerating anything.
func RunCheck(opts CheckOptions) error {
	e, err := opts.Common.resolve()
	if err != nil {
		return err
	}

	var problems []error
	report := func(id string, err error) {
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", id, err))
			fmt.Fprintln(e.Out, ui.Fail(fmt.Sprintf("%s %v", ui.ID(id), err)))
			return
		}
		fmt.Fprintln(e.Out, ui.OK(ui.ID(id)))
	}

	assets, err := loadAssets(e.sourcePath())
	if err != nil {
		return err
	}
	byName := make(map[string]asset.Asset, len(assets))
	for _, a := range assets {
		if _, dup := byName[a.Name]; dup {
			report(a.Name, errors.New("constant declared more than once"))
			continue
		}
		byName[a.Name] = a
	}

	effects := synth.Effects()
	for _, effect := range effects {
		a, ok := byName[effect.ConstName]
		if !ok {
			report(effect.ID, fmt.Errorf("constant %s missing from %s", effect.ConstName, e.sourcePath()))
			continue
		}
		delete(byName, effect.ConstName)
		report(effect.ID, verifyAsset(effect, a))
	}
	for name := range byName {
		report(name, errors.New("unexpected constant not produced by any effect"))
	}

	report("manifest", verifyManifest(e.manifestPath(), effects))

	if len(problems) > 0 {
		e.Logger.Debug("check failed", zap.Errors("problems", problems))
		return fmt.Errorf("%w: %w", ErrCheckFailed, errors.Join(problems...))
	}
	return nil
}

func loadAssets(path string) ([]asset.Asset, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated module: %w", err)
	}
	assets, err := asset.ParseTypeScript(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return assets, nil
}

func verifyAsset(effect synth.Effect, a asset.Asset) error {
	if err := asset.CheckChunks(a.Chunks, asset.ChunkWidth); err != nil {
		return err
	}
	data, err := a.Bytes()
	if err != nil {
		return err
	}
	h, _, err := wav.Decode(data)
	if err != nil {
		return err
	}
	if h.SampleRate != synth.SampleRate {
		return fmt.Errorf("sample rate %d, want %d", h.SampleRate, synth.SampleRate)
	}
	frames, err := synth.NumSamples(effect.Duration)
	if err != nil {
		return err
	}
	if h.Frames() != frames {
		return fmt.Errorf("%d frames, want %d", h.Frames(), frames)
	}
	return nil
}

func verifyManifest(path string, effects []synth.Effect) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	want := manifest.FromEffects(effects)
	if len(m) != len(want) {
		return fmt.Errorf("has %d entries, want %d", len(m), len(want))
	}
	for i := range want {
		if m[i] != want[i] {
			return fmt.Errorf("entry %d is %q, want %q", i, m[i].ID, want[i].ID)
		}
	}
	return nil
}
