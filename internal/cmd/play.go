package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/minicodemonkey/sfxgen/internal/pipeline"
	"github.com/minicodemonkey/sfxgen/internal/player"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/ui"
	"go.uber.org/zap"
)

// PlayOptions contains configuration for the play command.
type PlayOptions struct {
	Common
	ID         string // Effect identifier
	Seed       uint64 // Seed for a fresh render (default: configured seed)
	FromModule bool   // Play the asset embedded in the generated module instead of rendering
}

// audioPlayer is the subset of player.Player used here.
type audioPlayer interface {
	Play(ctx context.Context, data []byte) error
}

// getPlayer is swapped out in tests.
var getPlayer = func() (audioPlayer, error) {
	p, err := player.Get()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RunPlay previews one effect on the default audio device.
func RunPlay(ctx context.Context, opts PlayOptions) error {
	e, err := opts.Common.resolve()
	if err != nil {
		return err
	}

	effect, err := synth.Lookup(opts.ID)
	if err != nil {
		return err
	}

	data, err := playbackData(e, effect, opts)
	if err != nil {
		return err
	}

	p, err := getPlayer()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.Out, "Playing %s %s\n", ui.ID(effect.ID), ui.Muted(fmt.Sprintf("(%.1fs)", effect.Duration)))
	return p.Play(ctx, data)
}

func playbackData(e *env, effect synth.Effect, opts PlayOptions) ([]byte, error) {
	if opts.FromModule {
		assets, err := loadAssets(e.sourcePath())
		if err != nil {
			return nil, err
		}
		for _, a := range assets {
			if a.Name == effect.ConstName {
				return a.Bytes()
			}
		}
		return nil, fmt.Errorf("constant %s not found in %s", effect.ConstName, e.sourcePath())
	}

	seed := opts.Seed
	if seed == 0 {
		seed = e.cfg.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	e.Logger.Debug("rendering for playback", zap.String("id", effect.ID), zap.Uint64("seed", seed))

	index := 0
	for i, fx := range synth.Effects() {
		if fx.ID == effect.ID {
			index = i
		}
	}
	res, err := pipeline.Build(effect, pipeline.NewSource(seed, index))
	if err != nil {
		return nil, err
	}
	return res.WAV, nil
}
