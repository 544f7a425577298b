// Package pipeline runs every registered effect through synthesis, WAV
// packing and chunked base64 encoding.
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/wav"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a pipeline run.
type Options struct {
	Effects []synth.Effect // defaults to synth.Effects()
	Seed    uint64         // 0 draws a fresh seed
	Workers int            // effects rendered concurrently, minimum 1
	Logger  *zap.Logger
}

// Result is one fully encoded effect.
type Result struct {
	Effect  synth.Effect
	Samples []float64
	WAV     []byte
	Asset   asset.Asset
}

// NewSource returns the random source for the effect at index. Each effect
// gets its own stream so results do not depend on scheduling order.
func NewSource(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// Run renders and encodes all effects. Results are returned in effect order.
// The first failure cancels outstanding work.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Effects == nil {
		opts.Effects = synth.Effects()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}

	log := opts.Logger.With(zap.Uint64("seed", opts.Seed))
	log.Debug("starting pipeline", zap.Int("effects", len(opts.Effects)), zap.Int("workers", opts.Workers))

	results := make([]Result, len(opts.Effects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, effect := range opts.Effects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Build(effect, NewSource(opts.Seed, i))
			if err != nil {
				return err
			}
			results[i] = res
			log.Debug("encoded effect",
				zap.String("id", effect.ID),
				zap.Int("samples", len(res.Samples)),
				zap.Int("bytes", len(res.WAV)),
				zap.Int("chunks", len(res.Asset.Chunks)),
			)
			return nil
		})
	}

	start := time.Now()
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("generated effects", zap.Int("count", len(results)), zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

// Build runs one effect through every stage.
func Build(effect synth.Effect, src synth.Source) (Result, error) {
	samples, err := effect.Render(src)
	if err != nil {
		return Result{}, fmt.Errorf("generating %s: %w", effect.ID, err)
	}
	data, err := wav.Encode(samples, synth.SampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("encoding %s: %w", effect.ID, err)
	}
	return Result{
		Effect:  effect,
		Samples: samples,
		WAV:     data,
		Asset:   asset.Encode(effect.ID, effect.ConstName, data),
	}, nil
}
