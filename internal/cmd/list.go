package cmd

import (
	"encoding/base64"
	"fmt"

	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/ui"
	"github.com/minicodemonkey/sfxgen/internal/wav"
)

// ListOptions contains configuration for the list command.
type ListOptions struct {
	Common
	Width int  // Render width (default: terminal width)
	Plain bool // Print raw markdown instead of styled output
}

// RunList prints a table of the registered effects and the size of the
// asset each one produces.
func RunList(opts ListOptions) error {
	e, err := opts.Common.resolve()
	if err != nil {
		return err
	}

	rows, err := effectRows(synth.Effects())
	if err != nil {
		return err
	}
	table := ui.EffectTable(rows)

	if opts.Plain {
		fmt.Fprint(e.Out, table)
		return nil
	}
	width := opts.Width
	if width <= 0 {
		width = ui.TerminalWidth()
	}
	fmt.Fprintln(e.Out, ui.RenderMarkdown(table, width))
	return nil
}

// effectRows derives output sizes from the effect durations alone; the
// container size does not depend on the noise seed.
func effectRows(effects []synth.Effect) ([]ui.EffectRow, error) {
	rows := make([]ui.EffectRow, 0, len(effects))
	for _, effect := range effects {
		frames, err := synth.NumSamples(effect.Duration)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", effect.ID, err)
		}
		size := wav.HeaderSize + 2*frames
		encoded := base64.StdEncoding.EncodedLen(size)
		rows = append(rows, ui.EffectRow{
			ID:          effect.ID,
			Const:       effect.ConstName,
			Duration:    effect.Duration,
			Frames:      frames,
			Bytes:       size,
			Chunks:      (encoded + asset.ChunkWidth - 1) / asset.ChunkWidth,
			Description: effect.Description,
		})
	}
	return rows, nil
}
