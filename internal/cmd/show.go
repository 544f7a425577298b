package cmd

import (
	"fmt"

	"github.com/minicodemonkey/sfxgen/internal/asset"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/ui"
)

// ShowOptions contains configuration for the show command.
type ShowOptions struct {
	Common
	ID    string // Effect identifier, e.g. "ufo-elvis"
	Full  bool   // Print every chunk instead of an abbreviated view
	Plain bool   // Disable syntax highlighting
}

// previewChunks is how many chunk lines are kept at each end when abbreviated.
const previewChunks = 3

// RunShow prints the emitted declaration for one effect.
func RunShow(opts ShowOptions) error {
	e, err := opts.Common.resolve()
	if err != nil {
		return err
	}

	effect, err := synth.Lookup(opts.ID)
	if err != nil {
		return err
	}

	assets, err := loadAssets(e.sourcePath())
	if err != nil {
		return err
	}
	for _, a := range assets {
		if a.Name != effect.ConstName {
			continue
		}
		decl := asset.TypeScript{}.Format(a)
		if !opts.Full {
			decl = ui.Abbreviate(decl, previewChunks)
		}
		if !opts.Plain {
			decl = ui.HighlightTypeScript(decl)
		}
		fmt.Fprintln(e.Out, decl)
		return nil
	}
	return fmt.Errorf("constant %s not found in %s. Run 'sfxgen generate' first", effect.ConstName, e.sourcePath())
}
