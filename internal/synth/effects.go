package synth

import (
	"fmt"
	"math"
)

// Default durations in seconds.
const (
	UFOElvisDuration      = 1.8
	CryptidRumbleDuration = 2.4
	RadioStaticDuration   = 1.5
)

// UFO-Elvis parameters.
const (
	ufoDecay        = 2.0
	ufoCarrierHz    = 780.0
	ufoHarmonicHz   = 1560.0
	ufoHarmonicGain = 0.5
	ufoPhaseLFOHz   = 6.0
	ufoPhaseDepth   = 0.5
	ufoVibratoHz    = 920.0
	ufoSweepHz      = 30.0
	ufoSweepRateHz  = 5.0
	ufoVibratoGain  = 0.3
)

// Cryptid-Rumble parameters.
const (
	rumbleAttack     = 0.4
	rumbleHold       = 0.8
	rumbleRelease    = 1.2
	rumbleLowHz      = 52.0
	rumbleSubHz      = 32.0
	rumbleSubGain    = 0.6
	rumbleWobbleHz   = 0.7
	rumbleWobbleAmt  = 0.3
	rumbleNoiseLevel = 0.3
)

// Radio-Static parameters.
const (
	staticAttack       = 0.05
	staticTremoloBase  = 0.7
	staticTremoloDepth = 0.3
	staticTremoloHz    = 18.0
	staticNoiseGain    = 0.35
	staticCrackleProb  = 0.006
	staticCrackleLevel = 0.7
	staticCrackleGain  = 0.2
)

// UFOElvis renders an exponentially decaying AM broadcast sting: a carrier,
// a phase-modulated octave harmonic and a swept vibrato tone.
func UFOElvis(duration float64) ([]float64, error) {
	return render(duration, func(t float64) float64 {
		envelope := math.Exp(-ufoDecay * t)
		carrier := osc(ufoCarrierHz, t)
		harmonic := ufoHarmonicGain * math.Sin(2*math.Pi*ufoHarmonicHz*t+ufoPhaseDepth*osc(ufoPhaseLFOHz, t))
		vibrato := osc(ufoVibratoHz+ufoSweepHz*osc(ufoSweepRateHz, t), t)
		return (carrier + harmonic + ufoVibratoGain*vibrato) * envelope
	})
}

// CryptidRumble renders a low rumble with a slow phase wobble and a noise bed.
// The envelope ramps in over 0.4s and starts releasing at 0.8s.
func CryptidRumble(duration float64, src Source) ([]float64, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	return render(duration, func(t float64) float64 {
		envelope := math.Min(1, t/rumbleAttack) * math.Exp(-rumbleRelease*math.Max(0, t-rumbleHold))
		low := osc(rumbleLowHz, t)
		sub := rumbleSubGain * math.Sin(2*math.Pi*rumbleSubHz*t+rumbleWobbleAmt*osc(rumbleWobbleHz, t))
		noise := uniform(src) * rumbleNoiseLevel
		return (low + sub + noise) * envelope
	})
}

// RadioStatic renders tremolo-shaped white noise with sporadic crackles.
func RadioStatic(duration float64, src Source) ([]float64, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	return render(duration, func(t float64) float64 {
		envelope := math.Min(1, t/staticAttack) * (staticTremoloBase + staticTremoloDepth*osc(staticTremoloHz, t))
		noise := uniform(src)
		crackle := 0.0
		if src.Float64() < staticCrackleProb {
			crackle = uniform(src) * staticCrackleLevel
		}
		return (noise*staticNoiseGain + crackle*staticCrackleGain) * envelope
	})
}

// GenerateFunc renders one effect. Deterministic effects ignore src.
type GenerateFunc func(duration float64, src Source) ([]float64, error)

// Effect describes one generated asset.
type Effect struct {
	ID          string  // kebab-case manifest key
	ConstName   string  // exported constant in the generated module
	Description string  // one-line manifest text
	Duration    float64 // default duration in seconds
	Generate    GenerateFunc
}

// Render generates the effect at its default duration.
func (e Effect) Render(src Source) ([]float64, error) {
	return e.Generate(e.Duration, src)
}

var effects = []Effect{
	{
		ID:          "ufo-elvis",
		ConstName:   "UFO_ELVIS_SFX",
		Description: "Procedural AM broadcast sting with vibrato sweep.",
		Duration:    UFOElvisDuration,
		Generate: func(duration float64, _ Source) ([]float64, error) {
			return UFOElvis(duration)
		},
	},
	{
		ID:          "cryptid-rumble",
		ConstName:   "CRYPTID_RUMBLE_SFX",
		Description: "Low-end subterranean movement with noise textures.",
		Duration:    CryptidRumbleDuration,
		Generate:    CryptidRumble,
	},
	{
		ID:          "radio-static",
		ConstName:   "RADIO_STATIC_SFX",
		Description: "Noisy detuned static with sporadic crackle.",
		Duration:    RadioStaticDuration,
		Generate:    RadioStatic,
	},
}

// Effects returns the registered effects in emission order.
func Effects() []Effect {
	out := make([]Effect, len(effects))
	copy(out, effects)
	return out
}

// Lookup returns the effect with the given ID.
func Lookup(id string) (Effect, error) {
	for _, e := range effects {
		if e.ID == id {
			return e, nil
		}
	}
	return Effect{}, fmt.Errorf("unknown effect %q", id)
}
