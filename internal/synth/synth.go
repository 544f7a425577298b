// Package synth provides the procedural sound effect generators.
// Each generator maps a duration to a mono sample sequence at SampleRate.
package synth

import (
	"errors"
	"fmt"
	"math"
)

// SampleRate is the fixed rate shared by every generator and the encoder.
const SampleRate = 44100

// MaxDuration is the longest effect, in seconds, a generator will render.
// At SampleRate this keeps the encoded WAV data size within a uint32.
const MaxDuration = 600.0

var (
	// ErrInvalidDuration is returned for non-positive, non-finite, overlong or
	// sub-sample durations.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrNilSource is returned when a noise generator has no random source.
	ErrNilSource = errors.New("nil random source")
)

// Source supplies uniform values in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Float64() float64
}

// NumSamples returns round(duration * SampleRate), rejecting durations that
// would produce an empty sequence.
func NumSamples(duration float64) (int, error) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	if duration > MaxDuration {
		return 0, fmt.Errorf("%w: %v exceeds the %vs maximum", ErrInvalidDuration, duration, MaxDuration)
	}
	n := int(math.Round(duration * SampleRate))
	if n <= 0 {
		return 0, fmt.Errorf("%w: %v rounds to zero samples", ErrInvalidDuration, duration)
	}
	return n, nil
}

// render validates duration and fills a buffer by calling fn for each time step.
func render(duration float64, fn func(t float64) float64) ([]float64, error) {
	n, err := NumSamples(duration)
	if err != nil {
		return nil, err
	}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = fn(float64(i) / SampleRate)
	}
	return samples, nil
}

// uniform maps a [0,1) draw onto [-1,1).
func uniform(src Source) float64 {
	return src.Float64()*2 - 1
}

func osc(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}
