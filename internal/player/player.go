// Package player previews generated effects through the system audio device.
package player

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/minicodemonkey/sfxgen/internal/synth"
	"github.com/minicodemonkey/sfxgen/internal/wav"
)

// Player plays mono 16-bit WAV data at synth.SampleRate.
type Player struct {
	context *oto.Context
}

var (
	globalPlayer *Player
	initOnce     sync.Once
	initErr      error
)

// Get returns the global player instance.
// This is a singleton since oto.Context should only be created once.
func Get() (*Player, error) {
	initOnce.Do(func() {
		// oto context: mono, 16-bit signed = 2 bytes
		ctx, ready, err := oto.NewContext(synth.SampleRate, wav.Channels, wav.BitsPerSample/8)
		if err != nil {
			initErr = fmt.Errorf("failed to open audio device: %w", err)
			return
		}
		<-ready

		globalPlayer = &Player{context: ctx}
	})
	return globalPlayer, initErr
}

// Play blocks until data has finished playing or ctx is done.
func (p *Player) Play(ctx context.Context, data []byte) error {
	h, err := wav.ParseHeader(data)
	if err != nil {
		return err
	}
	if h.SampleRate != synth.SampleRate {
		return fmt.Errorf("cannot play %d Hz audio on a %d Hz device", h.SampleRate, synth.SampleRate)
	}
	pcm, err := wav.PCM(data)
	if err != nil {
		return err
	}

	if p.context == nil {
		return nil
	}

	player := p.context.NewPlayer(NewPCMReader(pcm))
	defer player.Close()

	player.Play()

	// Wait for playback to complete
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// PCMReader implements io.Reader for raw PCM data.
type PCMReader struct {
	data   []byte
	offset int
}

// NewPCMReader creates a new PCMReader.
func NewPCMReader(data []byte) *PCMReader {
	return &PCMReader{data: data}
}

// Read implements io.Reader.
func (r *PCMReader) Read(p []byte) (n int, err error) {
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}
	n = copy(p, r.data[r.offset:])
	r.offset += n
	return n, nil
}
