// Package wav packs float sample sequences into mono 16-bit PCM RIFF/WAVE
// containers and reads them back.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the length of the canonical 44-byte header.
	HeaderSize = 44

	Channels      = 1
	BitsPerSample = 16
	FormatPCM     = 1

	bytesPerFrame = Channels * BitsPerSample / 8
	fmtChunkSize  = 16

	// FullScale maps a sample of 1.0 to the largest positive frame.
	FullScale = 32767
)

var (
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrEmptySamples      = errors.New("empty sample sequence")
	ErrHeaderMismatch    = errors.New("header byte counts disagree with payload")
	ErrMalformed         = errors.New("malformed wav data")
)

// Header holds the fields of a canonical PCM WAVE header.
type Header struct {
	RIFFSize      uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Frames returns the number of sample frames in the data chunk.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.DataSize) / int(h.BlockAlign)
}

// Clamp limits a sample to [-1, 1].
func Clamp(sample float64) float64 {
	if sample > 1 {
		return 1
	}
	if sample < -1 {
		return -1
	}
	return sample
}

// Quantize clamps a sample and truncates it toward zero onto a 16-bit frame.
func Quantize(sample float64) int16 {
	return int16(Clamp(sample) * FullScale)
}

// Encode returns a complete mono 16-bit WAV file for samples at sampleRate.
func Encode(samples []float64, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if len(samples) == 0 {
		return nil, ErrEmptySamples
	}

	dataSize := len(samples) * bytesPerFrame
	buf := make([]byte, HeaderSize+dataSize)

	// RIFF header
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	// fmt chunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(buf[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(buf[22:24], Channels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*bytesPerFrame))
	binary.LittleEndian.PutUint16(buf[32:34], bytesPerFrame)
	binary.LittleEndian.PutUint16(buf[34:36], BitsPerSample)

	// data chunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	offset := HeaderSize
	for _, s := range samples {
		binary.LittleEndian.PutUint16(buf[offset:offset+2], uint16(Quantize(s)))
		offset += bytesPerFrame
	}

	if err := verify(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// verify re-reads the packed header and checks its sizes against the buffer.
func verify(buf []byte) error {
	h, err := ParseHeader(buf)
	if err != nil {
		return err
	}
	if int(h.DataSize) != len(buf)-HeaderSize || int(h.RIFFSize) != len(buf)-8 {
		return fmt.Errorf("%w: riff=%d data=%d len=%d", ErrHeaderMismatch, h.RIFFSize, h.DataSize, len(buf))
	}
	return nil
}

// ParseHeader reads and validates a canonical 44-byte PCM header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than a header", ErrMalformed, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Header{}, fmt.Errorf("%w: missing RIFF/WAVE markers", ErrMalformed)
	}
	if string(data[12:16]) != "fmt " || binary.LittleEndian.Uint32(data[16:20]) != fmtChunkSize {
		return Header{}, fmt.Errorf("%w: unexpected fmt chunk", ErrMalformed)
	}
	if string(data[36:40]) != "data" {
		return Header{}, fmt.Errorf("%w: missing data chunk", ErrMalformed)
	}

	h := Header{
		RIFFSize:      binary.LittleEndian.Uint32(data[4:8]),
		Format:        binary.LittleEndian.Uint16(data[20:22]),
		Channels:      binary.LittleEndian.Uint16(data[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(data[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(data[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(data[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(data[34:36]),
		DataSize:      binary.LittleEndian.Uint32(data[40:44]),
	}
	if h.Format != FormatPCM || h.BitsPerSample != BitsPerSample || h.Channels != Channels {
		return Header{}, fmt.Errorf("%w: want mono 16-bit PCM, got format=%d channels=%d bits=%d",
			ErrMalformed, h.Format, h.Channels, h.BitsPerSample)
	}
	return h, nil
}

// Decode parses a container produced by Encode and returns its samples
// scaled back to [-1, 1].
func Decode(data []byte) (Header, []float64, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	payload := data[HeaderSize:]
	if int(h.DataSize) != len(payload) || int(h.RIFFSize) != len(data)-8 {
		return Header{}, nil, fmt.Errorf("%w: riff=%d data=%d len=%d", ErrHeaderMismatch, h.RIFFSize, h.DataSize, len(data))
	}

	samples := make([]float64, len(payload)/bytesPerFrame)
	for i := range samples {
		frame := int16(binary.LittleEndian.Uint16(payload[i*bytesPerFrame:]))
		samples[i] = float64(frame) / FullScale
	}
	return h, samples, nil
}

// PCM returns the raw frame bytes following the header.
func PCM(data []byte) ([]byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	end := HeaderSize + int(h.DataSize)
	if end > len(data) {
		return nil, fmt.Errorf("%w: data chunk runs past end of file", ErrMalformed)
	}
	return data[HeaderSize:end], nil
}
