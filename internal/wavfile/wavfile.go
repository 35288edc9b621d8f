// Package wavfile writes synthesized vowels as 16-bit mono WAV files.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
)

// Encode writes pcm as a 16-bit mono WAV stream to w.
func Encode(w io.WriteSeeker, pcm []int16, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavfile: sample rate must be > 0: %d", sampleRate)
	}

	samples := make([]int, len(pcm))
	for i, s := range pcm {
		samples[i] = int(s)
	}
	buffer := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChannels, pcmFormat)
	if err := enc.Write(buffer); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// Write creates path and encodes pcm into it.
func Write(path string, pcm []int16, sampleRate int) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return Encode(file, pcm, sampleRate)
}
