package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-iirviz/dsp/core"
	"github.com/cwbudde/algo-iirviz/dsp/player"
)

const (
	wavBitDepth  = 16
	wavChannels  = 1
	wavPCMFormat = 1
	wavBlockSize = 4096
	maxInt16     = 32767.0
)

// renderWAV writes frames samples of the player output to a mono 16-bit
// PCM file.
func renderWAV(path string, p *player.Player, sampleRate, frames int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)

	block := make([]float64, wavBlockSize)
	buf := &audio.IntBuffer{
		Data:           make([]int, wavBlockSize),
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		SourceBitDepth: wavBitDepth,
	}

	for remaining := frames; remaining > 0; {
		n := min(remaining, wavBlockSize)
		p.Process(block[:n])

		buf.Data = buf.Data[:n]
		for i, v := range block[:n] {
			buf.Data[i] = quantize16(v)
		}

		if err := enc.Write(buf); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write samples: %w", err)
		}

		remaining -= n
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}

	return f.Close()
}

func quantize16(v float64) int {
	return int(math.Round(core.Clamp(v, -1, 1) * maxInt16))
}
