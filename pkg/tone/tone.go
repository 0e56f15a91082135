// ABOUTME: Sine wave chunk generator
// ABOUTME: Produces phase-continuous PCM chunks at fixed or swept frequency
package tone

import (
	"math"

	"github.com/pcmcast/pcmcast-go/pkg/audio"
)

// FrequencyFunc returns the frequency in Hz for a given chunk index,
// allowing sweeps and other schedules.
type FrequencyFunc func(chunkIndex int) float64

// Constant returns a fixed-frequency schedule.
func Constant(hz float64) FrequencyFunc {
	return func(int) float64 { return hz }
}

// Sweep returns a linear sweep from startHz to endHz over numChunks
// chunks.
func Sweep(startHz, endHz float64, numChunks int) FrequencyFunc {
	return func(chunkIndex int) float64 {
		if numChunks <= 1 {
			return startHz
		}
		t := float64(chunkIndex) / float64(numChunks-1)
		return startHz + t*(endHz-startHz)
	}
}

// Generator produces sine wave chunks with phase continuity across chunk
// boundaries. Every channel carries the same signal.
type Generator struct {
	format     audio.Format
	freq       FrequencyFunc
	amplitude  float64
	phase      float64
	chunkIndex int
}

// NewGenerator creates a generator at the given format. amplitude is
// clamped to [0, 1].
func NewGenerator(format audio.Format, freq FrequencyFunc, amplitude float64) *Generator {
	if amplitude < 0 {
		amplitude = 0
	}
	if amplitude > 1 {
		amplitude = 1
	}
	return &Generator{format: format, freq: freq, amplitude: amplitude}
}

// Format returns the generator's PCM format.
func (g *Generator) Format() audio.Format {
	return g.format
}

// NextChunk renders the next chunk of the given frame count as raw PCM
// bytes. The phase offset carries over so consecutive chunks join
// without a discontinuity.
func (g *Generator) NextChunk(frames int) []byte {
	enc := g.format.Encoding()
	width := enc.Bytes()
	hz := g.freq(g.chunkIndex)
	scale := g.amplitude * maxSample(enc)
	step := 2 * math.Pi * hz / float64(g.format.SampleRate)

	chunk := make([]byte, frames*g.format.Channels*width)
	for i := 0; i < frames; i++ {
		v := int(math.Round(scale * math.Sin(g.phase+float64(i)*step)))
		for c := 0; c < g.format.Channels; c++ {
			audio.PutSample(chunk[(i*g.format.Channels+c)*width:], enc, v)
		}
	}

	g.phase = math.Mod(g.phase+float64(frames)*step, 2*math.Pi)
	g.chunkIndex++

	return chunk
}

func maxSample(enc audio.Encoding) float64 {
	switch enc {
	case audio.EncodingS8:
		return 127
	case audio.EncodingS24:
		return 8388607
	case audio.EncodingS32:
		return 2147483647
	default:
		return 32767
	}
}
