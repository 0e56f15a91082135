// ABOUTME: Tests for audio types
// ABOUTME: Tests encoding derivation and sample packing
package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatEncoding(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected Encoding
	}{
		{"8-bit", 1, EncodingS8},
		{"16-bit", 2, EncodingS16},
		{"24-bit", 3, EncodingS24},
		{"32-bit", 4, EncodingS32},
		{"zero falls back to 16-bit", 0, EncodingS16},
		{"unknown falls back to 16-bit", 7, EncodingS16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Format{SampleWidth: tt.width, Channels: 2, SampleRate: 44100}
			assert.Equal(t, tt.expected, f.Encoding())
		})
	}
}

func TestFrameBytes(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected int
	}{
		{"16-bit mono", Format{SampleWidth: 2, Channels: 1, SampleRate: 44100}, 2},
		{"16-bit stereo", Format{SampleWidth: 2, Channels: 2, SampleRate: 44100}, 4},
		{"24-bit stereo", Format{SampleWidth: 3, Channels: 2, SampleRate: 96000}, 6},
		{"32-bit mono", Format{SampleWidth: 4, Channels: 1, SampleRate: 48000}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.FrameBytes())
		})
	}
}

func TestDuration(t *testing.T) {
	f := Format{SampleWidth: 2, Channels: 1, SampleRate: 44100}

	// One second of 16-bit mono at 44100Hz is 88200 bytes.
	assert.Equal(t, time.Second, f.Duration(88200))
	assert.Equal(t, time.Duration(0), Format{}.Duration(1024))
}

func TestEncodingBytes(t *testing.T) {
	assert.Equal(t, 1, EncodingS8.Bytes())
	assert.Equal(t, 2, EncodingS16.Bytes())
	assert.Equal(t, 3, EncodingS24.Bytes())
	assert.Equal(t, 4, EncodingS32.Bytes())
}

func TestPutSampleRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		v    int
	}{
		{"s8 positive", EncodingS8, 100},
		{"s8 negative", EncodingS8, -100},
		{"s16 positive", EncodingS16, 32000},
		{"s16 negative", EncodingS16, -32000},
		{"s24 positive", EncodingS24, 0x123456},
		{"s24 negative", EncodingS24, -8388608},
		{"s32 positive", EncodingS32, 2000000000},
		{"s32 negative", EncodingS32, -2000000000},
		{"zero", EncodingS16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, tt.enc.Bytes())
			PutSample(b, tt.enc, tt.v)
			assert.Equal(t, tt.v, Sample(b, tt.enc))
		})
	}
}

func TestSampleConversions(t *testing.T) {
	assert.Equal(t, int32(100<<8), SampleFromInt16(100))
	assert.Equal(t, int32(-100<<8), SampleFromInt16(-100))
	assert.Equal(t, int16(100), SampleToInt16(100<<8))
	assert.Equal(t, int16(-100), SampleToInt16(-100<<8))
}

func TestFormatString(t *testing.T) {
	f := Format{SampleWidth: 2, Channels: 2, SampleRate: 48000}
	assert.Equal(t, "48000Hz 2ch s16le", f.String())
}
