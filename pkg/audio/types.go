// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM stream formats and sample encodings
package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Encoding identifies a signed-integer PCM sample encoding.
type Encoding int

const (
	// EncodingS8 is signed 8-bit PCM.
	EncodingS8 Encoding = iota
	// EncodingS16 is signed 16-bit little-endian PCM.
	EncodingS16
	// EncodingS24 is signed 24-bit little-endian PCM (3 bytes per sample).
	EncodingS24
	// EncodingS32 is signed 32-bit little-endian PCM.
	EncodingS32
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingS8:
		return "s8"
	case EncodingS16:
		return "s16le"
	case EncodingS24:
		return "s24le"
	case EncodingS32:
		return "s32le"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// Bytes returns the number of bytes per sample for this encoding.
func (e Encoding) Bytes() int {
	switch e {
	case EncodingS8:
		return 1
	case EncodingS24:
		return 3
	case EncodingS32:
		return 4
	default:
		return 2
	}
}

// Format describes a PCM audio stream: sample width in bytes, channel
// count and sample rate. It is constructed once per playback session and
// never mutated afterward.
type Format struct {
	SampleWidth int // bytes per sample: 1, 2, 3 or 4
	Channels    int
	SampleRate  int
}

// Encoding maps the sample width to its signed PCM encoding. Unrecognized
// widths fall back to 16-bit signed, the documented default.
func (f Format) Encoding() Encoding {
	switch f.SampleWidth {
	case 1:
		return EncodingS8
	case 3:
		return EncodingS24
	case 4:
		return EncodingS32
	default:
		return EncodingS16
	}
}

// FrameBytes returns the size of one frame (one sample per channel).
func (f Format) FrameBytes() int {
	return f.Encoding().Bytes() * f.Channels
}

// BytesPerSecond returns the raw PCM data rate.
func (f Format) BytesPerSecond() int {
	return f.FrameBytes() * f.SampleRate
}

// Duration returns the play time of n bytes of PCM data at this format.
func (f Format) Duration(n int) time.Duration {
	bps := f.BytesPerSecond()
	if bps == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(bps)
}

// String returns a human-readable format description.
func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %s", f.SampleRate, f.Channels, f.Encoding())
}

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// SampleToInt16 converts an int32 sample in 24-bit range to int16.
func SampleToInt16(sample int32) int16 {
	return int16(sample >> 8)
}

// SampleFromInt16 converts an int16 sample to int32 (left-justified in 24-bit).
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// PutSample writes one sample value into b using the given encoding,
// little-endian. b must have at least enc.Bytes() bytes.
func PutSample(b []byte, enc Encoding, v int) {
	switch enc {
	case EncodingS8:
		b[0] = byte(int8(v))
	case EncodingS24:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	case EncodingS32:
		binary.LittleEndian.PutUint32(b, uint32(int32(v)))
	default:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	}
}

// Sample reads one little-endian sample value from b using the given
// encoding, sign-extended to int.
func Sample(b []byte, enc Encoding) int {
	switch enc {
	case EncodingS8:
		return int(int8(b[0]))
	case EncodingS24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^int32(0xFFFFFF)
		}
		return int(v)
	case EncodingS32:
		return int(int32(binary.LittleEndian.Uint32(b)))
	default:
		return int(int16(binary.LittleEndian.Uint16(b)))
	}
}
