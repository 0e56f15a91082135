// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Encoding and sample conversion functions
// Package audio provides fundamental PCM audio types and utilities.
//
// This package defines the core types used throughout the pcmcast library:
//   - Format: Describes a PCM stream (sample width, channels, sample rate)
//   - Encoding: The signed-integer sample encoding derived from a width
//
// It also provides helpers for packing and unpacking little-endian samples
// of any supported width.
//
// Example:
//
//	format := audio.Format{
//	    SampleWidth: 2,
//	    Channels:    1,
//	    SampleRate:  44100,
//	}
//
//	enc := format.Encoding() // audio.EncodingS16
package audio
