// ABOUTME: Audio encoder package for writing PCM to containers
// ABOUTME: Provides a streaming WAV writer
// Package encode writes PCM chunk streams into audio containers.
//
// Currently supports WAV.
//
// Example:
//
//	w, err := encode.NewWAVWriter("tone.wav", format)
//	err = w.WriteChunk(chunk)
//	err = w.Close()
package encode
