// ABOUTME: Chunk source package for reading PCM from files
// ABOUTME: Provides Source interface and WAV, MP3 and raw implementations
// Package decode provides chunk sources that feed the playback engine.
//
// A Source exposes the stream's PCM format (the collaborator that
// supplies the player's format triple) and yields raw PCM byte chunks of
// whole frames.
//
// Supports: WAV containers, MP3 files and headerless raw PCM.
//
// Example:
//
//	src, err := decode.Open("song.wav")
//	format := src.Format()
//	chunk, err := src.ReadChunk(1024)
package decode
