// Package player provides the audio side of playback: decoding files into
// sample streams and handing those streams to an output device.
package player

import (
	"errors"

	"github.com/gopxl/beep/v2"
)

// PCM16 is the sample precision, in bytes, requested from the output device.
const PCM16 = 2

var (
	// ErrDeviceBusy is returned when a device is opened while another one is still open.
	ErrDeviceBusy = errors.New("audio device already in use")
	// ErrNoAudio is returned by builds without an audio output.
	ErrNoAudio = errors.New("audio output not available in this build")
)

// Backend opens output devices.
type Backend interface {
	// Open acquires the output device for the given format.
	Open(format beep.Format) (Device, error)
	// Close shuts the audio system down. Open must not be called afterwards.
	Close() error
}

// Device is an open audio output. At most one is open per Backend.
type Device interface {
	// Play starts producing s and returns immediately. done is called once,
	// from its own goroutine, when s is drained.
	Play(s beep.Streamer, done func())
	// Close silences the device and releases it.
	Close() error
}

// Verify implementations at compile time.
var (
	_ Backend = (*SpeakerBackend)(nil)
	_ Backend = (*Mock)(nil)
	_ Decoder = FileDecoder{}
	_ Decoder = (*MockDecoder)(nil)
)
