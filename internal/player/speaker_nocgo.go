//go:build !((linux && cgo) || windows || darwin)

package player

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio on linux requires cgo for ALSA.
const AudioAvailable = false

// SpeakerBackend is a stand-in that never opens a device.
type SpeakerBackend struct{}

// NewSpeakerBackend creates a backend that reports audio as unavailable.
func NewSpeakerBackend(_ time.Duration) *SpeakerBackend {
	return &SpeakerBackend{}
}

// Open always fails with ErrNoAudio.
func (b *SpeakerBackend) Open(_ beep.Format) (Device, error) {
	return nil, ErrNoAudio
}

// Close is a no-op.
func (b *SpeakerBackend) Close() error { return nil }
