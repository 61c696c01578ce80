//go:build (linux && cgo) || windows || darwin

package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// SpeakerBackend plays through the system speaker.
//
// The speaker can only be initialized once per process, so it keeps the
// sample rate of the first opened track and resamples later ones.
type SpeakerBackend struct {
	mu sync.Mutex

	buffer      time.Duration
	initialized bool
	closed      bool
	sampleRate  beep.SampleRate
	open        *speakerDevice
}

// NewSpeakerBackend creates a backend with the given speaker buffer length.
func NewSpeakerBackend(buffer time.Duration) *SpeakerBackend {
	return &SpeakerBackend{buffer: buffer}
}

// Open initializes the speaker on first use and returns the device.
func (b *SpeakerBackend) Open(format beep.Format) (Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrNoAudio
	}
	if b.open != nil {
		return nil, ErrDeviceBusy
	}

	if !b.initialized {
		b.sampleRate = format.SampleRate
		if err := speaker.Init(b.sampleRate, b.sampleRate.N(b.buffer)); err != nil {
			return nil, fmt.Errorf("init speaker at %d Hz, %d channels: %w",
				format.SampleRate, format.NumChannels, err)
		}
		b.initialized = true
	}

	d := &speakerDevice{backend: b, format: format, rate: b.sampleRate}
	b.open = d
	return d, nil
}

// Close releases the speaker.
func (b *SpeakerBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open != nil {
		speaker.Clear()
		b.open = nil
	}
	if b.initialized {
		speaker.Close()
		b.initialized = false
	}
	b.closed = true
	return nil
}

type speakerDevice struct {
	backend *SpeakerBackend
	format  beep.Format
	rate    beep.SampleRate // speaker rate
}

func (d *speakerDevice) Play(s beep.Streamer, done func()) {
	speaker.Play(beep.Seq(d.resampled(s), beep.Callback(func() {
		// The callback runs under the speaker lock.
		go done()
	})))
}

// resampled converts s to the speaker rate fixed when the device was opened.
func (d *speakerDevice) resampled(s beep.Streamer) beep.Streamer {
	if d.format.SampleRate == d.rate {
		return s
	}
	return beep.Resample(4, d.format.SampleRate, d.rate, s)
}

func (d *speakerDevice) Close() error {
	b := d.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open != d {
		return nil
	}
	speaker.Clear()
	b.open = nil
	return nil
}
