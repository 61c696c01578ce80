package session

import "errors"

var (
	// ErrInvalidState is returned by Play while a track is sounding.
	ErrInvalidState = errors.New("a track is already playing")
	// ErrDecode wraps failures to open or decode the audio source.
	ErrDecode = errors.New("cannot decode audio source")
	// ErrDeviceUnavailable wraps failures to acquire the output device.
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	// ErrClosed is returned by Play after Close.
	ErrClosed = errors.New("session closed")
)
