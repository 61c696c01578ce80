// Package session sequences playback of one playlist song at a time:
// open the source, acquire the device, produce sound, release everything.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/llehouerou/csvplay/internal/player"
	"github.com/llehouerou/csvplay/internal/playlist"
)

// Session tracks whether a song is sounding and owns the device while it is.
//
// The backend finishes tracks on its own goroutine, so all state is guarded
// by mu.
type Session struct {
	mu sync.Mutex

	decoder player.Decoder
	backend player.Backend

	state  State
	pos    int
	song   playlist.Song
	source *player.Source
	device player.Device
	stream *cancellableStreamer
	done   chan struct{} // closed when the bound track ends or is stopped
	gen    uint64        // incremented per Play, used to ignore stale finish callbacks
	closed bool
}

// New creates an idle session.
func New(d player.Decoder, b player.Backend) *Session {
	return &Session{
		decoder: d,
		backend: b,
		state:   Idle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsSounding reports whether a song is playing.
func (s *Session) IsSounding() bool {
	return s.State() == Sounding
}

// Bound returns the playlist position and song being played.
func (s *Session) Bound() (int, playlist.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Sounding {
		return 0, playlist.Song{}, false
	}
	return s.pos, s.song, true
}

// Source returns the decoded source of the bound song, or nil when idle.
func (s *Session) Source() *player.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Play starts the song at playlist position pos. It returns once sound is
// being produced; use Wait to block until the song ends.
//
// On any failure the session stays Idle and nothing stays acquired.
func (s *Session) Play(ctx context.Context, pos int, song playlist.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.state == Sounding {
		return fmt.Errorf("%w: song %d (%s)", ErrInvalidState, s.pos, s.song.Title)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := s.decoder.Open(song.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, song.Path, err)
	}

	format := src.Format
	format.Precision = player.PCM16
	device, err := s.backend.Open(format)
	if err != nil {
		src.Close()
		return fmt.Errorf("%w: %s: %w", ErrDeviceUnavailable, song.Path, err)
	}

	s.gen++
	gen := s.gen
	s.state = Sounding
	s.pos = pos
	s.song = song
	s.source = src
	s.device = device
	s.stream = &cancellableStreamer{streamer: src.Streamer}
	s.done = make(chan struct{})

	slog.Info("playback started",
		"position", pos, "path", song.Path,
		"rate", int(format.SampleRate), "channels", format.NumChannels)
	if src.Tags != nil {
		slog.Debug("embedded tags", "path", song.Path,
			"title", src.Tags.Title, "artist", src.Tags.Artist,
			"album", src.Tags.Album, "year", src.Tags.Year)
	}

	device.Play(s.stream, func() { s.finished(gen) })
	return nil
}

// finished handles the natural end of the track started as generation gen.
func (s *Session) finished(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ignore callbacks from tracks that were already stopped
	if gen != s.gen || s.state != Sounding {
		return
	}
	slog.Debug("playback finished", "position", s.pos, "path", s.song.Path)
	s.releaseLocked()
}

// Stop silences the current song and releases the device. It reports
// false when there was nothing to stop.
func (s *Session) Stop() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Sounding {
		return false, nil
	}
	slog.Info("playback stopped", "position", s.pos, "path", s.song.Path)
	return true, s.releaseLocked()
}

// releaseLocked cancels production, closes the device then the source,
// and returns to Idle. Must be called with mu held.
func (s *Session) releaseLocked() error {
	s.stream.Cancel()

	// The device goes first so the backend stops pulling from the source.
	err := s.device.Close()
	if cerr := s.source.Close(); err == nil && cerr != nil {
		err = cerr
	}
	close(s.done)

	s.state = Idle
	s.pos = 0
	s.song = playlist.Song{}
	s.source = nil
	s.device = nil
	s.stream = nil
	return err
}

// Wait blocks until the current song ends. When ctx is cancelled first the
// song is stopped and ctx's error returned. Wait returns nil immediately
// when idle.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Sounding {
		s.mu.Unlock()
		return nil
	}
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if _, err := s.Stop(); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// Close stops playback and refuses further Play calls.
func (s *Session) Close() error {
	_, err := s.Stop()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return err
}
