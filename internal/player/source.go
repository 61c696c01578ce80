package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extWAV  = ".wav"
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Decoder opens audio files for playback.
type Decoder interface {
	Open(path string) (*Source, error)
}

// Source is a decoded audio file ready to be streamed.
type Source struct {
	Path     string
	Streamer beep.StreamSeekCloser
	Format   beep.Format
	Size     int64 // file size in bytes, 0 if unknown
	Tags     *Tags // embedded tags, nil if the file has none

	file io.Closer
}

// NewSource wraps an already decoded stream.
func NewSource(path string, s beep.StreamSeekCloser, format beep.Format) *Source {
	return &Source{Path: path, Streamer: s, Format: format}
}

// Duration returns the total length of the stream.
func (s *Source) Duration() time.Duration {
	return s.Format.SampleRate.D(s.Streamer.Len())
}

// Close releases the decoder and the underlying file.
func (s *Source) Close() error {
	err := s.Streamer.Close()
	if s.file != nil {
		// Some decoders already closed the file.
		_ = s.file.Close()
		s.file = nil
	}
	return err
}

// FileDecoder decodes local files with beep, picking the codec from the extension.
type FileDecoder struct{}

// IsAudioFile reports whether FileDecoder can open path.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extWAV, extMP3, extFLAC, extOGG:
		return true
	}
	return false
}

// Open decodes path. The returned Source must be closed by the caller.
func (FileDecoder) Open(path string) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsAudioFile(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var size int64
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	tags, err := readTags(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case extWAV:
		streamer, format, err = wav.Decode(f)
	case extMP3:
		streamer, format, err = mp3.Decode(f)
	case extFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := skipID3v2(f); err != nil {
			f.Close()
			return nil, err
		}
		streamer, format, err = flac.Decode(f)
	case extOGG:
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Source{
		Path:     path,
		Streamer: streamer,
		Format:   format,
		Size:     size,
		Tags:     tags,
		file:     f,
	}, nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
