package player

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, dir string, samples int, format beep.Format) string {
	t.Helper()
	path := filepath.Join(dir, "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, wav.Encode(f, &mockStream{length: samples}, format))
	return path
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.wav", true},
		{"a.WAV", true},
		{"dir/b.mp3", true},
		{"c.flac", true},
		{"d.ogg", true},
		{"e.m4a", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAudioFile(tt.path))
		})
	}
}

func TestFileDecoder_UnsupportedFormat(t *testing.T) {
	_, err := FileDecoder{}.Open("song.m4a")

	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".m4a")
}

func TestFileDecoder_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wav")

	_, err := FileDecoder{}.Open(path)

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileDecoder_GarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a wave file"), 0o600))

	_, err := FileDecoder{}.Open(path)

	require.Error(t, err)
}

func TestFileDecoder_WAV(t *testing.T) {
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: PCM16}
	path := writeWAV(t, t.TempDir(), 22050, format)

	src, err := FileDecoder{}.Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, path, src.Path)
	assert.Equal(t, format.SampleRate, src.Format.SampleRate)
	assert.Equal(t, 2, src.Format.NumChannels)
	assert.Equal(t, PCM16, src.Format.Precision)
	assert.Equal(t, time.Second, src.Duration())
	assert.Positive(t, src.Size)
}

func TestSkipID3v2(t *testing.T) {
	t.Run("no tag rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC0123456789"))

		require.NoError(t, skipID3v2(r))

		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(0), pos)
	})

	t.Run("short input rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("ID3"))

		require.NoError(t, skipID3v2(r))

		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(0), pos)
	})

	t.Run("tag is skipped", func(t *testing.T) {
		header := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 1, 0} // syncsafe size 128
		data := append(header, make([]byte, 128)...)
		data = append(data, []byte("fLaC")...)
		r := bytes.NewReader(data)

		require.NoError(t, skipID3v2(r))

		rest, _ := io.ReadAll(r)
		assert.Equal(t, "fLaC", string(rest))
	})
}

func TestSource_Close(t *testing.T) {
	s := &mockStream{length: 10}
	src := NewSource("x.wav", s, beep.Format{SampleRate: 10})

	require.NoError(t, src.Close())

	assert.True(t, s.closed.Load())
	assert.Equal(t, time.Second, src.Duration())
}
