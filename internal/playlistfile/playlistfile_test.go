package playlistfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/csvplay/internal/playlist"
)

const sampleCSV = "A,B,3:30,a.wav\n\nC,D,4:00,c.wav\nE,F\n"

func TestParse_SkipsEmptyAndMalformedLines(t *testing.T) {
	p, skipped, err := Parse(strings.NewReader(sampleCSV), "sample")
	require.NoError(t, err)

	require.Equal(t, 2, p.Len())
	first, err := p.Get(1)
	require.NoError(t, err)
	assert.Equal(t, playlist.Song{Title: "A", Artist: "B", Duration: "3:30", Path: "a.wav"}, first)
	second, err := p.Get(2)
	require.NoError(t, err)
	assert.Equal(t, playlist.Song{Title: "C", Artist: "D", Duration: "4:00", Path: "c.wav"}, second)

	require.Len(t, skipped, 1)
	assert.Equal(t, 4, skipped[0].Line)
	assert.Equal(t, "E,F", skipped[0].Content)
	assert.ErrorIs(t, skipped[0], ErrParse)
	assert.Contains(t, skipped[0].Error(), `"E,F"`)
}

func TestParse_SelectionScenario(t *testing.T) {
	p, _, err := Parse(strings.NewReader(sampleCSV), "sample")
	require.NoError(t, err)

	s, err := p.Select(1)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Title)
	assert.Equal(t, "B", s.Artist)

	_, err = p.Select(3)
	assert.ErrorIs(t, err, playlist.ErrOutOfRange)
}

func TestParse_MalformedLines(t *testing.T) {
	long := strings.Repeat("x", MaxFieldLen+1)

	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"too few fields", "E,F", "expected 4 fields, got 2"},
		{"too many fields", "a,b,c,d,e", "expected 4 fields, got 5"},
		{"empty title", ",b,1:00,x.wav", "title is empty"},
		{"blank file", "a,b,1:00,  ", "file is empty"},
		{"title too long", long + ",b,1:00,x.wav", "title longer than 99 characters"},
		{"line too long", strings.Repeat("y", MaxLineLen+1), "line longer than 255 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, skipped, err := Parse(strings.NewReader(tt.line+"\n"), "bad")
			require.NoError(t, err)

			assert.Equal(t, 0, p.Len())
			require.Len(t, skipped, 1)
			assert.Equal(t, tt.reason, skipped[0].Reason)
		})
	}
}

func TestParse_HugeLineIsSkipped(t *testing.T) {
	huge := strings.Repeat("x", 70*1024)
	input := "A,B,3:30,a.wav\n" + huge + "\nC,D,4:00,c.wav\n"

	p, skipped, err := Parse(strings.NewReader(input), "huge")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Line)
	assert.Equal(t, "line longer than 255 characters", skipped[0].Reason)
	assert.LessOrEqual(t, len(skipped[0].Content), MaxLineLen+3)
	s, err := p.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "C", s.Title)
}

func TestParse_TrimsWhitespaceAndCarriageReturns(t *testing.T) {
	p, skipped, err := Parse(strings.NewReader(" Song , Band , 2:05 , song.mp3 \r\n\r\n"), "crlf")
	require.NoError(t, err)

	assert.Empty(t, skipped)
	require.Equal(t, 1, p.Len())
	s, _ := p.Get(1)
	assert.Equal(t, playlist.Song{Title: "Song", Artist: "Band", Duration: "2:05", Path: "song.mp3"}, s)
}

func TestParse_NoTrailingNewline(t *testing.T) {
	p, _, err := Parse(strings.NewReader("A,B,3:30,a.wav"), "single")
	require.NoError(t, err)

	assert.Equal(t, 1, p.Len())
}

func TestParse_KeepsName(t *testing.T) {
	p, _, err := Parse(strings.NewReader(""), "favourites")
	require.NoError(t, err)

	assert.Equal(t, "favourites", p.Name())
	assert.Equal(t, 0, p.Len())
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("music", "road trip.csv"), Path("music", "road trip"))
	assert.Equal(t, "mix.csv", Path("", "mix"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir, "sample")
	content := sampleCSV + "Z,Y,1:00," + filepath.Join(dir, "abs.flac") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, skipped, err := Load(path, "sample")
	require.NoError(t, err)

	assert.Equal(t, "sample", p.Name())
	require.Equal(t, 3, p.Len())
	assert.Len(t, skipped, 1)

	first, _ := p.Get(1)
	assert.Equal(t, filepath.Join(dir, "a.wav"), first.Path, "relative paths resolve next to the playlist")
	third, _ := p.Get(3)
	assert.Equal(t, filepath.Join(dir, "abs.flac"), third.Path)
}

func TestLoad_FileNotFound(t *testing.T) {
	path := Path(t.TempDir(), "missing")

	_, _, err := Load(path, "missing")

	require.ErrorIs(t, err, ErrFileNotFound)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.csv")
}
