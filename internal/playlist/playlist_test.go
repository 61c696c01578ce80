package playlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func songsAB() []Song {
	return []Song{
		{Title: "A", Artist: "B", Duration: "3:30", Path: "a.wav"},
		{Title: "C", Artist: "D", Duration: "4:00", Path: "c.wav"},
	}
}

func collect(p *Playlist) ([]int, []Song) {
	var positions []int
	var songs []Song
	for pos, s := range p.All() {
		positions = append(positions, pos)
		songs = append(songs, s)
	}
	return positions, songs
}

func TestNew(t *testing.T) {
	p := New("road trip")

	assert.Equal(t, "road trip", p.Name())
	assert.Equal(t, 0, p.Len())
	assert.NotNil(t, p.Songs(), "Songs() should return empty slice, not nil")

	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPlaylist_Append_PreservesOrder(t *testing.T) {
	p := New("mix")
	titles := []string{"one", "two", "three", "four", "five"}
	for _, title := range titles {
		p.Append(Song{Title: title})
	}

	require.Equal(t, len(titles), p.Len())

	positions, songs := collect(p)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, positions)
	for i, s := range songs {
		assert.Equal(t, titles[i], s.Title)
	}
}

func TestPlaylist_Append_Empty(t *testing.T) {
	p := New("mix")

	p.Append()

	assert.Equal(t, 0, p.Len())
}

func TestPlaylist_All_Restartable(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	_, first := collect(p)
	_, second := collect(p)

	assert.Equal(t, first, second)
}

func TestPlaylist_All_StopsEarly(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	seen := 0
	for range p.All() {
		seen++
		break
	}

	assert.Equal(t, 1, seen)
}

func TestPlaylist_Get(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	s, err := p.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Title)

	s, err = p.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "C", s.Title)
}

func TestPlaylist_Get_OutOfRange(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	tests := []struct {
		name string
		pos  int
	}{
		{"zero", 0},
		{"negative", -1},
		{"past end", 3},
		{"far past end", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Get(tt.pos)
			require.ErrorIs(t, err, ErrOutOfRange)

			var rangeErr *RangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.pos, rangeErr.Position)
			assert.Equal(t, 2, rangeErr.Count)
		})
	}
}

func TestPlaylist_Get_Empty(t *testing.T) {
	p := New("empty")

	_, err := p.Get(1)

	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "empty")
}

func TestPlaylist_Select(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	s, err := p.Select(1)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Title)
	assert.Equal(t, "B", s.Artist)

	pos, ok := p.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestPlaylist_Select_OutOfRangeKeepsSelection(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)
	_, err := p.Select(2)
	require.NoError(t, err)

	for _, pos := range []int{-5, 0, 3} {
		_, err := p.Select(pos)
		require.ErrorIs(t, err, ErrOutOfRange)

		selected, ok := p.Selected()
		assert.True(t, ok)
		assert.Equal(t, 2, selected)
	}
}

func TestPlaylist_Select_OutOfRangeWithoutSelection(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	_, err := p.Select(3)

	require.ErrorIs(t, err, ErrOutOfRange)
	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPlaylist_ClearSelection(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)
	_, _ = p.Select(1)

	p.ClearSelection()

	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPlaylist_Songs_ReturnsCopy(t *testing.T) {
	p := New("mix")
	p.Append(songsAB()...)

	songs := p.Songs()
	songs[0].Title = "modified"

	s, err := p.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Title, "Songs() should return a copy, not the original slice")
}

func TestSong_String(t *testing.T) {
	s := Song{Title: "Hey Jude", Artist: "The Beatles", Duration: "7:11"}

	assert.Equal(t, "Hey Jude by The Beatles (7:11)", s.String())
}
