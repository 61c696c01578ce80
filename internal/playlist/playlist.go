package playlist

import "iter"

// Playlist holds a named, ordered collection of songs addressed by
// 1-based position. Songs are only ever appended.
type Playlist struct {
	name     string
	songs    []Song
	selected int // 1-based, 0 when nothing is selected
}

// New creates a new empty playlist.
func New(name string) *Playlist {
	return &Playlist{
		name:  name,
		songs: make([]Song, 0),
	}
}

// Name returns the playlist's display name.
func (p *Playlist) Name() string {
	return p.name
}

// Append adds songs to the tail of the playlist.
func (p *Playlist) Append(songs ...Song) {
	p.songs = append(p.songs, songs...)
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.songs)
}

// Get returns the song at the given 1-based position.
func (p *Playlist) Get(pos int) (Song, error) {
	if pos < 1 || pos > len(p.songs) {
		return Song{}, &RangeError{Position: pos, Count: len(p.songs)}
	}
	return p.songs[pos-1], nil
}

// Select makes pos the current selection and returns its song.
// On error the previous selection is kept.
func (p *Playlist) Select(pos int) (Song, error) {
	s, err := p.Get(pos)
	if err != nil {
		return Song{}, err
	}
	p.selected = pos
	return s, nil
}

// Selected returns the selected position, if any.
func (p *Playlist) Selected() (int, bool) {
	if p.selected < 1 || p.selected > len(p.songs) {
		return 0, false
	}
	return p.selected, true
}

// ClearSelection drops the current selection.
func (p *Playlist) ClearSelection() {
	p.selected = 0
}

// All iterates over (position, song) pairs in insertion order.
// Positions start at 1. The sequence can be ranged over any number of times.
func (p *Playlist) All() iter.Seq2[int, Song] {
	return func(yield func(int, Song) bool) {
		for i, s := range p.songs {
			if !yield(i+1, s) {
				return
			}
		}
	}
}

// Songs returns a copy of all songs.
func (p *Playlist) Songs() []Song {
	result := make([]Song, len(p.songs))
	copy(result, p.songs)
	return result
}
