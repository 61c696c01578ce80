package player

import (
	"io"

	"github.com/dhowden/tag"
)

// Tags holds the embedded metadata of an audio file.
type Tags struct {
	Title  string
	Artist string
	Album  string
	Year   int
}

// readTags reads embedded tags and rewinds r. Files without readable tags yield nil.
func readTags(r io.ReadSeeker) (*Tags, error) {
	m, err := tag.ReadFrom(r)
	if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil {
		return nil, seekErr
	}
	if err != nil {
		// Missing or unreadable tags never prevent playback.
		return nil, nil //nolint:nilerr // tags are best effort
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	return &Tags{
		Title:  m.Title(),
		Artist: artist,
		Album:  m.Album(),
		Year:   m.Year(),
	}, nil
}
