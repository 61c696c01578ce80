package playlist

import "fmt"

// Song describes one track of a playlist file.
// Duration is a display label and is never parsed.
type Song struct {
	Title    string
	Artist   string
	Duration string
	Path     string // audio source, resolved by the decoder
}

// String renders the song the way playlist rows show it.
func (s Song) String() string {
	return fmt.Sprintf("%s by %s (%s)", s.Title, s.Artist, s.Duration)
}
