// Package playlistfile reads playlists stored as "<name>.csv" files.
//
// Each non-empty line holds four comma-separated fields: title, artist,
// duration label and audio file path. There is no header row and no quoting.
package playlistfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/csvplay/internal/playlist"
)

const (
	// Ext is the extension appended to playlist names.
	Ext = ".csv"

	// MaxFieldLen bounds every field of a line.
	MaxFieldLen = 99
	// MaxLineLen bounds a whole line, newline excluded.
	MaxLineLen = 255

	fieldCount = 4
)

var (
	// ErrFileNotFound is returned when the playlist file cannot be opened.
	ErrFileNotFound = errors.New("playlist file not found")
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("malformed playlist line")
)

// ParseError describes a skipped line.
type ParseError struct {
	Line    int
	Content string // clipped to MaxLineLen
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Content)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Path returns the file backing the named playlist inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// Load opens path and parses it into a playlist called name.
func Load(path, name string) (*playlist.Playlist, []*ParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	defer f.Close()

	p, skipped, err := parse(f, name, filepath.Dir(path))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, pe := range skipped {
		slog.Debug("skipping playlist line",
			"file", path, "line", pe.Line, "reason", pe.Reason, "content", pe.Content)
	}
	slog.Debug("playlist loaded", "file", path, "songs", p.Len(), "skipped", len(skipped))
	return p, skipped, nil
}

// Parse reads lines from r. Malformed lines are returned as ParseErrors and
// do not stop the load; only read failures do. File paths are kept as written.
func Parse(r io.Reader, name string) (*playlist.Playlist, []*ParseError, error) {
	return parse(r, name, "")
}

// parse resolves relative file paths against baseDir when it is set.
func parse(r io.Reader, name, baseDir string) (*playlist.Playlist, []*ParseError, error) {
	p := playlist.New(name)
	var skipped []*ParseError

	// Lines have no length cap here; overlong ones become ParseErrors.
	br := bufio.NewReader(r)
	lineNum := 0
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			lineNum++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if line != "" {
				song, reason := parseLine(line)
				switch {
				case reason != "":
					skipped = append(skipped, &ParseError{Line: lineNum, Content: clip(line), Reason: reason})
				case baseDir != "" && !filepath.IsAbs(song.Path):
					song.Path = filepath.Join(baseDir, song.Path)
					p.Append(song)
				default:
					p.Append(song)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
	}

	return p, skipped, nil
}

func clip(line string) string {
	if len(line) > MaxLineLen {
		return line[:MaxLineLen] + "..."
	}
	return line
}

func parseLine(line string) (playlist.Song, string) {
	if len(line) > MaxLineLen {
		return playlist.Song{}, fmt.Sprintf("line longer than %d characters", MaxLineLen)
	}

	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return playlist.Song{}, fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields))
	}

	names := [fieldCount]string{"title", "artist", "duration", "file"}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
		if fields[i] == "" {
			return playlist.Song{}, names[i] + " is empty"
		}
		if len(fields[i]) > MaxFieldLen {
			return playlist.Song{}, fmt.Sprintf("%s longer than %d characters", names[i], MaxFieldLen)
		}
	}

	return playlist.Song{
		Title:    fields[0],
		Artist:   fields[1],
		Duration: fields[2],
		Path:     fields[3],
	}, ""
}
