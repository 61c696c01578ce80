package menu

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/csvplay/internal/player"
	"github.com/llehouerou/csvplay/internal/playlist"
)

// row is one listed song. pos is its playlist position; in shuffled
// listings it differs from the printed number.
type row struct {
	pos  int
	song playlist.Song
}

type renderer struct {
	out     io.Writer
	align   bool
	header  lipgloss.Style
	playing lipgloss.Style
}

func newRenderer(out io.Writer, align bool) *renderer {
	r := lipgloss.NewRenderer(out)
	return &renderer{
		out:     out,
		align:   align,
		header:  r.NewStyle().Bold(true),
		playing: r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func (r *renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *renderer) menu() {
	r.printf("\n%s\n", r.header.Render("Menu:"))
	for _, c := range menuOrder {
		r.printf("%d. %s\n", c, c.Label())
	}
}

// songs lists rows under title. playingPos marks the sounding song, 0 for none.
func (r *renderer) songs(title string, rows []row, playingPos int) {
	r.printf("%s\n", r.header.Render(title))
	if len(rows) == 0 {
		r.printf("(no songs)\n")
		return
	}

	titleWidth, artistWidth := 0, 0
	if r.align {
		for _, rw := range rows {
			titleWidth = max(titleWidth, runewidth.StringWidth(rw.song.Title))
			artistWidth = max(artistWidth, runewidth.StringWidth(rw.song.Artist))
		}
	}
	numWidth := len(fmt.Sprint(len(rows)))

	for i, rw := range rows {
		num := fmt.Sprintf("%d.", i+1)
		line := fmt.Sprintf("%s by %s (%s)", rw.song.Title, rw.song.Artist, rw.song.Duration)
		if r.align {
			num = runewidth.FillRight(num, numWidth+1)
			line = fmt.Sprintf("%s by %s (%s)",
				runewidth.FillRight(rw.song.Title, titleWidth),
				runewidth.FillRight(rw.song.Artist, artistWidth),
				rw.song.Duration)
		}
		if playingPos != 0 && rw.pos == playingPos {
			line += " " + r.playing.Render("[playing]")
		}
		r.printf("%s %s\n", num, line)
	}
}

func (r *renderer) nowPlaying(song playlist.Song, src *player.Source) {
	details := ""
	if src != nil {
		var parts []string
		if src.Size > 0 {
			parts = append(parts, humanize.Bytes(uint64(src.Size)))
		}
		if d := src.Duration(); d > 0 {
			parts = append(parts, formatDuration(d))
		}
		if len(parts) > 0 {
			details = " [" + strings.Join(parts, ", ") + "]"
		}
	}
	r.printf("Playing: %s%s\n", song, details)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
