// Package menu runs the numbered text menu driving a playlist and its
// playback session.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/llehouerou/csvplay/internal/errmsg"
	"github.com/llehouerou/csvplay/internal/player"
	"github.com/llehouerou/csvplay/internal/playlist"
	"github.com/llehouerou/csvplay/internal/session"
)

// Options tune the controller.
type Options struct {
	// WaitForTrack blocks the menu after a song starts until it ends or
	// the wait context is cancelled.
	WaitForTrack bool
	// AlignColumns pads titles and artists when listing songs.
	AlignColumns bool
	// Interrupts delivers Ctrl+C. While waiting for a song it stops the
	// song; at a prompt it ends Run. Nil disables both.
	Interrupts <-chan os.Signal
	// WaitContext derives the context used while waiting for a song.
	// Defaults to one cancelled by the next interrupt.
	WaitContext func(ctx context.Context) (context.Context, context.CancelFunc)
}

// errInterrupted is returned by readLine when an interrupt arrives first.
var errInterrupted = errors.New("interrupted")

// Controller owns the menu loop. Every action works on the playlist and
// session it was built with.
type Controller struct {
	list    *playlist.Playlist
	session *session.Session
	backend player.Backend
	rng     *rand.Rand
	in      *bufio.Scanner
	render  *renderer
	opts    Options

	inputOnce sync.Once
	lines     chan string // closed at end of input
}

// New creates a controller reading choices from in and printing to out.
func New(
	list *playlist.Playlist,
	sess *session.Session,
	backend player.Backend,
	rng *rand.Rand,
	in io.Reader,
	out io.Writer,
	opts Options,
) *Controller {
	c := &Controller{
		list:    list,
		session: sess,
		backend: backend,
		rng:     rng,
		in:      bufio.NewScanner(in),
		render:  newRenderer(out, opts.AlignColumns),
		opts:    opts,
		lines:   make(chan string),
	}
	if c.opts.WaitContext == nil {
		c.opts.WaitContext = c.untilInterrupt
	}
	return c
}

// Run shows the menu until Exit is chosen, input ends or ctx is done.
// Playback is stopped and the backend shut down before it returns.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Join(err, c.shutdown())
		}

		c.render.menu()
		c.render.printf("Enter your choice: ")
		line, err := c.readLine(ctx)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, errInterrupted):
			c.render.printf("\n")
			return c.exit()
		case err != nil:
			return errors.Join(err, c.shutdown())
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		cmd := Command(choice)
		if err != nil || !cmd.Valid() {
			c.render.printf("Invalid choice. Please try again.\n")
			continue
		}
		if cmd == CmdExit {
			return c.exit()
		}
		c.Dispatch(ctx, cmd)
	}
}

// Dispatch runs a single command other than Exit.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) {
	switch cmd {
	case CmdDisplay:
		c.Display()
	case CmdToggle:
		c.Toggle(ctx)
	case CmdStop:
		c.Stop()
	case CmdNext, CmdPrevious:
		c.render.printf("%s is not available.\n", cmd.Label())
	case CmdShuffle:
		c.DisplayShuffled()
	case CmdExit:
		// handled by Run
	}
}

// Display lists the playlist in order.
func (c *Controller) Display() {
	rows := make([]row, 0, c.list.Len())
	for pos, song := range c.list.All() {
		rows = append(rows, row{pos: pos, song: song})
	}
	c.render.songs(fmt.Sprintf("Current Playlist (%s):", c.list.Name()), rows, c.playingPos())
}

// DisplayShuffled lists a shuffled copy of the playlist.
func (c *Controller) DisplayShuffled() {
	// Shuffled songs are copies; find their playlist position by value.
	positions := make(map[playlist.Song][]int, c.list.Len())
	for pos, song := range c.list.All() {
		positions[song] = append(positions[song], pos)
	}

	shuffled := playlist.Shuffle(c.list, c.rng)
	rows := make([]row, len(shuffled))
	for i, song := range shuffled {
		p := positions[song]
		rows[i] = row{pos: p[0], song: song}
		positions[song] = p[1:]
	}
	c.render.songs(fmt.Sprintf("Shuffled Playlist (%s):", c.list.Name()), rows, c.playingPos())
}

// Toggle stops the sounding song, or asks for a song number and plays it.
func (c *Controller) Toggle(ctx context.Context) {
	if c.session.IsSounding() {
		c.Stop()
		return
	}

	c.render.printf("Enter song number to play: ")
	line, err := c.readLine(ctx)
	switch {
	case errors.Is(err, errInterrupted):
		c.render.printf("\n")
		return
	case err != nil:
		c.render.printf("Error reading input.\n")
		return
	}
	// Anything that is not a number is treated as 0, which is out of range.
	pos, _ := strconv.Atoi(strings.TrimSpace(line))
	c.Play(ctx, pos)
}

// Play selects the song at pos and starts it.
func (c *Controller) Play(ctx context.Context, pos int) {
	song, err := c.list.Select(pos)
	if err != nil {
		if c.list.Len() == 0 {
			c.render.printf("The playlist is empty.\n")
		} else {
			c.render.printf("Invalid song number. Please enter a valid number between 1 and %d.\n", c.list.Len())
		}
		slog.Debug(errmsg.FormatWith(errmsg.OpPlaylistSelect, strconv.Itoa(pos), err))
		return
	}

	c.render.printf("Attempting to play file: %s\n", song.Path)
	if err := c.session.Play(ctx, pos, song); err != nil {
		c.render.printf("%s\n", errmsg.FormatWith(errmsg.OpPlaybackStart, song.Path, err))
		slog.Warn("playback failed", "position", pos, "path", song.Path, "error", err)
		return
	}
	c.render.nowPlaying(song, c.session.Source())

	if c.opts.WaitForTrack {
		c.waitForTrack(ctx)
	}
}

func (c *Controller) waitForTrack(ctx context.Context) {
	waitCtx, cancel := c.opts.WaitContext(ctx)
	defer cancel()

	c.render.printf("Press Ctrl+C to stop.\n")
	err := c.session.Wait(waitCtx)
	switch {
	case err == nil:
		c.render.printf("Song finished.\n")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.render.printf("Song stopped.\n")
	default:
		c.render.printf("%s\n", errmsg.Format(errmsg.OpPlaybackStop, err))
	}
}

// Stop silences the current song, if any.
func (c *Controller) Stop() {
	stopped, err := c.session.Stop()
	switch {
	case err != nil:
		c.render.printf("%s\n", errmsg.Format(errmsg.OpPlaybackStop, err))
	case stopped:
		c.render.printf("Song stopped.\n")
	default:
		c.render.printf("No song is currently playing.\n")
	}
}

func (c *Controller) exit() error {
	c.render.printf("Exiting the music player.\n")
	return c.shutdown()
}

// shutdown forces the session idle and closes the audio backend.
func (c *Controller) shutdown() error {
	sessErr := c.session.Close()
	backendErr := c.backend.Close()
	if backendErr != nil {
		slog.Error(errmsg.Format(errmsg.OpShutdown, backendErr))
	}
	return errors.Join(sessErr, backendErr)
}

func (c *Controller) playingPos() int {
	pos, _, ok := c.session.Bound()
	if !ok {
		return 0
	}
	return pos
}

// untilInterrupt returns a context cancelled by the next interrupt.
func (c *Controller) untilInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-c.opts.Interrupts:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// readLine returns the next input line. It gives up on an interrupt or
// when ctx is done, and returns io.EOF once input ends.
func (c *Controller) readLine(ctx context.Context) (string, error) {
	c.inputOnce.Do(func() { go c.readInput() })

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-c.opts.Interrupts:
		return "", errInterrupted
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readInput feeds lines to readLine from its own goroutine, so a blocked
// read never holds up an interrupt.
func (c *Controller) readInput() {
	defer close(c.lines)
	for c.in.Scan() {
		c.lines <- c.in.Text()
	}
	if err := c.in.Err(); err != nil {
		slog.Error(errmsg.Format(errmsg.OpReadInput, err))
	}
}
