package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/llehouerou/csvplay/internal/config"
	"github.com/llehouerou/csvplay/internal/errmsg"
	"github.com/llehouerou/csvplay/internal/logging"
	"github.com/llehouerou/csvplay/internal/menu"
	"github.com/llehouerou/csvplay/internal/player"
	"github.com/llehouerou/csvplay/internal/playlist"
	"github.com/llehouerou/csvplay/internal/playlistfile"
	"github.com/llehouerou/csvplay/internal/session"
	"github.com/llehouerou/csvplay/internal/stderr"
)

type Params struct {
	Playlist string `pos:"true" optional:"true" help:"Playlist name; <name>.csv is read from the playlist directory. Prompted for when omitted."`
	Dir      string `short:"d" optional:"true" help:"Directory holding playlist files (overrides playlist_dir)"`
	Seed     int    `short:"s" optional:"true" help:"Shuffle seed, 0 for a random one (overrides shuffle_seed)"`
	Wait     bool   `short:"w" help:"Keep the menu hidden until the song ends; Ctrl+C stops it"`
	LogLevel string `optional:"true" help:"debug, info, warn or error (overrides log_level)"`
	Config   string `short:"c" optional:"true" help:"Extra config file, applied after the default ones"`
}

func main() {
	boa.CmdT[Params]{
		Use:     "csvplay",
		Short:   "Play songs from a CSV playlist",
		Version: appVersion(),
		Long: `Load <name>.csv and play its songs through the default audio device.

Each line of the file holds: title,artist,duration,file

Menu:
  1 Display Playlist   2 Play/Stop Song   3 Stop Song
  4 Next Song          5 Previous Song    6 Exit
  7 Display Shuffled Playlist`,
		ParamEnrich: boa.ParamEnricherCombine(
			boa.ParamEnricherBool,
			boa.ParamEnricherName,
			boa.ParamEnricherShort,
		),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := runWithCapture(params); err != nil {
				fmt.Fprintf(stderr.Original(), "csvplay: %v\n", err)
				stderr.Stop()
				os.Exit(1)
			}
		},
	}.Run()
}

// runWithCapture routes audio library noise and the log away from the menu.
func runWithCapture(params *Params) error {
	if err := stderr.Start(func(line string) {
		slog.Debug("audio library output", "line", line)
	}); err != nil {
		slog.Warn("stderr capture disabled", "error", err)
	}
	defer stderr.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return run(ctx, params, os.Stdin, os.Stdout, stderr.Original())
}

func run(ctx context.Context, params *Params, stdin io.Reader, stdout, logOut io.Writer) error {
	cfg, err := loadConfig(params)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if _, err := logging.Setup(logOut, cfg.LogLevel); err != nil {
		slog.Warn("invalid log level", "error", err)
	}

	in := bufio.NewReader(stdin)
	name := params.Playlist
	if name == "" {
		fmt.Fprint(stdout, "Enter the name of the playlist: ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.New(errmsg.Format(errmsg.OpReadInput, err))
		}
		name = strings.TrimSpace(line)
	}

	path := playlistfile.Path(cfg.PlaylistDir, name)
	list, skipped, err := playlistfile.Load(path, name)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpPlaylistLoad, path, err))
	}
	for _, pe := range skipped {
		fmt.Fprintf(stdout, "Error reading line %d from file: %s\n", pe.Line, pe.Content)
	}
	fmt.Fprintf(stdout, "Loaded %d songs from %s\n", list.Len(), path)

	if !player.AudioAvailable {
		slog.Warn("audio output not available in this build, songs cannot be played")
	}
	backend := player.NewSpeakerBackend(cfg.Buffer())
	sess := session.New(player.FileDecoder{}, backend)

	// Ctrl+C is handled by the menu from here on.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	ctrl := menu.New(list, sess, backend, playlist.NewRand(cfg.ShuffleSeed), in, stdout, menu.Options{
		WaitForTrack: cfg.WaitForTrack,
		AlignColumns: cfg.AlignColumns,
		Interrupts:   interrupts,
	})
	return ctrl.Run(ctx)
}

// loadConfig reads the config files and applies command line overrides.
func loadConfig(params *Params) (*config.Config, error) {
	var extra []string
	if params.Config != "" {
		extra = append(extra, params.Config)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return nil, err
	}

	if params.Dir != "" {
		cfg.PlaylistDir = params.Dir
	}
	if params.Seed > 0 {
		cfg.ShuffleSeed = uint64(params.Seed)
	}
	if params.Wait {
		cfg.WaitForTrack = true
	}
	if params.LogLevel != "" {
		cfg.LogLevel = params.LogLevel
	}
	return cfg, nil
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-(no build info)"
	}
	if bi.Main.Version == "" {
		return "unknown-(no version)"
	}
	return bi.Main.Version
}
