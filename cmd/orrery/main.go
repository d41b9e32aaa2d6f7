package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/render"
)

// ErrNotTerminal is returned when stdout cannot host the full-screen view
var ErrNotTerminal = errors.New("stdout is not a terminal")

// intentBuffer bounds queued input between the poller and the frame loop
const intentBuffer = 64

func main() {
	if err := newRootCommand(run).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}

type runFunc func(ctx context.Context, cfg *config.Config) error

func newRootCommand(runner runFunc) *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "orrery",
		Short:         "Animated solar system in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return runner(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (TOML)")
	f.Float64("time-scale", config.DefaultTimeScale, "simulated seconds per real second")
	f.Int("fps", config.DefaultFPS, "frames per second")
	f.String("assets", "", "directory holding textures/ (default: built-in set)")
	f.String("epoch", "", "simulation start, RFC 3339 (default: now)")
	f.Bool("no-audio", false, "disable the focus chime")
	f.Bool("no-orbits", false, "hide orbit guides at start")
	f.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)

	for key, flag := range map[string]string{
		config.KeyTimeScale: "time-scale",
		config.KeyFPS:       "fps",
		config.KeyAssets:    "assets",
		config.KeyEpoch:     "epoch",
		config.KeyDebug:     "debug",
		config.KeyNoAudio:   "no-audio",
		config.KeyNoOrbits:  "no-orbits",
	} {
		// Lookup cannot fail for flags registered above
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

// assetFS resolves the texture source
func assetFS(dir string) fs.FS {
	if dir == "" {
		return asset.Embedded()
	}
	return os.DirFS(dir)
}

func run(ctx context.Context, cfg *config.Config) error {
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	lib := asset.NewLibrary(assetFS(cfg.Assets))
	textures, err := engine.LoadTextures(registry, lib)
	if err != nil {
		return err
	}
	epoch, err := cfg.EpochTime(time.Now().UTC())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before printing a crash, otherwise the trace is unreadable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mORRERY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	recorder := metrics.New()
	opts := engine.Options{
		TimeScale:  cfg.TimeScale,
		Epoch:      epoch,
		HoldWindow: cfg.HoldWindow,
		ShowOrbits: cfg.Orbits,
		Textures:   textures,
		Recorder:   recorder,
	}

	if cfg.Audio {
		chime := audio.NewChime()
		if err := chime.Initialize(); err != nil {
			log.Printf("audio unavailable, continuing silent: %v", err)
		} else {
			defer chime.Cleanup()
			opts.Cue = chime
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	intents := make(chan input.Intent, intentBuffer)
	go pollEvents(ctx, screen, input.NewMachine(), intents)

	orchestrator := engine.NewOrchestrator(registry, engine.NewMonotonicTimeProvider(), opts)
	log.Printf("running %d bodies at x%g, %d fps", registry.Len(), cfg.TimeScale, cfg.FPS)

	err = orchestrator.Run(ctx, intents, render.NewTerminal(screen, lib), cfg.FrameInterval())

	if summary, serr := recorder.Summary(); serr == nil {
		log.Printf("exit: %s", summary)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollEvents feeds translated terminal events to out until the screen is finalized
func pollEvents(ctx context.Context, screen tcell.Screen, m *input.Machine, out chan<- input.Intent) {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mORRERY INPUT CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer close(out)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		in, ok := m.Translate(ev)
		if !ok {
			continue
		}
		if !deliver(ctx, out, in) {
			return
		}
	}
}

// deliver queues in without blocking, except quit and reset which wait for room
// Returns false once ctx is done
func deliver(ctx context.Context, out chan<- input.Intent, in input.Intent) bool {
	switch in.Type {
	case input.IntentQuit, input.IntentResetCamera:
		select {
		case out <- in:
			return true
		case <-ctx.Done():
			return false
		}
	}
	select {
	case out <- in:
	default:
		log.Printf("input queue full, dropped %v", in.Type)
	}
	return true
}
