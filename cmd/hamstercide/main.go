package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hamstercide/clock"
	"github.com/lixenwraith/hamstercide/config"
	"github.com/lixenwraith/hamstercide/core"
	"github.com/lixenwraith/hamstercide/render"
	"github.com/lixenwraith/hamstercide/terminal"
)

// cliFlags are the command-line overrides, applied after file and environment
type cliFlags struct {
	fs        *flag.FlagSet
	config    string
	debug     bool
	seed      uint64
	headless  bool
	round     time.Duration
	spectator string
	mute      bool
	realtime  bool
}

func newFlags(fs *flag.FlagSet) *cliFlags {
	f := &cliFlags{fs: fs}
	fs.StringVar(&f.config, "config", "", "TOML config file")
	fs.BoolVar(&f.debug, "debug", false, "write logs to logs/hamstercide.log")
	fs.Uint64Var(&f.seed, "seed", 0, "target RNG seed (0: time based)")
	fs.BoolVar(&f.headless, "headless", false, "run scripted swings without a terminal UI")
	fs.DurationVar(&f.round, "round", 0, "round length, 0 for no countdown")
	fs.StringVar(&f.spectator, "spectator", "", "websocket spectator listen address, e.g. :8090")
	fs.BoolVar(&f.mute, "mute", false, "start with audio muted")
	fs.BoolVar(&f.realtime, "realtime", false, "pin the haptic loop and raise its priority")
	return f
}

// apply overrides cfg with the flags actually given
func (f *cliFlags) apply(cfg *config.Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			cfg.Debug = f.debug
		case "seed":
			cfg.Grid.Seed = f.seed
		case "headless":
			cfg.Headless = f.headless
		case "round":
			cfg.Round.Duration = config.Duration(f.round)
		case "spectator":
			cfg.Spectator.Addr = f.spectator
		case "realtime":
			cfg.Haptic.Realtime = f.realtime
		}
	})
}

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flags := newFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}
	flags.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}
	if cfg.Grid.Seed == 0 {
		cfg.Grid.Seed = uint64(time.Now().UnixNano())
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("[MAIN] seed=%d rate=%.0fHz round=%s", cfg.Grid.Seed, cfg.Haptic.RateHz, cfg.Round.Duration.Std())

	if cfg.Headless || !terminal.IsInteractive() {
		summary, err := runHeadless(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "headless: %v\n", err)
			return 1
		}
		fmt.Println(summary)
		return 0
	}

	summary, err := runInteractive(cfg, flags.mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hamstercide: %v\n", err)
		return 1
	}
	fmt.Println(summary)
	return 0
}

func runInteractive(cfg config.Config, muted bool) (string, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return "", err
	}
	if err := screen.Init(); err != nil {
		return "", err
	}
	core.SetCrashCleanup(screen.Fini)

	a, err := newApp(cfg, clock.NewMonotonicTimeProvider(), false)
	if err != nil {
		screen.Fini()
		return "", err
	}
	if err := a.start(); err != nil {
		screen.Fini()
		return "", err
	}
	a.player.SetMuted(muted)

	stop := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	core.Go(func() {
		if _, ok := <-sigs; ok {
			close(stop)
		}
	})

	hud := render.NewHUD(screen, render.Options{
		Session:    a.session,
		Driver:     a.driver,
		Registry:   a.registry,
		Audio:      a.player,
		Spacing:    cfg.Grid.Spacing,
		GrabSwitch: 0,
		Unlimited:  cfg.Round.Duration <= 0,
	})
	hud.Run(stop)

	signal.Stop(sigs)
	close(sigs)
	a.stop()
	screen.Fini()
	core.SetCrashCleanup(nil)
	return a.summary(), nil
}
