package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pi-catcher/config"
	"github.com/lixenwraith/pi-catcher/constants"
	"github.com/lixenwraith/pi-catcher/digits"
	"github.com/lixenwraith/pi-catcher/engine"
	"github.com/lixenwraith/pi-catcher/status"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file")
	debugFlag  = flag.Bool("debug", false, "Write a debug log under the log directory")
	sourceFlag = flag.String("source", "", "Digit source: http or static (overrides config)")
	seedFlag   = flag.Uint64("seed", 0, "RNG seed, 0 picks one from the clock (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	if out := setupLogging(cfg.Log); out != nil {
		defer out.Close()
	}

	source := newSource(cfg.Source)
	metrics := status.NewRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(ctx, cfg.Game, source, engine.Options{
		Metrics:      metrics,
		FetchTimeout: cfg.Source.Timeout.Duration,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: run recovers its own goroutines, this covers the rest of main
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPI-CATCHER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	game := NewGame(screen, eng, metrics, cfg.Display.TickInterval.Duration)
	err = game.run(ctx)
	log.Printf("Exiting from scene %s", metrics.Label(status.SceneName))

	var crash *CrashError
	switch {
	case errors.As(err, &crash):
		fmt.Fprintf(os.Stderr, "\n\x1b[31mPI-CATCHER CRASHED: %v\x1b[0m\n", crash)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", crash.Stack)
		os.Exit(1)
	case err != nil && !errors.Is(err, context.Canceled):
		fmt.Fprintf(os.Stderr, "pi-catcher: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Digits caught in last session: %d\n", metrics.Count(status.Matched))
}

// loadConfig applies command-line overrides on top of the config file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *sourceFlag != "" {
		cfg.Source.Kind = *sourceFlag
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	return cfg, cfg.Validate()
}

// newSource builds the configured digit source with retries
func newSource(cfg config.Source) digits.Source {
	var src digits.Source
	switch cfg.Kind {
	case constants.SourceStatic:
		src = digits.NewStaticSource()
	default:
		src = digits.NewHTTPSource(cfg.URL, &http.Client{Timeout: cfg.Timeout.Duration})
	}

	return digits.WithRetry(src, digits.RetryPolicy{
		MaxAttempts:    cfg.MaxAttempts,
		InitialBackoff: cfg.InitialBackoff.Duration,
		MaxBackoff:     cfg.MaxBackoff.Duration,
	})
}
