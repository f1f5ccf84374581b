package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/five82/stargazer/internal/apod"
	"github.com/five82/stargazer/internal/config"
	"github.com/five82/stargazer/internal/cycle"
	"github.com/five82/stargazer/internal/logging"
	"github.com/five82/stargazer/internal/speech"
	"github.com/five82/stargazer/internal/state"
	"github.com/five82/stargazer/internal/ui"
)

// Options configure the Stargazer application.
type Options struct {
	ConfigPath string
	Headless   bool   // run without the TUI; implied when stdout is not a terminal
	Debug      bool   // debug logging with source locations
	Once       bool   // run a single cycle and exit; implies Headless
	Date       string // fixed YYYY-MM-DD instead of a random date

	Stdout io.Writer // terminal check target; nil uses os.Stdout
	Stderr io.Writer // headless log destination; nil uses os.Stderr
}

// Run boots Stargazer until the context is cancelled, the viewer quits, or
// with Once set, a single cycle has finished.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	headless := opts.Headless || opts.Once || !isTerminal(opts.Stdout)

	logDir := cfg.LogDir
	if headless {
		logDir = ""
	}
	logger, closeLog, err := logging.Setup(logging.Options{Dir: logDir, Debug: opts.Debug, Stderr: opts.Stderr})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	dates, err := dateSource(opts.Date)
	if err != nil {
		return err
	}

	engine, err := speech.DetectEngine(cfg.SpeechEngine)
	if err != nil {
		return fmt.Errorf("init speech: %w", err)
	}
	narrator := speech.NewNarrator(engine, logger.With("component", "speech"))
	if ee, ok := engine.(*speech.ExecEngine); ok {
		logger.Info("speech engine ready", "engine", ee.Name())
	} else {
		logger.Warn("no speech engine available, narration disabled", "speech_engine", cfg.SpeechEngine)
	}

	client, err := apod.NewClient(cfg.APIURL, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("init apod client: %w", err)
	}
	if cfg.UsingDemoKey() {
		logger.Warn("using the shared demo key, requests are heavily rate limited", "env", config.APIKeyEnv)
	}

	store := state.NewStore()
	orch, err := cycle.New(cycle.Options{
		Records:  client,
		Images:   apod.NewImageLoader(),
		Narrator: narrator,
		Surface:  store,
		Logger:   logger.With("component", "cycle"),
		Dates:    dates,
	})
	if err != nil {
		return fmt.Errorf("init cycle: %w", err)
	}

	loop := orch.Run
	if opts.Once {
		loop = func(ctx context.Context) error {
			orch.RunCycle(ctx)
			if err := store.Snapshot().LastError; err != nil {
				return fmt.Errorf("cycle failed: %w", err)
			}
			return nil
		}
	}
	gate := NewGate(store, narrator, loop, logger.With("component", "gate"))

	if headless {
		return runHeadless(ctx, gate, logger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("stargazer started", "theme", cfg.Theme, "log_dir", cfg.LogDir)
	uiErr := ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Gate:      gate,
		ThemeName: cfg.Theme,
		LogPath:   filepath.Join(cfg.LogDir, logging.FileName),
	})
	cancel()
	if err := gate.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("screensaver loop ended", "error", err)
	}
	logger.Info("stargazer stopped")
	return uiErr
}

func runHeadless(ctx context.Context, gate *Gate, logger *slog.Logger) error {
	gate.StartWithoutPrompt(ctx)
	err := gate.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("stargazer stopped")
		return nil
	}
	return err
}

// dateSource pins every cycle to fixed when set, otherwise samples a random
// archive date each cycle.
func dateSource(fixed string) (func() string, error) {
	if fixed == "" {
		return apod.RandomDate, nil
	}
	date, err := apod.ParseDate(fixed)
	if err != nil {
		return nil, fmt.Errorf("invalid --date: %w", err)
	}
	return func() string { return date }, nil
}

func isTerminal(w io.Writer) bool {
	if w == nil {
		w = os.Stdout
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
