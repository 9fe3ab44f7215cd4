package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
	"github.com/wieku/hitmeter/app/rulesets/hiterror"
	"github.com/wieku/hitmeter/app/rulesets/hitwindows"
	"github.com/wieku/hitmeter/app/settings"
	"github.com/wieku/hitmeter/app/telemetry"
	"github.com/wieku/hitmeter/framework/logging"
)

type config struct {
	recording string
	settings  string
	replay    string
	verbose   bool
	watch     bool

	// map state overrides, applied only when the flag is given
	mode   string
	od     float64
	cs     float64
	mods   string
	client string
	set    map[string]bool
}

func parseFlags() config {
	var cfg config

	flag.StringVar(&cfg.recording, "recording", "", "JSON Lines telemetry recording to replay, - for stdin")
	flag.StringVar(&cfg.settings, "settings", "", "settings file, created with defaults if missing")
	flag.StringVar(&cfg.replay, "replay", "", ".osr replay to take ruleset, client, mods and player from")
	flag.BoolVar(&cfg.verbose, "verbose", false, "log every classified hit error")
	flag.BoolVar(&cfg.watch, "watch", false, "reload settings when the file changes")

	flag.StringVar(&cfg.mode, "mode", "", "game mode number (0 osu!, 1 taiko, 2 catch, 3 mania, 4 mania convert) or name (osu, taiko, fruits, mania, maniaConvert)")
	flag.Float64Var(&cfg.od, "od", 0, "overall difficulty")
	flag.Float64Var(&cfg.cs, "cs", 0, "circle size / key count")
	flag.StringVar(&cfg.mods, "mods", "", "mod acronyms, e.g. HDDT")
	flag.StringVar(&cfg.client, "client", "", "stable or lazer")

	flag.Parse()

	cfg.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})

	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.recording == "" {
		fmt.Fprintln(os.Stderr, "error: -recording is required")
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New(cfg.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: failed to create logger:", err)
		os.Exit(1)
	}

	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, logger, cfg, os.Stdout); err != nil {
		logger.Error("Failed to replay recording", zap.String("recording", cfg.recording), zap.Error(err))
		stop()
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, cfg config, out io.Writer) error {
	current := settings.DefaultSettings()

	if cfg.settings != "" {
		s, err := settings.Load(cfg.settings)
		if err != nil {
			return err
		}

		current = s
	}

	meterConfig, err := current.ToMeterConfig()
	if err != nil {
		return err
	}

	meter := hiterror.NewMeter(meterConfig, logger)

	reloads := make(chan *settings.Settings, 1)

	if cfg.watch && cfg.settings != "" {
		go func() {
			err := settings.Watch(ctx, cfg.settings, logger, func(s *settings.Settings) {
				select {
				case <-reloads:
				default:
				}

				reloads <- s
			})
			if err != nil {
				logger.Error("Settings watcher stopped", zap.Error(err))
			}
		}()
	}

	initial, err := initialSnapshot(cfg)
	if err != nil {
		return err
	}

	input, closeInput, err := openRecording(cfg.recording)
	if err != nil {
		return err
	}

	defer closeInput()

	state := hiterror.NewState()
	summary := newSummary()

	err = telemetry.ReadRecordingFrom(input, initial, func(snapshot telemetry.Snapshot) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case s := <-reloads:
			if c, err := s.ToMeterConfig(); err == nil {
				meter.SetConfig(c)
			}
		default:
		}

		update := meter.Apply(state, snapshot)
		summary.add(update)

		if update.WindowsChanged {
			logger.Info("Hit windows", zap.Stringer("windows", update.Windows), zap.Float64("rate", state.Rate))
		}

		for _, tick := range update.Ticks {
			logger.Debug("Hit",
				zap.Int("index", tick.Index),
				zap.Float64("error", tick.Error),
				zap.Stringer("band", tick.Band),
				zap.Stringer("side", tick.Side),
				zap.Float64("offset", tick.Offset),
				zap.Float64("arrow", tick.BiasPosition),
			)
		}

		return nil
	})

	if errors.Is(err, context.Canceled) {
		logger.Warn("Interrupted, printing partial summary")
	} else if err != nil {
		return err
	}

	return summary.render(out)
}

func initialSnapshot(cfg config) (telemetry.Snapshot, error) {
	var snapshot telemetry.Snapshot

	if cfg.replay != "" {
		data, err := os.ReadFile(cfg.replay)
		if err != nil {
			return snapshot, fmt.Errorf("read replay: %w", err)
		}

		if snapshot, err = telemetry.FromReplay(data); err != nil {
			return snapshot, err
		}
	}

	if cfg.set["mode"] {
		mode, err := parseMode(cfg.mode)
		if err != nil {
			return snapshot, err
		}

		snapshot.Mode = mode
	}

	if cfg.set["od"] {
		snapshot.Stats.OD = cfg.od
	}

	if cfg.set["cs"] {
		snapshot.Stats.CS = cfg.cs
	}

	if cfg.set["client"] {
		snapshot.Client = cfg.client
	}

	if cfg.set["mods"] {
		mods, unknown := difficulty.ParseMods(cfg.mods)
		if len(unknown) > 0 {
			return snapshot, fmt.Errorf("unknown mods: %v", unknown)
		}

		snapshot.Mods = mods
	}

	return snapshot, nil
}

func parseMode(value string) (int, error) {
	if mode, err := strconv.Atoi(value); err == nil {
		return mode, nil
	}

	ruleset, err := hitwindows.ParseRuleset(value)
	if err != nil {
		return 0, err
	}

	return ruleset.Mode(), nil
}

func openRecording(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open recording: %w", err)
	}

	return file, func() { file.Close() }, nil
}
