package hiterror

import (
	"math"

	"go.uber.org/zap"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
	"github.com/wieku/hitmeter/app/rulesets/hitwindows"
	"github.com/wieku/hitmeter/app/telemetry"
	"github.com/wieku/hitmeter/framework/logging"
)

type Config struct {
	// Client is used when a snapshot doesn't say which game it comes from.
	Client hitwindows.Client

	RatePolicy    RatePolicy
	ReplayCap     int
	BiasSmoothing float64

	ShowInCatch      bool
	ShowUnstableRate bool
}

func DefaultConfig() Config {
	return Config{
		Client:           hitwindows.Legacy,
		RatePolicy:       RateMania,
		ReplayCap:        DefaultReplayCap,
		BiasSmoothing:    DefaultBiasSmoothing,
		ShowInCatch:      false,
		ShowUnstableRate: true,
	}
}

type windowKey struct {
	mode       int
	clientName string
	client     hitwindows.Client
	diff       difficulty.Difficulty
}

// State is everything the meter remembers between snapshots. It belongs to the caller,
// one State per telemetry source.
type State struct {
	PreviousPhase string
	Phase         string

	Windows hitwindows.Windows
	Rate    float64

	History History
	Bias    BiasTracker

	UnstableRate float64

	key    windowKey
	hasKey bool

	lastErrors []telemetry.Sample
	sampled    bool
}

// NewState starts from osu!stable osu! windows at OD 0, so hit errors arriving before
// the first usable map state are still classified.
func NewState() *State {
	windows, _ := hitwindows.Compute(hitwindows.Standard, hitwindows.Legacy, difficulty.NewDifficulty(difficulty.Stats{}, difficulty.None, 0))

	return &State{
		Windows: windows,
		Rate:    1,
	}
}

// Tick is a classified hit error together with the arrow position right after it.
type Tick struct {
	hitwindows.Judgement

	// Index is the position of the hit error in the snapshot's list.
	Index int

	BiasPosition float64
}

type Update struct {
	Windows        hitwindows.Windows
	WindowsChanged bool

	UnstableRate float64

	Ticks   []Tick
	Skipped int

	BiasPosition float64
	BiasReset    bool

	MeterVisible bool
	URVisible    bool
}

// Meter turns telemetry snapshots into hit error meter updates.
// It holds no per-play state, so one Meter can serve several States, but calls must not overlap for the same State.
type Meter struct {
	config Config
	logger *zap.Logger
}

func NewMeter(config Config, logger *zap.Logger) *Meter {
	meter := &Meter{logger: logging.OrNop(logger)}
	meter.SetConfig(config)

	return meter
}

func (meter *Meter) Config() Config {
	return meter.config
}

// SetConfig replaces the configuration, invalid numeric values fall back to defaults.
func (meter *Meter) SetConfig(config Config) {
	if config.ReplayCap < 0 {
		config.ReplayCap = DefaultReplayCap
	}

	if config.BiasSmoothing <= 0 || config.BiasSmoothing > 1 || math.IsNaN(config.BiasSmoothing) {
		config.BiasSmoothing = DefaultBiasSmoothing
	}

	meter.config = config
}

// Apply processes one snapshot. Windows are always brought up to date before any new hit error is classified.
// It never fails: problems are logged and the last good state is kept.
func (meter *Meter) Apply(state *State, snapshot telemetry.Snapshot) Update {
	if snapshot.Phase != state.Phase {
		state.PreviousPhase = state.Phase
		state.Phase = snapshot.Phase
	}

	update := Update{}
	update.WindowsChanged = meter.updateWindows(state, snapshot)

	meter.processHitErrors(state, snapshot, &update)

	update.Windows = state.Windows
	update.UnstableRate = state.UnstableRate
	update.BiasPosition = state.Bias.Position(state.Windows)

	update.MeterVisible = state.Phase == telemetry.PhasePlay && (meter.config.ShowInCatch || state.Windows.Ruleset != hitwindows.Catch)
	update.URVisible = meter.config.ShowUnstableRate &&
		(state.Phase == telemetry.PhasePlay || (state.Phase == telemetry.PhaseResultScreen && state.PreviousPhase == telemetry.PhasePlay))

	return update
}

func (meter *Meter) updateWindows(state *State, snapshot telemetry.Snapshot) bool {
	diff := snapshot.Difficulty()

	client := meter.config.Client

	key := windowKey{
		mode:       snapshot.Mode,
		clientName: snapshot.Client,
		diff:       *diff,
	}

	// the configured default can change between snapshots
	if snapshot.Client == "" {
		key.client = client
	}

	if state.hasKey && key == state.key {
		return false
	}

	state.key = key
	state.hasKey = true

	fields := []zap.Field{
		zap.Int("mode", snapshot.Mode),
		zap.String("client", snapshot.Client),
		zap.Float64("od", snapshot.Stats.OD),
		zap.Float64("cs", snapshot.Stats.CS),
		zap.Stringer("mods", snapshot.Mods),
		zap.Float64("rate", diff.Speed()),
		zap.Stringer("previous", state.Windows),
	}

	ruleset, err := hitwindows.RulesetFromMode(snapshot.Mode, snapshot.Stats.IsConvert)
	if err != nil {
		meter.logger.Warn("Couldn't calculate hit windows, keeping previous ones", append(fields, zap.Error(err))...)
		return false
	}

	if snapshot.Client != "" {
		if client, err = hitwindows.ParseClient(snapshot.Client); err != nil {
			meter.logger.Warn("Couldn't calculate hit windows, keeping previous ones", append(fields, zap.Error(err))...)
			return false
		}
	}

	windows, err := hitwindows.Compute(ruleset, client, diff)
	if err != nil {
		meter.logger.Warn("Couldn't calculate hit windows, keeping previous ones", append(fields, zap.Error(err))...)
		return false
	}

	state.Rate = diff.Speed()

	if windows.Equal(state.Windows) {
		return false
	}

	state.Windows = windows

	meter.logger.Debug("Hit windows changed", zap.Stringer("windows", windows), zap.Float64("rate", state.Rate))

	return true
}

func (meter *Meter) processHitErrors(state *State, snapshot telemetry.Snapshot, update *Update) {
	if state.sampled && sameSamples(state.lastErrors, snapshot.HitErrors) {
		return
	}

	state.sampled = true
	state.lastErrors = append(state.lastErrors[:0], snapshot.HitErrors...)

	state.UnstableRate = UnstableRate(snapshot.Values(), state.Windows.Ruleset, state.Windows.Client, state.Rate, meter.config.RatePolicy)

	total := len(snapshot.HitErrors)

	from, restarted := state.History.Advance(total, meter.config.ReplayCap)
	if total == 0 || restarted {
		state.Bias.Reset()
		update.BiasReset = true
	}

	state.Bias.Smoothing = meter.config.BiasSmoothing

	for i := from; i < total; i++ {
		sample := snapshot.HitErrors[i]
		if !sample.Valid {
			update.Skipped++
			meter.logger.Debug("Skipping malformed hit error", zap.Int("index", i))

			continue
		}

		judgement, err := hitwindows.Classify(sample.Value, state.Windows)
		if err != nil {
			update.Skipped++
			meter.logger.Debug("Couldn't classify hit error", zap.Int("index", i), zap.Float64("hitError", sample.Value), zap.Error(err))

			continue
		}

		state.Bias.Update(sample.Value, state.Windows.Ruleset)

		update.Ticks = append(update.Ticks, Tick{
			Judgement:    judgement,
			Index:        i,
			BiasPosition: state.Bias.Position(state.Windows),
		})
	}
}

func sameSamples(a, b []telemetry.Sample) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Valid != b[i].Valid || math.Float64bits(a[i].Value) != math.Float64bits(b[i].Value) {
			return false
		}
	}

	return true
}
