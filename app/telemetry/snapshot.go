package telemetry

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

const (
	PhasePlay         = "Play"
	PhaseResultScreen = "ResultScreen"
	PhaseMenu         = "Menu"
)

// Sample is a single hit error as received. Missing or non-numeric values are kept as invalid
// samples so list positions stay aligned with the source.
type Sample struct {
	Value float64
	Valid bool
}

func Valid(value float64) Sample {
	return Sample{Value: value, Valid: !math.IsNaN(value) && !math.IsInf(value, 0)}
}

func (sample *Sample) UnmarshalJSON(data []byte) error {
	*sample = Sample{}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		// non-numeric entries are skipped later, they must not break the rest of the list
		return nil
	}

	*sample = Valid(value)

	return nil
}

func (sample Sample) MarshalJSON() ([]byte, error) {
	if !sample.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(sample.Value)
}

// Snapshot is the latest known gameplay state. Hit errors are the absolute list for the current play.
type Snapshot struct {
	Phase string

	// Client is "stable" or "lazer", empty means the configured default.
	Client string

	// Mode is the osu! game mode number: 0 osu!, 1 taiko, 2 catch, 3 mania.
	Mode int

	Stats difficulty.Stats
	Mods  difficulty.Modifier

	// Rate overrides the mod-derived playback rate when > 0.
	Rate float64

	Player string

	HitErrors []Sample
}

// Values returns the valid hit errors.
func (snapshot Snapshot) Values() []float64 {
	values := make([]float64, 0, len(snapshot.HitErrors))

	for _, s := range snapshot.HitErrors {
		if s.Valid {
			values = append(values, s.Value)
		}
	}

	return values
}

// Difficulty builds the difficulty snapshot used for hit windows.
func (snapshot Snapshot) Difficulty() *difficulty.Difficulty {
	return difficulty.NewDifficulty(snapshot.Stats, snapshot.Mods, snapshot.Rate)
}

func SamplesOf(values ...float64) []Sample {
	samples := make([]Sample, len(values))
	for i, v := range values {
		samples[i] = Valid(v)
	}

	return samples
}
