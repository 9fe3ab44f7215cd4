package difficulty

import (
	"math"
)

// Stats are raw beatmap values, mods are never applied to them.
type Stats struct {
	OD        float64
	CS        float64
	IsConvert bool
}

// Difficulty is an immutable snapshot of the map stats with the active mods and rate applied.
// It is comparable, so two snapshots can be checked for equality with ==.
type Difficulty struct {
	Stats Stats
	Mods  Modifier

	// CustomSpeed overrides the mod-derived speed when > 0 (variable rate mods).
	CustomSpeed float64

	ODReal float64
	CSReal float64

	speed float64
}

func NewDifficulty(stats Stats, mods Modifier, customSpeed float64) *Difficulty {
	diff := &Difficulty{
		Stats:       stats,
		Mods:        mods,
		CustomSpeed: customSpeed,
	}

	diff.calculate()

	return diff
}

func (diff *Difficulty) calculate() {
	od, cs := diff.Stats.OD, diff.Stats.CS

	if diff.Mods.Active(DifficultyChanging) {
		if diff.Mods.Active(Easy) {
			od /= 2
			cs /= 2
		} else {
			od = math.Min(float64(od*1.4), 10)
			cs = math.Min(float64(cs*1.3), 10)
		}
	}

	diff.ODReal = od
	diff.CSReal = cs

	diff.speed = 1.0

	if diff.CustomSpeed > 0 && !math.IsInf(diff.CustomSpeed, 0) {
		diff.speed = diff.CustomSpeed
	} else if diff.Mods.Active(SpeedChanging) {
		diff.speed = 0.75

		if diff.Mods.Active(DoubleTime | Nightcore) {
			diff.speed = 1.5
		}
	}
}

// Speed returns the playback rate.
func (diff *Difficulty) Speed() float64 {
	return diff.speed
}
