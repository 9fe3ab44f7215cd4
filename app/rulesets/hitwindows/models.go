package hitwindows

import (
	"math"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

const (
	// osu!stable mania keeps the raw OD under EZ/HR and scales the finished windows by this factor instead
	maniaModScale = 1.4

	maniaLegacyPerfect = 16.0
)

type params struct {
	client Client
	mods   difficulty.Modifier
	od     float64
	cs     float64
	rate   float64
}

// windowModel is the per-ruleset part of the hit window model.
// Thresholds returned by compute are in the same order as bands, tightest first.
type windowModel interface {
	bands() []Band
	compute(p params) []float64
	boundary(client Client) Boundary
}

var models = map[Ruleset]windowModel{
	Standard:     standardModel{},
	Taiko:        taikoModel{},
	Catch:        catchModel{},
	Mania:        maniaModel{},
	ManiaConvert: maniaConvertModel{},
}

// Products are wrapped in explicit float64 conversions so they are never fused into FMA instructions,
// the results have to match the game bit for bit.

type standardModel struct{}

func (standardModel) bands() []Band {
	return []Band{Hit300, Hit100, Hit50}
}

func (standardModel) compute(p params) []float64 {
	return []float64{
		round(80 - float64(6*p.od)),
		round(140 - float64(8*p.od)),
		round(200 - float64(10*p.od)),
	}
}

func (standardModel) boundary(client Client) Boundary {
	return legacyExclusive(client)
}

type taikoModel struct{}

func (taikoModel) bands() []Band {
	return []Band{Hit300, Hit100}
}

func (taikoModel) compute(p params) []float64 {
	hit100 := 110 - float64(6*p.od)
	if p.od <= 5 {
		hit100 = 120 - float64(8*p.od)
	}

	return []float64{
		round(50 - float64(3*p.od)),
		round(hit100),
	}
}

func (taikoModel) boundary(client Client) Boundary {
	return legacyExclusive(client)
}

// catchModel measures where the fruit landed relative to the catcher's center, not timing.
type catchModel struct{}

func (catchModel) bands() []Band {
	return []Band{Hit300}
}

func (catchModel) compute(p params) []float64 {
	return []float64{round(72 - float64(6*p.cs))}
}

func (catchModel) boundary(client Client) Boundary {
	return legacyExclusive(client)
}

type maniaModel struct{}

func (maniaModel) bands() []Band {
	return []Band{Hit320, Hit300, Hit200, Hit100, Hit50}
}

func (maniaModel) compute(p params) []float64 {
	hit320 := maniaLegacyPerfect

	// The perfect window scales with OD on lazer and on stable with ScoreV2.
	// https://osu.ppy.sh/wiki/en/Gameplay/Judgement/osu%21mania#scorev2
	if p.client == Modern || p.mods.Active(difficulty.ScoreV2) {
		hit320 = maniaPerfectWindow(p.od)
	}

	windows := []float64{
		hit320,
		64 - float64(3*p.od),
		97 - float64(3*p.od),
		127 - float64(3*p.od),
		151 - float64(3*p.od),
	}

	// lazer windows are not affected by rate
	if p.client == Modern {
		return windows
	}

	for i := range windows {
		windows[i] = float64(windows[i] * p.rate)
	}

	return scaleLegacyMania(windows, p.mods)
}

func (maniaModel) boundary(Client) Boundary {
	return Inclusive{}
}

// maniaConvertModel uses the fixed converted-map windows, which only exist on osu!stable.
// https://osu.ppy.sh/wiki/en/Gameplay/Judgement/osu%21mania#judgements
type maniaConvertModel struct{}

func (maniaConvertModel) bands() []Band {
	return maniaModel{}.bands()
}

func (maniaConvertModel) compute(p params) []float64 {
	hit300, hit200 := 47.0, 77.0
	if p.od > 4 {
		hit300, hit200 = 34, 67
	}

	return scaleLegacyMania([]float64{
		round(float64(maniaLegacyPerfect * p.rate)),
		round(float64(hit300 * p.rate)),
		round(float64(hit200 * p.rate)),
		round(float64(97 * p.rate)),
		round(float64(121 * p.rate)),
	}, p.mods)
}

func (maniaConvertModel) boundary(Client) Boundary {
	return Inclusive{}
}

func maniaPerfectWindow(od float64) float64 {
	if od <= 5 {
		return 22.4 - float64(0.6*od)
	}

	return 24.9 - float64(1.1*od)
}

// scaleLegacyMania applies the EZ/HR factor to finished osu!stable mania windows and floors them.
// HR is checked first, like the game does.
func scaleLegacyMania(windows []float64, mods difficulty.Modifier) []float64 {
	for i, w := range windows {
		switch {
		case mods.Active(difficulty.HardRock):
			windows[i] = math.Floor(w / maniaModScale)
		case mods.Active(difficulty.Easy):
			windows[i] = math.Floor(float64(w * maniaModScale))
		default:
			windows[i] = math.Floor(w)
		}
	}

	return windows
}

func legacyExclusive(client Client) Boundary {
	if client == Legacy {
		return Exclusive{}
	}

	return Inclusive{}
}

// round mirrors JavaScript's Math.round: halves go towards positive infinity.
func round(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}

	return r
}
