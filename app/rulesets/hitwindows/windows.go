package hitwindows

import (
	"fmt"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

type Window struct {
	Band      Band
	Threshold float64
}

// Windows holds the thresholds of one ruleset ordered from the tightest band to the widest.
type Windows struct {
	Ruleset Ruleset
	Client  Client
	Bands   []Window
}

// Compute calculates hit windows for the given ruleset, client and difficulty. It has no side effects.
func Compute(ruleset Ruleset, client Client, diff *difficulty.Difficulty) (Windows, error) {
	model, ok := models[ruleset]
	if !ok {
		return Windows{}, fmt.Errorf("hit windows: %w: %s", ErrUnknownRuleset, ruleset)
	}

	if !client.valid() {
		return Windows{}, fmt.Errorf("hit windows: %w: %s", ErrUnknownClient, client)
	}

	p := params{
		client: client,
		mods:   diff.Mods,
		od:     diff.ODReal,
		cs:     diff.CSReal,
		rate:   diff.Speed(),
	}

	// osu!stable mania ignores EZ/HR here, scaleLegacyMania takes care of them later.
	if client == Legacy && ruleset.IsMania() {
		p.od, p.cs = diff.Stats.OD, diff.Stats.CS
	}

	bands := model.bands()
	thresholds := model.compute(p)

	windows := Windows{
		Ruleset: ruleset,
		Client:  client,
		Bands:   make([]Window, len(bands)),
	}

	for i, band := range bands {
		windows.Bands[i] = Window{Band: band, Threshold: thresholds[i]}
	}

	return windows, nil
}

func (windows Windows) IsEmpty() bool {
	return len(windows.Bands) == 0
}

// Get returns the threshold of the band, if the ruleset has it.
func (windows Windows) Get(band Band) (float64, bool) {
	for _, w := range windows.Bands {
		if w.Band == band {
			return w.Threshold, true
		}
	}

	return 0, false
}

// Max returns the widest threshold: 50 for osu! and mania, 100 for taiko, 300 for catch.
func (windows Windows) Max() float64 {
	if windows.IsEmpty() {
		return 0
	}

	return windows.Bands[len(windows.Bands)-1].Threshold
}

func (windows Windows) Equal(other Windows) bool {
	if windows.Ruleset != other.Ruleset || windows.Client != other.Client || len(windows.Bands) != len(other.Bands) {
		return false
	}

	for i, w := range windows.Bands {
		if w != other.Bands[i] {
			return false
		}
	}

	return true
}

func (windows Windows) String() string {
	s := windows.Ruleset.String() + "/" + windows.Client.String() + " {"

	for i, w := range windows.Bands {
		if i > 0 {
			s += " "
		}

		s += fmt.Sprintf("%s:%g", w.Band, w.Threshold)
	}

	return s + "}"
}
