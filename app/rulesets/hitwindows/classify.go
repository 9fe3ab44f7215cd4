package hitwindows

import (
	"errors"
	"math"

	"github.com/wieku/hitmeter/framework/math/mutils"
)

var (
	ErrNoWindows     = errors.New("no hit windows")
	ErrInvalidSample = errors.New("hit error is not a finite number")
)

type Side int

const (
	Early Side = iota
	Late
)

func (side Side) String() string {
	if side == Late {
		return "late"
	}

	return "early"
}

type Judgement struct {
	Band Band
	Side Side

	// Error is the hit error after ruleset sign correction.
	Error float64

	// Position is where the error lies inside its band, 0 at the inner edge and 1 at the outer edge.
	Position float64

	// Offset is Error relative to the widest window.
	Offset float64
}

// Classify finds the band a single hit error falls into.
func Classify(hitError float64, windows Windows) (Judgement, error) {
	if math.IsNaN(hitError) || math.IsInf(hitError, 0) {
		return Judgement{}, ErrInvalidSample
	}

	if windows.IsEmpty() {
		return Judgement{}, ErrNoWindows
	}

	// osu!catch stores fruits landing on the right side of the catcher as early hits.
	if windows.Ruleset == Catch {
		hitError = -hitError
	}

	judgement := Judgement{
		Side:  Early,
		Error: hitError,
	}

	if hitError > 0 {
		judgement.Side = Late
	}

	abs := mutils.Abs(hitError)
	edge := BoundaryFor(windows.Client, windows.Ruleset)

	inner := 0.0
	last := len(windows.Bands) - 1

	for i, w := range windows.Bands {
		if i == last || edge.Contains(abs, w.Threshold) {
			judgement.Band = w.Band
			judgement.Position = relativePosition(abs, inner, w.Threshold)

			break
		}

		inner = w.Threshold
	}

	if widest := windows.Max(); widest > 0 {
		judgement.Offset = hitError / widest
	}

	return judgement, nil
}

func relativePosition(abs, inner, outer float64) float64 {
	if outer <= inner {
		return 0
	}

	return mutils.Clamp((abs-inner)/(outer-inner), 0, 1)
}
