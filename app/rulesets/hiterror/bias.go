package hiterror

import (
	"github.com/wieku/hitmeter/app/rulesets/hitwindows"
	"github.com/wieku/hitmeter/framework/math/mutils"
)

const DefaultBiasSmoothing = 0.1

// NextBias is one step of the moving average behind the average arrow.
func NextBias(previous, hitError float64, ruleset hitwindows.Ruleset) float64 {
	return NextBiasSmoothed(previous, hitError, ruleset, DefaultBiasSmoothing)
}

func NextBiasSmoothed(previous, hitError float64, ruleset hitwindows.Ruleset, smoothing float64) float64 {
	// osu!catch stores fruits landing on the right side of the catcher as early hits.
	if ruleset == hitwindows.Catch {
		hitError = -hitError
	}

	return float64(previous*(1-smoothing)) + float64(hitError*smoothing)
}

// BiasTracker follows the exponential moving average of hit errors, similar to lazer's bar hit error meter.
// https://github.com/ppy/osu/blob/master/osu.Game/Screens/Play/HUD/HitErrorMeters/BarHitErrorMeter.cs#L430-L435
type BiasTracker struct {
	// Smoothing is the weight of a new sample, DefaultBiasSmoothing when 0.
	Smoothing float64

	value float64
}

func (tracker *BiasTracker) Update(hitError float64, ruleset hitwindows.Ruleset) float64 {
	smoothing := tracker.Smoothing
	if smoothing <= 0 || smoothing > 1 {
		smoothing = DefaultBiasSmoothing
	}

	tracker.value = NextBiasSmoothed(tracker.value, hitError, ruleset, smoothing)

	return tracker.value
}

func (tracker *BiasTracker) Value() float64 {
	return tracker.value
}

func (tracker *BiasTracker) Reset() {
	tracker.value = 0
}

// Position maps the bias onto the meter in [-1, 1] using the given windows.
// The windows may be newer than some of the samples that built the bias; that's accepted.
func (tracker *BiasTracker) Position(windows hitwindows.Windows) float64 {
	return BiasPosition(tracker.value, windows)
}

func BiasPosition(bias float64, windows hitwindows.Windows) float64 {
	widest := windows.Max()
	if widest <= 0 {
		return 0
	}

	return mutils.Clamp(bias/widest/2, -1, 1)
}
