package hitwindows

// Boundary decides whether an absolute hit error still belongs to a window.
type Boundary interface {
	Contains(absError, threshold float64) bool
}

// Exclusive treats the threshold itself as outside the window (osu!stable).
type Exclusive struct{}

func (Exclusive) Contains(absError, threshold float64) bool {
	return absError < threshold
}

// Inclusive treats the threshold as inside the window (osu!lazer, osu!stable mania).
type Inclusive struct{}

func (Inclusive) Contains(absError, threshold float64) bool {
	return absError <= threshold
}

// BoundaryFor returns the edge rule the given engine uses for the ruleset.
// See https://osu.ppy.sh/wiki/en/Client/Release_stream/Lazer/Gameplay_differences_in_osu%21%28lazer%29#hit-window-edge-calculations-do-not-match-stable
func BoundaryFor(client Client, ruleset Ruleset) Boundary {
	if m, ok := models[ruleset]; ok {
		return m.boundary(client)
	}

	return Inclusive{}
}
