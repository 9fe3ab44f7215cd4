package hiterror

const DefaultReplayCap = 50

// History remembers how much of the absolute hit error list has been processed already.
type History struct {
	processed int
	started   bool
}

// Advance records that the list now has total entries and returns the index processing should start from.
// The first non-empty list is limited to the newest replayCap entries so a whole match isn't backfilled.
// A list that shrank without going empty first is treated as a new session.
func (history *History) Advance(total, replayCap int) (from int, restarted bool) {
	switch {
	case total == 0:
		from = 0
	case !history.started:
		history.started = true

		if replayCap >= 0 {
			from = max(0, total-replayCap)
		}
	case total < history.processed:
		from = 0
		restarted = true
	default:
		from = history.processed
	}

	history.processed = total

	return
}
