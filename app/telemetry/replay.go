package telemetry

import (
	"fmt"

	"github.com/wieku/rplpa"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

// lazer writes replays with versions starting at 30000000
const lazerReplayVersion = 30000000

// FromReplay seeds a snapshot with the ruleset, client, mods and player of an .osr replay.
// Replays don't carry map stats, those have to come from elsewhere.
func FromReplay(data []byte) (Snapshot, error) {
	replay, err := rplpa.ParseReplay(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse replay: %w", err)
	}

	snapshot := Snapshot{
		Client: "stable",
		Mode:   int(replay.PlayMode),
		Mods:   difficulty.Modifier(replay.Mods),
		Player: replay.Username,
	}

	if int64(replay.OsuVersion) >= lazerReplayVersion {
		snapshot.Client = "lazer"
	}

	return snapshot, nil
}
