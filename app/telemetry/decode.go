package telemetry

import (
	"encoding/json"
	"fmt"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

type originalValue struct {
	Original float64 `json:"original"`
}

// message is the subset of a tosu v2 message (plus the precise hitErrors feed) the meter needs.
// Every section is optional, absent sections keep their previous values.
type message struct {
	Client *string `json:"client"`

	State *struct {
		Name string `json:"name"`
	} `json:"state"`

	Settings *struct {
		Mode *struct {
			Number int `json:"number"`
		} `json:"mode"`
	} `json:"settings"`

	Beatmap *struct {
		IsConvert *bool `json:"isConvert"`
		Stats     *struct {
			OD *originalValue `json:"od"`
			CS *originalValue `json:"cs"`
		} `json:"stats"`
	} `json:"beatmap"`

	Play *struct {
		PlayerName *string `json:"playerName"`
		Mods       *struct {
			Name *string  `json:"name"`
			Rate *float64 `json:"rate"`
		} `json:"mods"`
	} `json:"play"`

	HitErrors *[]Sample `json:"hitErrors"`
}

// Decode reads a single message into a fresh snapshot.
func Decode(data []byte) (Snapshot, error) {
	return DecodeInto(data, Snapshot{})
}

// DecodeInto applies a message on top of the previous snapshot.
func DecodeInto(data []byte, previous Snapshot) (Snapshot, error) {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return previous, fmt.Errorf("decode telemetry message: %w", err)
	}

	snapshot := previous

	if msg.Client != nil {
		snapshot.Client = *msg.Client
	}

	if msg.State != nil {
		snapshot.Phase = msg.State.Name
	}

	if msg.Settings != nil && msg.Settings.Mode != nil {
		snapshot.Mode = msg.Settings.Mode.Number
	}

	if b := msg.Beatmap; b != nil {
		if b.IsConvert != nil {
			snapshot.Stats.IsConvert = *b.IsConvert
		}

		if b.Stats != nil {
			if b.Stats.OD != nil {
				snapshot.Stats.OD = b.Stats.OD.Original
			}

			if b.Stats.CS != nil {
				snapshot.Stats.CS = b.Stats.CS.Original
			}
		}
	}

	if p := msg.Play; p != nil {
		if p.PlayerName != nil {
			snapshot.Player = *p.PlayerName
		}

		if p.Mods != nil {
			if p.Mods.Name != nil {
				// unknown acronyms don't affect hit windows
				snapshot.Mods, _ = difficulty.ParseMods(*p.Mods.Name)
			}

			if p.Mods.Rate != nil {
				snapshot.Rate = *p.Mods.Rate
			}
		}
	}

	if msg.HitErrors != nil {
		snapshot.HitErrors = *msg.HitErrors
	}

	return snapshot, nil
}
