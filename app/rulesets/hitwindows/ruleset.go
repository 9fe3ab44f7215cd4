package hitwindows

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRuleset = errors.New("unknown ruleset")
	ErrUnknownClient  = errors.New("unknown client")
)

type Ruleset int

const (
	Standard Ruleset = iota
	Taiko
	Catch
	Mania
	// ManiaConvert is osu!mania played on a converted osu!standard map.
	ManiaConvert
)

var rulesetNames = map[Ruleset]string{
	Standard:     "osu",
	Taiko:        "taiko",
	Catch:        "fruits",
	Mania:        "mania",
	ManiaConvert: "maniaConvert",
}

func (ruleset Ruleset) String() string {
	if name, ok := rulesetNames[ruleset]; ok {
		return name
	}

	return fmt.Sprintf("Ruleset(%d)", int(ruleset))
}

// IsMania reports whether the ruleset belongs to the osu!mania family.
func (ruleset Ruleset) IsMania() bool {
	return ruleset == Mania || ruleset == ManiaConvert
}

func ParseRuleset(name string) (Ruleset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "osu", "standard", "std":
		return Standard, nil
	case "taiko":
		return Taiko, nil
	case "fruits", "catch", "ctb":
		return Catch, nil
	case "mania":
		return Mania, nil
	case "maniaconvert", "mania_convert":
		return ManiaConvert, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRuleset, name)
}

// RulesetFromMode maps the game mode number used by osu! and tosu. The convert flag only matters for mania.
// Mode 4 is the overlay's own id for mania converts.
func RulesetFromMode(mode int, isConvert bool) (Ruleset, error) {
	switch mode {
	case 0:
		return Standard, nil
	case 1:
		return Taiko, nil
	case 2:
		return Catch, nil
	case 3:
		if isConvert {
			return ManiaConvert, nil
		}

		return Mania, nil
	case 4:
		return ManiaConvert, nil
	}

	return 0, fmt.Errorf("%w: mode %d", ErrUnknownRuleset, mode)
}

// Mode is the inverse of RulesetFromMode.
func (ruleset Ruleset) Mode() int {
	return int(ruleset)
}

// Client is the game engine a play happens on. The two engines disagree on window edges and rate scaling.
type Client int

const (
	// Legacy is osu!stable.
	Legacy Client = iota
	// Modern is osu!lazer.
	Modern
)

func (client Client) String() string {
	switch client {
	case Legacy:
		return "stable"
	case Modern:
		return "lazer"
	}

	return fmt.Sprintf("Client(%d)", int(client))
}

func (client Client) valid() bool {
	return client == Legacy || client == Modern
}

func ParseClient(name string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stable", "legacy":
		return Legacy, nil
	case "lazer", "modern":
		return Modern, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownClient, name)
}

type Band int

const (
	Hit320 Band = iota
	Hit300
	Hit200
	Hit100
	Hit50
)

func (band Band) String() string {
	switch band {
	case Hit320:
		return "320"
	case Hit300:
		return "300"
	case Hit200:
		return "200"
	case Hit100:
		return "100"
	case Hit50:
		return "50"
	}

	return fmt.Sprintf("Band(%d)", int(band))
}
