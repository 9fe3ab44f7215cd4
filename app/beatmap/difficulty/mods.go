package difficulty

import "strings"

type Modifier int64

// Bit layout follows the osu!stable replay format so .osr mod masks can be used directly.
const (
	None        Modifier = 0
	NoFail      Modifier = 1 << 0
	Easy        Modifier = 1 << 1
	TouchDevice Modifier = 1 << 2
	Hidden      Modifier = 1 << 3
	HardRock    Modifier = 1 << 4
	SuddenDeath Modifier = 1 << 5
	DoubleTime  Modifier = 1 << 6
	Relax       Modifier = 1 << 7
	HalfTime    Modifier = 1 << 8
	Nightcore   Modifier = 1 << 9
	Flashlight  Modifier = 1 << 10
	Autoplay    Modifier = 1 << 11
	SpunOut     Modifier = 1 << 12
	Relax2      Modifier = 1 << 13
	Perfect     Modifier = 1 << 14
	Key4        Modifier = 1 << 15
	Key5        Modifier = 1 << 16
	Key6        Modifier = 1 << 17
	Key7        Modifier = 1 << 18
	Key8        Modifier = 1 << 19
	FadeIn      Modifier = 1 << 20
	Random      Modifier = 1 << 21
	Cinema      Modifier = 1 << 22
	Target      Modifier = 1 << 23
	Key9        Modifier = 1 << 24
	KeyCoop     Modifier = 1 << 25
	Key1        Modifier = 1 << 26
	Key3        Modifier = 1 << 27
	Key2        Modifier = 1 << 28
	ScoreV2     Modifier = 1 << 29
	Mirror      Modifier = 1 << 30

	// Daycore only exists in osu!lazer, it has no stable bit.
	Daycore Modifier = 1 << 32

	SpeedChanging      = DoubleTime | HalfTime | Nightcore | Daycore
	DifficultyChanging = Easy | HardRock
)

var modsString = [...]string{
	"NF",
	"EZ",
	"TD",
	"HD",
	"HR",
	"SD",
	"DT",
	"RX",
	"HT",
	"NC",
	"FL",
	"AT",
	"SO",
	"AP",
	"PF",
	"4K",
	"5K",
	"6K",
	"7K",
	"8K",
	"FI",
	"RD",
	"CN",
	"TP",
	"9K",
	"CO",
	"1K",
	"3K",
	"2K",
	"V2",
	"MR",
	"",
	"DC",
}

// aliases used by tosu and lazer for the same flags
var modsAliases = map[string]Modifier{
	"RN":  Random,
	"SV2": ScoreV2,
	"2P":  KeyCoop,
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod > 0
}

func (mods Modifier) String() string {
	var sb strings.Builder

	for i, name := range modsString {
		bit := Modifier(1) << i

		if name == "" || mods&bit == 0 {
			continue
		}

		if (bit == DoubleTime && mods.Active(Nightcore)) || (bit == SuddenDeath && mods.Active(Perfect)) {
			continue
		}

		sb.WriteString(name)
	}

	return sb.String()
}

// ParseMods reads an acronym list like "HDDT", "hd,dt" or "HDDTv2".
// Unrecognised acronyms are returned separately and don't affect the result.
func ParseMods(mods string) (result Modifier, unknown []string) {
	fields := strings.FieldsFunc(strings.ToUpper(mods), func(r rune) bool {
		return r == ',' || r == ' ' || r == '+' || r == '|'
	})

	for _, field := range fields {
		for len(field) > 0 {
			if m, n, ok := matchAcronym(field); ok {
				result |= m
				field = field[n:]

				continue
			}

			n := min(2, len(field))
			unknown = append(unknown, field[:n])
			field = field[n:]
		}
	}

	return
}

func matchAcronym(s string) (Modifier, int, bool) {
	if len(s) >= 3 {
		if m, ok := modsAliases[s[:3]]; ok {
			return m, 3, true
		}
	}

	if len(s) < 2 {
		return None, 0, false
	}

	prefix := s[:2]

	if m, ok := modsAliases[prefix]; ok {
		return m, 2, true
	}

	for i, name := range modsString {
		if name != "" && name == prefix {
			return Modifier(1) << i, 2, true
		}
	}

	return None, 0, false
}
