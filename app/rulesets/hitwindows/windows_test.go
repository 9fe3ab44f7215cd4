package hitwindows

import (
	"errors"
	"testing"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

func compute(t *testing.T, ruleset Ruleset, client Client, stats difficulty.Stats, mods string, rate float64) Windows {
	t.Helper()

	m, unknown := difficulty.ParseMods(mods)
	if len(unknown) > 0 {
		t.Fatalf("test uses unknown mods %v", unknown)
	}

	windows, err := Compute(ruleset, client, difficulty.NewDifficulty(stats, m, rate))
	if err != nil {
		t.Fatalf("Compute(%s, %s) failed: %v", ruleset, client, err)
	}

	return windows
}

func thresholds(windows Windows) []float64 {
	result := make([]float64, len(windows.Bands))
	for i, w := range windows.Bands {
		result[i] = w.Threshold
	}

	return result
}

func TestComputeExactValues(t *testing.T) {
	tests := []struct {
		name    string
		ruleset Ruleset
		client  Client
		stats   difficulty.Stats
		mods    string
		rate    float64
		want    []float64
	}{
		{"osu OD8", Standard, Legacy, difficulty.Stats{OD: 8}, "", 0, []float64{32, 76, 120}},
		{"osu OD8 lazer", Standard, Modern, difficulty.Stats{OD: 8}, "", 0, []float64{32, 76, 120}},
		{"osu OD8 HR caps at 10", Standard, Legacy, difficulty.Stats{OD: 8}, "HR", 0, []float64{20, 60, 100}},
		{"osu OD8 EZ", Standard, Legacy, difficulty.Stats{OD: 8}, "EZ", 0, []float64{56, 108, 160}},
		{"osu OD7.25 rounds halves up", Standard, Legacy, difficulty.Stats{OD: 7.25}, "", 0, []float64{37, 82, 128}},
		{"osu ignores rate", Standard, Legacy, difficulty.Stats{OD: 8}, "DT", 0, []float64{32, 76, 120}},
		{"taiko OD5", Taiko, Legacy, difficulty.Stats{OD: 5}, "", 0, []float64{35, 80}},
		{"taiko OD8", Taiko, Legacy, difficulty.Stats{OD: 8}, "", 0, []float64{26, 62}},
		{"catch CS4", Catch, Legacy, difficulty.Stats{CS: 4}, "", 0, []float64{48}},
		{"catch CS4 HR", Catch, Legacy, difficulty.Stats{CS: 4}, "HR", 0, []float64{41}},
		{"mania stable OD8", Mania, Legacy, difficulty.Stats{OD: 8}, "", 0, []float64{16, 40, 73, 103, 127}},
		{"mania stable OD8 HR", Mania, Legacy, difficulty.Stats{OD: 8}, "HR", 0, []float64{11, 28, 52, 73, 90}},
		{"mania stable OD8 EZ", Mania, Legacy, difficulty.Stats{OD: 8}, "EZ", 0, []float64{22, 56, 102, 144, 177}},
		{"mania stable OD8 DT", Mania, Legacy, difficulty.Stats{OD: 8}, "DT", 0, []float64{24, 60, 109, 154, 190}},
		{"mania stable OD8 ScoreV2 DT", Mania, Legacy, difficulty.Stats{OD: 8}, "DTv2", 0, []float64{24, 60, 109, 154, 190}},
		{"mania lazer OD8", Mania, Modern, difficulty.Stats{OD: 8}, "", 0, []float64{16.099999999999998, 40, 73, 103, 127}},
		{"mania lazer OD8 DT is not rate scaled", Mania, Modern, difficulty.Stats{OD: 8}, "DT", 0, []float64{16.099999999999998, 40, 73, 103, 127}},
		{"mania lazer OD5", Mania, Modern, difficulty.Stats{OD: 5}, "", 0, []float64{19.4, 49, 82, 112, 136}},
		{"mania lazer OD5 EZ", Mania, Modern, difficulty.Stats{OD: 5}, "EZ", 0, []float64{20.9, 56.5, 89.5, 119.5, 143.5}},
		{"convert OD8", ManiaConvert, Legacy, difficulty.Stats{OD: 8, IsConvert: true}, "", 0, []float64{16, 34, 67, 97, 121}},
		{"convert OD4", ManiaConvert, Legacy, difficulty.Stats{OD: 4, IsConvert: true}, "", 0, []float64{16, 47, 77, 97, 121}},
		{"convert OD8 HT", ManiaConvert, Legacy, difficulty.Stats{OD: 8, IsConvert: true}, "HT", 0, []float64{12, 26, 50, 73, 91}},
		{"convert OD8 HR", ManiaConvert, Legacy, difficulty.Stats{OD: 8, IsConvert: true}, "HR", 0, []float64{11, 24, 47, 69, 86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := thresholds(compute(t, tt.ruleset, tt.client, tt.stats, tt.mods, tt.rate))

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d bands, got %v", len(tt.want), got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("band %d: expected %v, got %v (all: %v)", i, tt.want[i], got[i], got)
				}
			}
		})
	}
}

func TestComputeBands(t *testing.T) {
	stats := difficulty.Stats{OD: 5, CS: 5}

	expected := map[Ruleset][]Band{
		Standard:     {Hit300, Hit100, Hit50},
		Taiko:        {Hit300, Hit100},
		Catch:        {Hit300},
		Mania:        {Hit320, Hit300, Hit200, Hit100, Hit50},
		ManiaConvert: {Hit320, Hit300, Hit200, Hit100, Hit50},
	}

	for ruleset, bands := range expected {
		windows := compute(t, ruleset, Legacy, stats, "", 0)

		if len(windows.Bands) != len(bands) {
			t.Fatalf("%s: expected %d bands, got %d", ruleset, len(bands), len(windows.Bands))
		}

		for i, band := range bands {
			if windows.Bands[i].Band != band {
				t.Fatalf("%s: band %d is %s, want %s", ruleset, i, windows.Bands[i].Band, band)
			}
		}

		if windows.Max() != windows.Bands[len(bands)-1].Threshold {
			t.Fatalf("%s: Max should return the widest band", ruleset)
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	diff := difficulty.NewDifficulty(difficulty.Stats{OD: 7.3, CS: 4.2}, difficulty.HardRock|difficulty.DoubleTime, 0)

	for ruleset := Standard; ruleset <= ManiaConvert; ruleset++ {
		for _, client := range []Client{Legacy, Modern} {
			a, err1 := Compute(ruleset, client, diff)
			b, err2 := Compute(ruleset, client, diff)

			if err1 != nil || err2 != nil {
				t.Fatalf("unexpected errors: %v %v", err1, err2)
			}

			if !a.Equal(b) {
				t.Fatalf("%s/%s: %s != %s", ruleset, client, a, b)
			}
		}
	}
}

func TestComputeIsMonotonic(t *testing.T) {
	modSets := []difficulty.Modifier{
		difficulty.None,
		difficulty.Easy,
		difficulty.HardRock,
		difficulty.DoubleTime,
		difficulty.HalfTime | difficulty.ScoreV2,
	}

	for ruleset := Standard; ruleset <= ManiaConvert; ruleset++ {
		for _, client := range []Client{Legacy, Modern} {
			for _, mods := range modSets {
				for step := 0; step <= 100; step++ {
					od := float64(step) / 10
					diff := difficulty.NewDifficulty(difficulty.Stats{OD: od, CS: od}, mods, 0)

					windows, err := Compute(ruleset, client, diff)
					if err != nil {
						t.Fatal(err)
					}

					for i := 1; i < len(windows.Bands); i++ {
						if windows.Bands[i].Threshold < windows.Bands[i-1].Threshold {
							t.Fatalf("%s/%s %s OD %v: not monotonic: %s", ruleset, client, mods, od, windows)
						}
					}

					if windows.Bands[0].Threshold < 0 {
						t.Fatalf("%s/%s %s OD %v: negative window: %s", ruleset, client, mods, od, windows)
					}
				}
			}
		}
	}
}

func TestComputeUnknownInputs(t *testing.T) {
	diff := difficulty.NewDifficulty(difficulty.Stats{OD: 5}, difficulty.None, 0)

	if _, err := Compute(Ruleset(42), Legacy, diff); !errors.Is(err, ErrUnknownRuleset) {
		t.Fatalf("expected ErrUnknownRuleset, got %v", err)
	}

	if _, err := Compute(Standard, Client(7), diff); !errors.Is(err, ErrUnknownClient) {
		t.Fatalf("expected ErrUnknownClient, got %v", err)
	}
}

func TestRoundMatchesJavaScript(t *testing.T) {
	tests := map[float64]float64{
		36.5:                37,
		-2.5:                -2,
		0.49999999999999994: 0,
		127.4:               127,
		12:                  12,
	}

	for in, want := range tests {
		if got := round(in); got != want {
			t.Errorf("round(%v) = %v, want %v", in, got, want)
		}
	}
}
