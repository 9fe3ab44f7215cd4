package telemetry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/wieku/hitmeter/app/beatmap/difficulty"
)

const playMessage = `{
	"client": "stable",
	"state": {"number": 2, "name": "Play"},
	"settings": {"mode": {"number": 3, "name": "mania"}},
	"beatmap": {"isConvert": true, "stats": {"od": {"original": 8, "converted": 8}, "cs": {"original": 4, "converted": 4}}},
	"play": {"playerName": "peppy", "mods": {"number": 72, "name": "HDDT", "rate": 1.5}},
	"hitErrors": [-12.5, 3, null, "x", 40]
}`

func TestDecode(t *testing.T) {
	snapshot, err := Decode([]byte(playMessage))
	if err != nil {
		t.Fatal(err)
	}

	if snapshot.Phase != PhasePlay || snapshot.Client != "stable" || snapshot.Mode != 3 || snapshot.Player != "peppy" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	if snapshot.Stats != (difficulty.Stats{OD: 8, CS: 4, IsConvert: true}) {
		t.Fatalf("unexpected stats %+v", snapshot.Stats)
	}

	if snapshot.Mods != difficulty.Hidden|difficulty.DoubleTime || snapshot.Rate != 1.5 {
		t.Fatalf("unexpected mods %s at %v", snapshot.Mods, snapshot.Rate)
	}

	if len(snapshot.HitErrors) != 5 {
		t.Fatalf("list positions should be preserved, got %d samples", len(snapshot.HitErrors))
	}

	if snapshot.HitErrors[2].Valid || snapshot.HitErrors[3].Valid {
		t.Fatalf("null and non-numeric samples should be invalid, got %+v", snapshot.HitErrors)
	}

	values := snapshot.Values()
	if len(values) != 3 || values[0] != -12.5 || values[2] != 40 {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestDecodeIntoKeepsMissingSections(t *testing.T) {
	previous, err := Decode([]byte(playMessage))
	if err != nil {
		t.Fatal(err)
	}

	next, err := DecodeInto([]byte(`{"hitErrors": [1, 2]}`), previous)
	if err != nil {
		t.Fatal(err)
	}

	if next.Mode != 3 || next.Stats.OD != 8 || next.Mods != previous.Mods || next.Phase != PhasePlay {
		t.Fatalf("missing sections should keep previous values, got %+v", next)
	}

	if len(next.HitErrors) != 2 {
		t.Fatalf("hit errors should be replaced, got %d", len(next.HitErrors))
	}

	next, err = DecodeInto([]byte(`{"state": {"name": "ResultScreen"}, "hitErrors": []}`), next)
	if err != nil {
		t.Fatal(err)
	}

	if next.Phase != PhaseResultScreen || len(next.HitErrors) != 0 {
		t.Fatalf("expected an emptied list on the result screen, got %+v", next)
	}
}

func TestDecodeIgnoresUnknownMods(t *testing.T) {
	snapshot, err := Decode([]byte(`{"play": {"mods": {"name": "HRXXTD"}}}`))
	if err != nil {
		t.Fatal(err)
	}

	if !snapshot.Mods.Active(difficulty.HardRock) || !snapshot.Mods.Active(difficulty.TouchDevice) {
		t.Fatalf("known mods should still be applied, got %s", snapshot.Mods)
	}
}

func TestDecodeMalformed(t *testing.T) {
	previous := Snapshot{Mode: 1}

	snapshot, err := DecodeInto([]byte(`{"hitErrors": [1, 2`), previous)
	if err == nil {
		t.Fatal("expected an error")
	}

	if snapshot.Mode != 1 {
		t.Fatalf("previous snapshot should be returned on error, got %+v", snapshot)
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected a JSON error, got %v", err)
	}
}

func TestSampleJSON(t *testing.T) {
	data, err := json.Marshal([]Sample{Valid(1.25), {}, Valid(-3)})
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "[1.25,null,-3]" {
		t.Fatalf("unexpected encoding %s", data)
	}
}
