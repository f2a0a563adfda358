package game

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestSnapshotEncoding(t *testing.T) {
	s := mustSession(t, SessionOptions{Seed: 5, Scores: &fakeScores{high: 77}})
	w := s.World()
	w.bonusFood = BonusFood{Pos: Point{3, 4}, RemainingTicks: 12, spawned: true, flashOn: true}
	snap := s.Snapshot()

	if snap.HighScore != 77 || snap.State != "running" || snap.Direction != "right" || snap.SnakeState != "alive" {
		t.Errorf("Unexpected snapshot header: %+v", snap)
	}
	if snap.Bonus == nil || snap.Bonus.RemainingTicks != 12 || !snap.Bonus.FlashOn {
		t.Fatalf("Expected the showing bonus, got %+v", snap.Bonus)
	}

	data, err := EncodeSnapshot(snap, CodecJSON)
	if err != nil {
		t.Fatalf("JSON encode failed: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	for _, key := range []string{"snake", "food", "bonus", "score", "highScore", "state"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("JSON snapshot is missing %q", key)
		}
	}

	packed, err := EncodeSnapshot(snap, CodecMsgpack)
	if err != nil {
		t.Fatalf("msgpack encode failed: %v", err)
	}
	var decoded Snapshot
	if err := msgpack.Unmarshal(packed, &decoded); err != nil {
		t.Fatalf("msgpack decode failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Snake, snap.Snake) || *decoded.Food != *snap.Food || *decoded.Bonus != *snap.Bonus {
		t.Errorf("msgpack changed the board: %+v", decoded)
	}
	t.Logf("msgpack %d bytes, JSON %d bytes", len(packed), len(data))

	if _, err := EncodeSnapshot(snap, "xml"); err == nil {
		t.Error("Expected an error for an unknown codec")
	}
}

func TestSnapshotHidesExpiredBonus(t *testing.T) {
	w := NewWorld(unitGrid(10, 10), &seqRand{vals: []int{5, 5}}, 1)
	w.bonusFood = BonusFood{Pos: Point{3, 4}, RemainingTicks: 0, spawned: true}

	snap := WorldSnapshot(w)
	if snap.Bonus != nil {
		t.Errorf("Expired bonus should not be sent, got %+v", snap.Bonus)
	}
	if snap.Food == nil || *snap.Food != (Point{5, 5}) {
		t.Errorf("Expected food at (5,5), got %v", snap.Food)
	}
	if snap.Columns != 10 || snap.Rows != 10 || len(snap.Snake) != 1 {
		t.Errorf("Unexpected board in snapshot: %+v", snap)
	}
}
