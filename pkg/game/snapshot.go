package game

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot codecs
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// BonusInfo is a DTO for the bonus food sent to clients
type BonusInfo struct {
	Pos            Point `json:"pos" msgpack:"pos"`
	RemainingTicks int   `json:"remainingTicks" msgpack:"remainingTicks"`
	FlashOn        bool  `json:"flashOn" msgpack:"flashOn"`
}

// Snapshot is a copy of the public game state for renderers and clients
type Snapshot struct {
	Columns      int        `json:"columns" msgpack:"columns"`
	Rows         int        `json:"rows" msgpack:"rows"`
	Snake        []Point    `json:"snake" msgpack:"snake"`
	Direction    string     `json:"direction" msgpack:"direction"`
	SnakeState   string     `json:"snakeState" msgpack:"snakeState"`
	DeathFlashOn bool       `json:"deathFlashOn" msgpack:"deathFlashOn"`
	Food         *Point     `json:"food,omitempty" msgpack:"food,omitempty"`
	Bonus        *BonusInfo `json:"bonus,omitempty" msgpack:"bonus,omitempty"`
	Score        int        `json:"score" msgpack:"score"`
	HighScore    int        `json:"highScore" msgpack:"highScore"`
	NewHighScore bool       `json:"newHighScore" msgpack:"newHighScore"`
	Level        int        `json:"level" msgpack:"level"`
	EatenCount   int        `json:"eatenCount" msgpack:"eatenCount"`
	State        string     `json:"state" msgpack:"state"`
	BoardFull    bool       `json:"boardFull" msgpack:"boardFull"`
	Events       []Event    `json:"events,omitempty" msgpack:"events,omitempty"`
}

// WorldSnapshot captures the state of w alone
func WorldSnapshot(w *World) Snapshot {
	snake := w.Snake()
	snap := Snapshot{
		Columns:      w.Grid().Columns(),
		Rows:         w.Grid().Rows(),
		Snake:        snake.Segments(),
		Direction:    snake.Direction().String(),
		SnakeState:   snake.State().String(),
		DeathFlashOn: snake.DeathFlashOn(),
		Score:        w.Score(),
		Level:        w.Level(),
		EatenCount:   w.EatenCount(),
		BoardFull:    w.IsBoardFull(),
	}
	if !w.IsBoardFull() {
		food := w.Food().Pos
		snap.Food = &food
	}
	if bonus := w.BonusFood(); bonus.IsShowing() {
		snap.Bonus = &BonusInfo{
			Pos:            bonus.Pos,
			RemainingTicks: bonus.RemainingTicks,
			FlashOn:        bonus.FlashOn(),
		}
	}
	return snap
}

// Snapshot captures the session and the events of the last update
func (s *Session) Snapshot() Snapshot {
	snap := WorldSnapshot(s.world)
	snap.HighScore = s.highScore
	snap.NewHighScore = s.newHighScore
	snap.State = s.state.String()
	snap.Events = s.lastEvents
	return snap
}

// EncodeSnapshot serializes snap with the named codec
func EncodeSnapshot(snap Snapshot, codec string) ([]byte, error) {
	switch codec {
	case CodecMsgpack:
		return msgpack.Marshal(&snap)
	case CodecJSON, "":
		return json.Marshal(snap)
	default:
		return nil, fmt.Errorf("unknown codec %q", codec)
	}
}
