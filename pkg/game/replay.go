package game

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/rand"
)

// ErrReplayDiverged is returned when a re-simulated frame does not match the recording
var ErrReplayDiverged = errors.New("game: replay diverged from recording")

// ReadRecording parses a JSONL recording
func ReadRecording(r io.Reader) ([]StepRecord, error) {
	var records []StepRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec StepRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	return records, nil
}

// Replay re-simulates a recording from its seed. onFrame, if set, is called
// after every step with the world and the record that produced it.
func Replay(records []StepRecord, onFrame func(*World, StepRecord)) (*World, error) {
	if len(records) == 0 || records[0].Kind != RecordStart {
		return nil, errors.New("game: recording has no start record")
	}
	start := records[0]
	if start.Columns <= 0 || start.Rows <= 0 {
		return nil, fmt.Errorf("game: invalid grid %dx%d in recording", start.Columns, start.Rows)
	}

	grid := NewGrid(Bounds{Width: float64(start.Columns), Height: float64(start.Rows)}, 1, 1)
	w := NewWorld(grid, rand.New(rand.NewSource(start.Seed)), start.Level)

	frame := 0
	for _, rec := range records[1:] {
		switch rec.Kind {
		case RecordStep:
			if rec.Frame != frame+1 {
				return w, fmt.Errorf("game: recording skips from frame %d to %d", frame, rec.Frame)
			}
			frame = rec.Frame
			for _, d := range rec.Inputs {
				w.SetDirection(d)
			}
			w.Update(rec.Delta)
			w.DrainEvents()
			if w.Score() != rec.Score {
				return w, fmt.Errorf("%w: frame %d score %d, recorded %d", ErrReplayDiverged, rec.Frame, w.Score(), rec.Score)
			}
			if onFrame != nil {
				onFrame(w, rec)
			}
		case RecordRestart:
			w.SetLevel(rec.Level)
			w.Reset()
		default:
			return w, fmt.Errorf("game: unexpected record kind %q", rec.Kind)
		}
	}
	return w, nil
}
