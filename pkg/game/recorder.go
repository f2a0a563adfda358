package game

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vanillaSlice/Snake/pkg/config"
)

// Record kinds
const (
	RecordStart   = "start"
	RecordStep    = "step"
	RecordRestart = "restart"
)

// StepRecord is one line of a game recording. A start record carries the seed
// and grid size, step records carry the frame delta and the inputs applied
// before it, restart records the level of the new round.
type StepRecord struct {
	Kind    string        `json:"kind"`
	Frame   int           `json:"frame,omitempty"`
	Delta   time.Duration `json:"delta,omitempty"`
	Inputs  []Direction   `json:"inputs,omitempty"`
	Seed    uint64        `json:"seed,omitempty"`
	Level   int           `json:"level,omitempty"`
	Columns int           `json:"columns,omitempty"`
	Rows    int           `json:"rows,omitempty"`
	Score   int           `json:"score"`
	Events  []Event       `json:"events,omitempty"`
}

// ErrRecordsDropped is returned by Close when the buffer overflowed
var ErrRecordsDropped = errors.New("game: recorder dropped records")

// GameRecorder handles asynchronous logging of game steps
type GameRecorder struct {
	path       string
	file       *os.File
	writer     *bufio.Writer
	recordChan chan StepRecord
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	dropped    int
}

// NewRecorder creates a new recorder that writes to dir
// Filename format: game_{sessionID}_{timestamp}.jsonl
func NewRecorder(dir, sessionID string) (*GameRecorder, error) {
	r, err := openRecorder(dir, sessionID, config.RecordBuffer)
	if err != nil {
		return nil, err
	}
	r.start()
	return r, nil
}

func openRecorder(dir, sessionID string, buffer int) (*GameRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	filename := fmt.Sprintf("game_%s_%d.jsonl", sessionID, time.Now().Unix())
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	return &GameRecorder{
		path:       path,
		file:       f,
		writer:     bufio.NewWriter(f),
		recordChan: make(chan StepRecord, buffer),
	}, nil
}

func (r *GameRecorder) start() {
	r.wg.Add(1)
	go r.writeLoop()
}

// Path returns the file being written
func (r *GameRecorder) Path() string {
	return r.path
}

// RecordStep queues a record to be written. Non-blocking (drops if full).
// A nil recorder ignores the call.
func (r *GameRecorder) RecordStep(rec StepRecord) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.recordChan <- rec:
	default:
		// Channel full, drop frame to protect the game loop
		r.dropped++
	}
}

// Dropped returns how many records were discarded because the buffer was full
func (r *GameRecorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes the buffer and closes the file. It reports ErrRecordsDropped
// when the recording has gaps and cannot be replayed.
func (r *GameRecorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.recordChan)
	dropped := r.dropped
	r.mu.Unlock()

	r.wg.Wait()
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("failed to close record file: %w", err)
	}
	if dropped > 0 {
		return fmt.Errorf("%w: %d records missing from %s", ErrRecordsDropped, dropped, r.path)
	}
	return nil
}

func (r *GameRecorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for rec := range r.recordChan {
		if err := encoder.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording frame: %v\n", err)
			continue
		}
	}
	if err := r.writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing recording: %v\n", err)
	}
}
