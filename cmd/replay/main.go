package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"
	"github.com/vanillaSlice/Snake/pkg/renderer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReplayServer serves the recording library and streams re-simulated games
type ReplayServer struct {
	addr      string
	recordDir string
	speed     time.Duration
}

// RecordFile describes one recording on disk
type RecordFile struct {
	Name      string
	Size      int64
	Time      time.Time
	SessionID string
}

// Summary is the result of verifying a recording
type Summary struct {
	File   string `json:"file"`
	Frames int    `json:"frames"`
	Score  int    `json:"score"`
	Level  int    `json:"level"`
	Length int    `json:"length"`
	Error  string `json:"error,omitempty"`
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	if settings.RecordDir == "" {
		settings.RecordDir = "records"
	}

	server := &ReplayServer{}
	file := flag.String("file", "", "replay a single recording in the terminal and exit")
	watch := flag.Bool("watch", false, "draw every frame while replaying -file")
	flag.StringVar(&server.addr, "addr", ":8081", "listen address for the replay library")
	flag.StringVar(&server.recordDir, "dir", settings.RecordDir, "directory holding recordings")
	flag.DurationVar(&server.speed, "frame", config.BaseTick, "delay between streamed frames")
	flag.Parse()

	if *file != "" {
		if err := replayInTerminal(*file, *watch, server.speed); err != nil {
			log.Fatal(err)
		}
		return
	}

	http.HandleFunc("/", server.handleIndex)
	http.HandleFunc("/verify", server.handleVerify)
	http.HandleFunc("/ws/replay", server.handleReplayWS)

	fmt.Printf("📼 Snake Replay Tool starting on http://localhost%s\n", server.addr)
	log.Fatal(http.ListenAndServe(server.addr, nil))
}

func loadRecording(path string) ([]game.StepRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record: %w", err)
	}
	defer file.Close()
	return game.ReadRecording(file)
}

func replayInTerminal(path string, watch bool, speed time.Duration) error {
	records, err := loadRecording(path)
	if err != nil {
		return err
	}

	var (
		render *renderer.TerminalRenderer
		frames int
	)
	w, err := game.Replay(records, func(w *game.World, rec game.StepRecord) {
		frames++
		if !watch {
			return
		}
		if render == nil {
			render = renderer.NewTerminalRenderer(w.Grid().Columns(), w.Grid().Rows())
			render.HideCursor()
		}
		render.Render(game.WorldSnapshot(w), false)
		time.Sleep(speed)
	})
	if render != nil {
		render.ShowCursor()
	}
	if err != nil {
		return err
	}
	fmt.Printf("  %s: %d frames, score %d, level %d, length %d\n",
		filepath.Base(path), frames, w.Score(), w.Level(), w.Snake().Len())
	return nil
}

func (s *ReplayServer) listRecordings() []RecordFile {
	files, err := os.ReadDir(s.recordDir)
	if err != nil {
		return nil
	}

	var records []RecordFile
	for _, f := range files {
		if filepath.Ext(f.Name()) != ".jsonl" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		// expecting format: game_{sessionID}_{timestamp}.jsonl
		parts := strings.Split(f.Name(), "_")
		sessID := ""
		if len(parts) >= 2 {
			sessID = parts[1]
		}
		records = append(records, RecordFile{
			Name:      f.Name(),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessID,
		})
	}

	// Sort by time desc
	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records
}

var indexTmpl = template.Must(template.New("index").Parse(`
<!DOCTYPE html>
<html>
<head>
    <title>Snake Replays</title>
    <style>
        body { font-family: monospace; background: #1a202c; color: #fff; padding: 2rem; }
        h1 { color: #48bb78; }
        .file-list { display: grid; gap: 1rem; }
        .file-item {
            background: #2d3748; padding: 1rem; border-radius: 8px;
            display: flex; justify-content: space-between; align-items: center;
        }
        .file-item:hover { background: #4a5568; }
        a { color: #63b3ed; text-decoration: none; font-weight: bold; }
        .meta { color: #a0aec0; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>📼 Replay Library</h1>
    <div class="file-list">
        {{range .}}
        <div class="file-item">
            <div>
                <div class="name">{{.Name}}</div>
                <div class="meta">Session: {{.SessionID}} | Size: {{.Size}} bytes | {{.Time.Format "2006-01-02 15:04:05"}}</div>
            </div>
            <a href="/verify?file={{.Name}}">VERIFY ✔</a>
        </div>
        {{else}}
        <p>No recordings found</p>
        {{end}}
    </div>
</body>
</html>`))

func (s *ReplayServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := indexTmpl.Execute(w, s.listRecordings()); err != nil {
		log.Println("Template error:", err)
	}
}

// recordPath keeps requests inside the record directory
func (s *ReplayServer) recordPath(name string) (string, error) {
	if name == "" || filepath.Base(name) != name || filepath.Ext(name) != ".jsonl" {
		return "", fmt.Errorf("invalid recording name %q", name)
	}
	return filepath.Join(s.recordDir, name), nil
}

func (s *ReplayServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("file")
	path, err := s.recordPath(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := loadRecording(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	summary := Summary{File: name}
	world, err := game.Replay(records, func(*game.World, game.StepRecord) { summary.Frames++ })
	if world != nil {
		summary.Score = world.Score()
		summary.Level = world.Level()
		summary.Length = world.Snake().Len()
	}
	status := http.StatusOK
	if err != nil {
		summary.Error = err.Error()
		status = http.StatusUnprocessableEntity
		if !errors.Is(err, game.ErrReplayDiverged) {
			status = http.StatusBadRequest
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(summary)
}

// Websocket logic
func (s *ReplayServer) handleReplayWS(w http.ResponseWriter, r *http.Request) {
	path, err := s.recordPath(r.URL.Query().Get("file"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := loadRecording(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var paused, closed atomic.Bool

	// Read loop for controls
	go func() {
		defer closed.Store(true)
		for {
			var cmd struct {
				Command string `json:"command"`
			}
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			switch cmd.Command {
			case "pause":
				paused.Store(true)
			case "resume":
				paused.Store(false)
			}
		}
	}()

	first := true
	_, err = game.Replay(records, func(world *game.World, rec game.StepRecord) {
		if closed.Load() {
			return
		}
		if first {
			first = false
			conn.WriteJSON(map[string]any{
				"type":    "config",
				"columns": world.Grid().Columns(),
				"rows":    world.Grid().Rows(),
			})
		}
		for paused.Load() && !closed.Load() {
			time.Sleep(100 * time.Millisecond)
		}
		time.Sleep(s.speed)

		msg := struct {
			Type  string         `json:"type"`
			State game.Snapshot  `json:"state"`
			Meta  map[string]any `json:"meta"`
		}{
			Type:  "state",
			State: game.WorldSnapshot(world),
			Meta: map[string]any{
				"frame":  rec.Frame,
				"inputs": rec.Inputs,
			},
		}
		if err := conn.WriteJSON(msg); err != nil {
			closed.Store(true)
		}
	})
	if err != nil {
		log.Println("Replay failed:", err)
		conn.WriteJSON(map[string]string{"type": "error", "error": err.Error()})
	}
}
