package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"
	"github.com/vanillaSlice/Snake/pkg/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Server shares the stores between connections; every connection gets its own session
type Server struct {
	db        store.Store
	recordDir string
	seed      uint64
	sessions  atomic.Int64
}

// GameServer runs one session for one websocket connection
type GameServer struct {
	session   *game.Session
	recorder  *game.GameRecorder
	codec     string
	autopilot bool
	pilot     game.Controller
	lastSent  []byte
}

// ConfigMessage is sent once after connecting
type ConfigMessage struct {
	Type    string `json:"type"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
	Level   int    `json:"level"`
	Codec   string `json:"codec"`
	Seed    uint64 `json:"seed"`
}

// ClientMessage is an action sent by the browser
type ClientMessage struct {
	Action string `json:"action"`
	Level  int    `json:"level,omitempty"`
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	flag.StringVar(&settings.ListenAddr, "addr", settings.ListenAddr, "listen address")
	flag.StringVar(&settings.DBPath, "db", settings.DBPath, "SQLite file (empty keeps scores in memory)")
	flag.StringVar(&settings.RecordDir, "record", settings.RecordDir, "directory for game recordings")
	flag.Uint64Var(&settings.Seed, "seed", settings.Seed, "random seed (0 = clock); a fixed seed gives every connection the same game")
	flag.Parse()

	db, err := store.Open(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	server := &Server{db: db, recordDir: settings.RecordDir, seed: settings.Seed}

	http.HandleFunc("/ws", server.handleWS)
	http.HandleFunc("/scores", server.handleScores)

	log.Printf("🐍 Snake server starting on http://localhost%s", settings.ListenAddr)
	log.Fatal(http.ListenAndServe(settings.ListenAddr, nil))
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := config.TopScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	top, err := s.db.TopScores(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	high, err := s.db.HighScore()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"highScore": high, "scores": top})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec := r.URL.Query().Get("codec")
	if codec == "" {
		codec = game.CodecJSON
	}
	if codec != game.CodecJSON && codec != game.CodecMsgpack {
		http.Error(w, fmt.Sprintf("unknown codec %q", codec), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	id := s.sessions.Add(1)
	gs, err := s.newGameServer(id, codec)
	if err != nil {
		log.Println("Session error:", err)
		return
	}
	defer func() {
		if err := gs.recorder.Close(); err != nil {
			log.Printf("Session %d recording: %v", id, err)
		}
	}()
	log.Printf("Session %d connected (%s, seed %d)", id, codec, gs.session.Seed())
	defer log.Printf("Session %d closed", id)

	grid := gs.session.World().Grid()
	if err := conn.WriteJSON(ConfigMessage{
		Type:    "config",
		Columns: grid.Columns(),
		Rows:    grid.Rows(),
		Level:   gs.session.World().Level(),
		Codec:   codec,
		Seed:    gs.session.Seed(),
	}); err != nil {
		return
	}

	// Reader goroutine: the game loop below is the only writer to the session
	actions := make(chan ClientMessage, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case actions <- msg:
			default:
				// Drop input floods
			}
		}
	}()

	ticker := time.NewTicker(config.BaseTick)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-done:
			return
		case msg := <-actions:
			gs.handleAction(msg)
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			if delta > config.MaxFrameDelta {
				delta = config.MaxFrameDelta
			}
			if err := gs.update(delta); err != nil {
				log.Printf("Session %d: %v", id, err)
			}
			if err := gs.send(conn); err != nil {
				return
			}
		}
	}
}

func (s *Server) newGameServer(id int64, codec string) (*GameServer, error) {
	var recorder *game.GameRecorder
	if s.recordDir != "" {
		var err error
		recorder, err = game.NewRecorder(s.recordDir, strconv.FormatInt(id, 10))
		if err != nil {
			return nil, err
		}
	}
	session, err := game.NewSession(game.SessionOptions{
		Seed:     s.seed,
		Scores:   s.db,
		Settings: s.db,
		Recorder: recorder,
	})
	if err != nil {
		recorder.Close()
		return nil, err
	}
	return &GameServer{
		session:  session,
		recorder: recorder,
		codec:    codec,
		pilot:    &game.HeuristicController{},
	}, nil
}

func (gs *GameServer) handleAction(msg ClientMessage) {
	if d, ok := game.ParseDirection(msg.Action); ok {
		if !gs.autopilot {
			gs.session.SetDirection(d)
		}
		return
	}

	switch msg.Action {
	case "pause":
		gs.session.TogglePause()
	case "restart":
		if _, err := gs.session.Restart(); err != nil {
			log.Println("Restart failed:", err)
		}
	case "auto":
		gs.autopilot = !gs.autopilot
	case "level":
		if err := gs.session.SetLevel(msg.Level); err != nil {
			log.Println("Saving level failed:", err)
		}
	case "sounds":
		if _, err := gs.session.ToggleSounds(); err != nil {
			log.Println("Saving sound setting failed:", err)
		}
	}
}

func (gs *GameServer) update(delta time.Duration) error {
	if gs.autopilot {
		if d, ok := gs.pilot.NextDirection(gs.session.World()); ok {
			gs.session.SetDirection(d)
		}
	}
	_, err := gs.session.Update(delta)
	return err
}

// send writes the snapshot unless it is identical to the previous one
func (gs *GameServer) send(conn *websocket.Conn) error {
	data, err := game.EncodeSnapshot(gs.session.Snapshot(), gs.codec)
	if err != nil {
		return err
	}
	if bytes.Equal(data, gs.lastSent) {
		return nil
	}
	gs.lastSent = data

	msgType := websocket.TextMessage
	if gs.codec == game.CodecMsgpack {
		msgType = websocket.BinaryMessage
	}
	return conn.WriteMessage(msgType, data)
}
