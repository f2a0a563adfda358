package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"
	"github.com/vanillaSlice/Snake/pkg/input"
	"github.com/vanillaSlice/Snake/pkg/renderer"
	"github.com/vanillaSlice/Snake/pkg/store"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	flag.StringVar(&settings.DBPath, "db", settings.DBPath, "SQLite file for preferences and scores (empty keeps them in memory)")
	flag.StringVar(&settings.RecordDir, "record", settings.RecordDir, "directory for game recordings")
	flag.Uint64Var(&settings.Seed, "seed", settings.Seed, "random seed (0 = clock)")
	autoStart := flag.Bool("auto", false, "start with the autopilot enabled")
	flag.Parse()

	db, err := store.Open(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var recorder *game.GameRecorder
	if settings.RecordDir != "" {
		recorder, err = game.NewRecorder(settings.RecordDir, "terminal")
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				log.Println("Recording:", err)
			}
		}()
	}

	session, err := game.NewSession(game.SessionOptions{
		Seed:     settings.Seed,
		Scores:   db,
		Settings: db,
		Recorder: recorder,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		fmt.Println("Error opening keyboard:", err)
		return
	}
	defer inputHandler.Stop()

	grid := session.World().Grid()
	render := renderer.NewTerminalRenderer(grid.Columns(), grid.Rows())
	render.HideCursor()
	defer render.ShowCursor()

	autopilot := *autoStart
	var pilot game.Controller = &game.HeuristicController{}

	inputChan := inputHandler.GetInputChan()

	// Frame loop: real elapsed time drives the simulation
	ticker := time.NewTicker(config.BaseTick)
	defer ticker.Stop()
	last := time.Now()

	draw := func() {
		render.Render(session.Snapshot(), autopilot)
		if session.IsGameOver() {
			if top, err := session.TopScores(config.TopScoreLimit); err == nil {
				render.RenderScores(top)
			}
		}
	}
	draw()

	for {
		select {
		case inputEvent := <-inputChan:
			switch {
			case input.IsQuit(inputEvent):
				fmt.Println("\n  Thanks for playing! 👋")
				return
			case input.IsRestart(inputEvent):
				if _, err := session.Restart(); err != nil {
					log.Println("Restart failed:", err)
				}
				last = time.Now()
			case input.IsPause(inputEvent):
				session.TogglePause()
				last = time.Now()
			case input.IsAutopilot(inputEvent):
				autopilot = !autopilot
			case input.IsToggleSounds(inputEvent):
				if _, err := session.ToggleSounds(); err != nil {
					log.Println("Saving sound setting failed:", err)
				}
			}

			if level, ok := input.ParseLevel(inputEvent); ok {
				if err := session.SetLevel(level); err != nil {
					log.Println("Saving level failed:", err)
				}
			}
			if dir, ok := input.ParseDirection(inputEvent); ok && !autopilot {
				session.SetDirection(dir)
			}
			draw()

		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			if delta > config.MaxFrameDelta {
				delta = config.MaxFrameDelta
			}

			if autopilot {
				if dir, ok := pilot.NextDirection(session.World()); ok {
					session.SetDirection(dir)
				}
			}
			if _, err := session.Update(delta); err != nil {
				log.Println("Saving score failed:", err)
			}
			draw()
		}
	}
}
