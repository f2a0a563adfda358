package input

import (
	"github.com/eiannone/keyboard"
	"github.com/vanillaSlice/Snake/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
	done      chan struct{}
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
		done:      make(chan struct{}),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case h.inputChan <- KeyInput{Char: char, Key: key}:
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

// Stop stops the keyboard handler
func (h *KeyboardHandler) Stop() {
	close(h.done)
	keyboard.Close()
}

// GetInputChan returns the input channel
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// ParseDirection parses a key input into a direction
func ParseDirection(input KeyInput) (dir game.Direction, isValid bool) {
	// Handle arrow keys
	switch input.Key {
	case keyboard.KeyArrowUp:
		return game.Up, true
	case keyboard.KeyArrowDown:
		return game.Down, true
	case keyboard.KeyArrowLeft:
		return game.Left, true
	case keyboard.KeyArrowRight:
		return game.Right, true
	}

	// Handle WASD keys
	switch input.Char {
	case 'w', 'W':
		return game.Up, true
	case 's', 'S':
		return game.Down, true
	case 'a', 'A':
		return game.Left, true
	case 'd', 'D':
		return game.Right, true
	}

	return game.Right, false
}

// ParseLevel parses the digit keys 1-9 into a level
func ParseLevel(input KeyInput) (int, bool) {
	if input.Char >= '1' && input.Char <= '9' {
		return int(input.Char - '0'), true
	}
	return 0, false
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' || input.Key == keyboard.KeyCtrlC || input.Key == keyboard.KeyEsc
}

// IsRestart checks if the input is a restart command
func IsRestart(input KeyInput) bool {
	return input.Char == 'r' || input.Char == 'R'
}

// IsPause checks if the input is a pause command
func IsPause(input KeyInput) bool {
	return input.Char == 'p' || input.Char == 'P' || input.Key == keyboard.KeySpace
}

// IsAutopilot checks if the input toggles the autopilot
func IsAutopilot(input KeyInput) bool {
	return input.Char == 'o' || input.Char == 'O'
}

// IsToggleSounds checks if the input toggles the sound preference
func IsToggleSounds(input KeyInput) bool {
	return input.Char == 'm' || input.Char == 'M'
}
