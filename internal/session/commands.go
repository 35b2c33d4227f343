package session

import (
	"encoding/json"

	"letsdraw/internal/message"
)

func (h *GameHandler) registerHandlers() {
	h.router[message.TypeJoinRoom] = handleJoinRoom
	h.router[message.TypeDraw] = handleDraw
	h.router[message.TypeGuess] = handleGuess
	h.router[message.TypeWordSelected] = handleWordSelected
	h.router[message.TypePauseGame] = handlePauseGame
	h.router[message.TypeResumeGame] = handleResumeGame
	h.router[message.TypeSkipTurn] = handleSkipTurn
	h.router[message.TypeResetGame] = handleResetGame
	h.router[message.TypeClearCanvas] = handleClearCanvas
	h.router[message.TypeChatMessage] = handleChatMessage
}

type joinRoomPayload struct {
	Name        string   `json:"name"`
	Room        string   `json:"room"`
	CustomWords []string `json:"customWords"`
}

type guessPayload struct {
	Room  string `json:"room"`
	Guess string `json:"guess"`
}

type wordSelectedPayload struct {
	Room string `json:"room"`
	Word string `json:"word"`
}

type chatPayload struct {
	Room string `json:"room"`
	Msg  string `json:"msg"`
}

func handleJoinRoom(h *GameHandler, connID string, payload json.RawMessage) error {
	var req joinRoomPayload
	if err := decodeObject(payload, &req); err != nil {
		return err
	}
	if req.Room == "" {
		return invalid("'room' is required")
	}
	h.game.Join(connID, req.Name, req.Room, req.CustomWords)
	return nil
}

func handleDraw(h *GameHandler, connID string, payload json.RawMessage) error {
	room, stroke, err := splitStroke(payload)
	if err != nil {
		return err
	}
	h.game.Draw(connID, room, stroke)
	return nil
}

func handleGuess(h *GameHandler, connID string, payload json.RawMessage) error {
	var req guessPayload
	if err := decodeObject(payload, &req); err != nil {
		return err
	}
	h.game.Guess(connID, req.Room, req.Guess)
	return nil
}

func handleWordSelected(h *GameHandler, connID string, payload json.RawMessage) error {
	var req wordSelectedPayload
	if err := decodeObject(payload, &req); err != nil {
		return err
	}
	h.game.SelectWord(connID, req.Room, req.Word)
	return nil
}

func handleChatMessage(h *GameHandler, connID string, payload json.RawMessage) error {
	var req chatPayload
	if err := decodeObject(payload, &req); err != nil {
		return err
	}
	h.game.Chat(connID, req.Room, req.Msg)
	return nil
}

// roomCommand adapta as ações que só carregam o código da sala.
func roomCommand(action func(c Coordinator, connID, room string)) CommandHandlerFunc {
	return func(h *GameHandler, connID string, payload json.RawMessage) error {
		room, err := decodeRoom(payload)
		if err != nil {
			return err
		}
		action(h.game, connID, room)
		return nil
	}
}

var (
	handlePauseGame   = roomCommand(Coordinator.Pause)
	handleResumeGame  = roomCommand(Coordinator.Resume)
	handleSkipTurn    = roomCommand(Coordinator.Skip)
	handleResetGame   = roomCommand(Coordinator.Reset)
	handleClearCanvas = roomCommand(Coordinator.ClearCanvas)
)
