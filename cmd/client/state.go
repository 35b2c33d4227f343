package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"letsdraw/internal/message"
	"letsdraw/internal/network"
)

// state guarda o que o cliente sabe da partida: a sala e as palavras oferecidas.
type state struct {
	mu      sync.Mutex
	room    string
	choices []string
}

var errNoRoom = errors.New("join a room first: /join <room> <name>")

func build(msgType string, payload any) network.Message {
	data, _ := json.Marshal(payload)
	return network.Message{Type: msgType, Payload: data}
}

// command traduz uma linha digitada na mensagem a enviar.
func (s *state) command(input string) (network.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	if cmd == "/join" {
		if len(args) < 2 {
			return network.Message{}, errors.New("usage: /join <room> <name> [word,word,...]")
		}
		var words []string
		if len(args) > 2 {
			words = strings.Split(args[2], ",")
		}
		s.room = args[0]
		s.choices = nil
		return build(message.TypeJoinRoom, map[string]any{"room": args[0], "name": args[1], "customWords": words}), nil
	}

	if s.room == "" {
		return network.Message{}, errNoRoom
	}

	switch cmd {
	case "/pick":
		if len(args) == 0 {
			return network.Message{}, errors.New("usage: /pick <1-3|word>")
		}
		word := strings.Join(args, " ")
		if n, err := strconv.Atoi(word); err == nil {
			if n < 1 || n > len(s.choices) {
				return network.Message{}, fmt.Errorf("pick a number between 1 and %d", len(s.choices))
			}
			word = s.choices[n-1]
		}
		return build(message.TypeWordSelected, map[string]string{"room": s.room, "word": word}), nil

	case "/draw":
		if len(args) < 2 {
			return network.Message{}, errors.New("usage: /draw <x> <y> [color]")
		}
		x, errX := strconv.ParseFloat(args[0], 64)
		y, errY := strconv.ParseFloat(args[1], 64)
		if errX != nil || errY != nil {
			return network.Message{}, errors.New("x and y must be numbers")
		}
		stroke := map[string]any{"room": s.room, "x": x, "y": y, "color": "#000000"}
		if len(args) > 2 {
			stroke["color"] = args[2]
		}
		return build(message.TypeDraw, stroke), nil

	case "/say":
		return build(message.TypeChatMessage, map[string]string{"room": s.room, "msg": strings.Join(args, " ")}), nil

	case "/clear":
		return build(message.TypeClearCanvas, s.room), nil
	case "/pause":
		return build(message.TypePauseGame, s.room), nil
	case "/resume":
		return build(message.TypeResumeGame, s.room), nil
	case "/skip":
		return build(message.TypeSkipTurn, s.room), nil
	case "/reset":
		return build(message.TypeResetGame, s.room), nil
	}

	if strings.HasPrefix(cmd, "/") {
		return network.Message{}, fmt.Errorf("unknown command %s", cmd)
	}
	return build(message.TypeGuess, map[string]string{"room": s.room, "guess": input}), nil
}

// render formata um evento do servidor para o terminal.
func (s *state) render(msg network.Message) string {
	switch msg.Type {
	case message.TypeMessage:
		var text string
		json.Unmarshal(msg.Payload, &text)
		return "* " + text

	case message.TypeIsAdmin:
		return "* you are the room admin"

	case message.TypeScoreboard:
		var entries []message.ScoreEntry
		json.Unmarshal(msg.Payload, &entries)
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = fmt.Sprintf("%s %d", e.Name, e.Score)
		}
		return "[score] " + strings.Join(parts, " | ")

	case message.TypeChooseWord:
		var words []string
		json.Unmarshal(msg.Payload, &words)
		s.mu.Lock()
		s.choices = words
		s.mu.Unlock()
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = fmt.Sprintf("%d) %s", i+1, w)
		}
		return "your turn, /pick one: " + strings.Join(parts, "  ")

	case message.TypeTurn:
		var t message.TurnPayload
		json.Unmarshal(msg.Payload, &t)
		if t.IsYourTurn {
			return fmt.Sprintf("draw: %s", t.WordHint)
		}
		return fmt.Sprintf("%s is drawing: %s", t.Drawer, strings.Join(strings.Split(t.WordHint, ""), " "))

	case message.TypeTimer:
		var n int
		json.Unmarshal(msg.Payload, &n)
		if n%10 == 0 || n <= 5 {
			return fmt.Sprintf("[%ds]", n)
		}
		return ""

	case message.TypeRoundUpdate:
		var round int
		json.Unmarshal(msg.Payload, &round)
		return fmt.Sprintf("=== round %d ===", round)

	case message.TypeChatMessage:
		var c message.ChatPayload
		json.Unmarshal(msg.Payload, &c)
		return fmt.Sprintf("<%s> %s", c.Name, c.Msg)

	case message.TypeDraw:
		return "~ " + string(msg.Payload)

	case message.TypeClearCanvas:
		return "~ canvas cleared"

	case message.TypeGameOver:
		var w message.WinnerPayload
		json.Unmarshal(msg.Payload, &w)
		s.mu.Lock()
		s.room = ""
		s.mu.Unlock()
		return fmt.Sprintf("*** game over: %s wins with %d points ***", w.Name, w.Score)

	case message.TypeError:
		var e message.ErrorClientPayload
		json.Unmarshal(msg.Payload, &e)
		return "! " + e.Error
	}
	return fmt.Sprintf("? %s %s", msg.Type, string(msg.Payload))
}
