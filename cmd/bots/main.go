package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"letsdraw/internal/game"
	"letsdraw/internal/message"
	"letsdraw/internal/network"
)

// Bots de carga: cada um entra na sala e joga sozinho.
// PLAYER escolhe palavras, desenha e chuta; CHATTER só conversa.
func main() {
	server := envOr("BOT_SERVER", "localhost:3000")
	room := envOr("BOT_ROOM", "BOTS")
	role := envOr("BOT_ROLE", "PLAYER")
	count, err := strconv.Atoi(envOr("BOT_COUNT", "4"))
	if err != nil || count <= 0 {
		log.Fatalf("FATAL: invalid BOT_COUNT %q", os.Getenv("BOT_COUNT"))
	}

	var run func(b *bot)
	switch role {
	case "PLAYER":
		run = runPlayer
	case "CHATTER":
		run = runChatter
	default:
		log.Fatalf("FATAL: Unknown BOT_ROLE '%s'", role)
	}

	u := url.URL{Scheme: "ws", Host: server, Path: "/ws"}
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := dial(u.String(), fmt.Sprintf("bot-%d", i), room)
			if err != nil {
				log.Printf("FAIL (bot-%d): %v", i, err)
				return
			}
			defer b.conn.Close()
			run(b)
		}(i)
		// Entradas espaçadas deixam a ordem dos turnos previsível.
		time.Sleep(200 * time.Millisecond)
	}
	wg.Wait()
}

type bot struct {
	name string
	room string
	conn *websocket.Conn
	mu   sync.Mutex
}

func dial(addr, name, room string) (*bot, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	b := &bot{name: name, room: room, conn: conn}
	if err := b.send(message.TypeJoinRoom, map[string]any{"name": name, "room": room}); err != nil {
		conn.Close()
		return nil, err
	}
	log.Printf("SUCCESS (%s): joined %s", name, room)
	return b, nil
}

func (b *bot) send(msgType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn.WriteJSON(network.Message{Type: msgType, Payload: data})
}

// runPlayer reage aos eventos do servidor até a partida acabar.
func runPlayer(b *bot) {
	drawing := make(chan bool, 1)
	go func() {
		for isDrawer := range drawing {
			for isDrawer {
				b.send(message.TypeDraw, map[string]any{"room": b.room, "x": rand.IntN(800), "y": rand.IntN(600), "color": "#000000"})
				select {
				case isDrawer = <-drawing:
				case <-time.After(100 * time.Millisecond):
				}
			}
		}
	}()
	defer close(drawing)

	for {
		var msg network.Message
		if err := b.conn.ReadJSON(&msg); err != nil {
			log.Printf("FAIL (%s): connection lost: %v", b.name, err)
			return
		}

		switch msg.Type {
		case message.TypeChooseWord:
			var words []string
			json.Unmarshal(msg.Payload, &words)
			if len(words) > 0 {
				b.send(message.TypeWordSelected, map[string]string{"room": b.room, "word": words[rand.IntN(len(words))]})
			}
		case message.TypeTurn:
			var t message.TurnPayload
			json.Unmarshal(msg.Payload, &t)
			drawing <- t.IsYourTurn
		case message.TypeTimer:
			if rand.IntN(3) == 0 {
				guess := game.DefaultWords[rand.IntN(len(game.DefaultWords))]
				b.send(message.TypeGuess, map[string]string{"room": b.room, "guess": guess})
			}
		case message.TypeRoundUpdate:
			drawing <- false
		case message.TypeGameOver:
			var w message.WinnerPayload
			json.Unmarshal(msg.Payload, &w)
			log.Printf("SUCCESS (%s): game over, winner %s with %d", b.name, w.Name, w.Score)
			return
		}
	}
}

func runChatter(b *bot) {
	go func() {
		for {
			if _, _, err := b.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	for {
		if err := b.send(message.TypeChatMessage, map[string]string{"room": b.room, "msg": "hello from " + b.name}); err != nil {
			log.Printf("FAIL (%s): %v", b.name, err)
			return
		}
		time.Sleep(time.Duration(2+rand.IntN(3)) * time.Second)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
