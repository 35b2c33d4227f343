package main

import (
	"bufio"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"letsdraw/internal/network"
)

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// Tenta cada endereço em ordem até um responder.
	// Ex: LETSDRAW_ADDRS="192.168.1.10:3000,192.168.1.11:3000"
	addrs := []string{"localhost:3000"}
	if env := os.Getenv("LETSDRAW_ADDRS"); env != "" {
		addrs = strings.Split(env, ",")
	}

	var conn *websocket.Conn
	for _, addr := range addrs {
		u := url.URL{Scheme: "ws", Host: strings.TrimSpace(addr), Path: "/ws"}
		log.Printf("connecting to %s", u.String())

		var resp *http.Response
		var err error
		conn, resp, err = websocket.DefaultDialer.Dial(u.String(), nil)
		if err == nil {
			break
		}
		log.Printf("failed to connect to %s: %v", addr, err)
		if resp != nil {
			log.Printf("response status: %s", resp.Status)
		}
	}
	if conn == nil {
		log.Fatalf("no server available in %v", addrs)
	}
	defer conn.Close()
	l := newLink(conn)

	st := &state{}
	done := make(chan struct{})
	go readLoop(conn, st, done)

	printHelp()
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			handleInput(l, st, scanner.Text())
		}
	}()

	select {
	case <-done:
		log.Println("disconnected from server")
	case <-interrupt:
		if err := l.close(); err != nil {
			log.Printf("close error: %v", err)
		}
	}
}

func readLoop(conn *websocket.Conn, st *state, done chan struct{}) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("read error: %v", err)
			}
			return
		}
		if line := st.render(msg); line != "" {
			fmt.Println(line)
		}
	}
}

func handleInput(l *link, st *state, input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	switch input {
	case "/help":
		printHelp()
		return
	case "/ping":
		latency, ok, err := l.ping(3 * time.Second)
		switch {
		case err != nil:
			log.Println("ping failed:", err)
		case ok:
			fmt.Printf("[pong: %v]\n", latency)
		default:
			fmt.Println("[ping timed out]")
		}
		return
	}

	msg, err := st.command(input)
	if err != nil {
		fmt.Println("!", err)
		return
	}
	if err := l.send(msg); err != nil {
		log.Printf("write error: %v", err)
	}
}

func printHelp() {
	fmt.Println(`commands:
  /join <room> <name> [word,word,...]   join or create a room
  /pick <1-3|word>                      choose the word to draw
  /draw <x> <y> [color]                 send a stroke point
  /clear                                clear the canvas
  /say <text>                           chat
  /pause /resume /skip /reset           admin controls
  /ping /help
anything else is sent as a guess`)
}
