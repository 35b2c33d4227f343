package main

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"letsdraw/internal/network"
)

// link é a conexão do terminal com o servidor. O gorilla aceita um único
// escritor por vez, então toda escrita de dados passa por writeMu.
type link struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	pingMu    sync.Mutex
	pingStart time.Time
	pongs     chan time.Duration
}

func newLink(conn *websocket.Conn) *link {
	l := &link{conn: conn, pongs: make(chan time.Duration, 1)}
	if conn != nil {
		conn.SetPongHandler(l.onPong)
	}
	return l
}

func (l *link) send(msg network.Message) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.conn.WriteJSON(msg)
}

// close envia o frame de fechamento normal.
func (l *link) close() error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// startPing marca o início da medição e descarta um pong antigo que sobrou.
func (l *link) startPing() {
	l.pingMu.Lock()
	defer l.pingMu.Unlock()
	l.pingStart = time.Now()
	select {
	case <-l.pongs:
	default:
	}
}

func (l *link) cancelPing() {
	l.pingMu.Lock()
	defer l.pingMu.Unlock()
	l.pingStart = time.Time{}
}

// onPong roda na goroutine de leitura e nunca bloqueia.
func (l *link) onPong(string) error {
	l.pingMu.Lock()
	defer l.pingMu.Unlock()
	if l.pingStart.IsZero() {
		return nil
	}
	latency := time.Since(l.pingStart)
	l.pingStart = time.Time{}
	select {
	case l.pongs <- latency:
	default:
	}
	return nil
}

func (l *link) ping(timeout time.Duration) (time.Duration, bool, error) {
	l.startPing()
	if err := l.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
		l.cancelPing()
		return 0, false, err
	}

	select {
	case latency := <-l.pongs:
		return latency, true, nil
	case <-time.After(timeout):
		l.cancelPing()
		return 0, false, nil
	}
}
