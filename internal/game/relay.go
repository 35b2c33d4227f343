package game

import (
	"encoding/json"
	"strings"

	"letsdraw/internal/message"
)

// Draw repassa o traço do desenhista para os outros membros da sala.
func (c *Coordinator) Draw(connID, code string, stroke json.RawMessage) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	if d := r.drawer(); d == nil || d.ID != connID {
		return
	}
	c.gw.BroadcastExcept(code, connID, message.Draw(stroke))
}

// ClearCanvas limpa a tela de todos. Só o desenhista pode.
func (c *Coordinator) ClearCanvas(connID, code string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	if d := r.drawer(); d == nil || d.ID != connID {
		return
	}
	c.gw.Broadcast(code, message.ClearCanvas())
}

// Chat difunde uma linha de chat de qualquer membro da sala.
func (c *Coordinator) Chat(connID, code, msg string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	p := r.player(connID)
	if p == nil || strings.TrimSpace(msg) == "" {
		return
	}
	c.gw.Broadcast(code, message.Chat(p.Name, msg))
}
