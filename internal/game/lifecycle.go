package game

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"letsdraw/internal/message"
)

const defaultPlayerName = "Player"

func (c *Coordinator) activeWords(custom []string) []string {
	if words := SanitizeWords(custom); len(words) > 0 {
		return words
	}
	return DefaultWords
}

// Join coloca a conexão na sala 'code', criando-a se o código ainda não existe.
// Quem cria a sala vira admin. Uma conexão que já estava em outra sala sai dela antes.
func (c *Coordinator) Join(connID, name, code string, customWords []string) {
	if connID == "" || code == "" {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlayerName
	}

	if _, ok := c.RoomOf(connID); ok {
		c.Leave(connID)
	}

	var r *Room
	for {
		var created bool
		r, created = c.table.getOrCreate(code, func() *Room {
			return newRoom(code, c.activeWords(customWords), connID, c.now())
		})
		r.mu.Lock()
		if r.closed {
			// Destruída entre a busca e o lock; tenta de novo com uma sala nova.
			r.mu.Unlock()
			continue
		}
		if created {
			c.roomLog(r).WithFields(logrus.Fields{"admin": connID, "words": len(r.words)}).Info("room created")
		}
		break
	}
	defer r.mu.Unlock()

	p := &Player{ID: connID, Name: name}
	r.players = append(r.players, p)
	c.setRoomOf(connID, code)
	c.gw.Subscribe(connID, code)

	c.roomLog(r).WithFields(logrus.Fields{"conn": connID, "name": name, "players": len(r.players)}).Info("player joined")

	c.gw.Broadcast(code, message.Text(fmt.Sprintf("%s joined room %s", name, code)))
	c.broadcastScores(r)
	if r.isAdmin(connID) {
		c.gw.SendTo(connID, message.IsAdmin())
	}

	if len(r.players) == 1 {
		c.startTurn(r)
		return
	}
	if !c.reconcileDrawer(r) {
		c.syncLateJoiner(r, p)
	}
}

// syncLateJoiner deixa o cliente de quem chegou no meio de um turno em dia.
func (c *Coordinator) syncLateJoiner(r *Room, p *Player) {
	switch r.phase {
	case PhaseChoosing:
		c.gw.SendTo(p.ID, message.RoundUpdate(r.round))
	case PhaseDrawing:
		d := r.drawer()
		if d == nil || r.word == "" {
			return
		}
		c.gw.SendTo(p.ID, message.RoundUpdate(r.round))
		c.gw.SendTo(p.ID, message.Turn(d.Name, Mask(r.word), false))
		c.gw.SendTo(p.ID, message.Timer(r.timeLeft))
	}
}

// Leave tira a conexão da sala em que ela estiver. Desconhecidas são ignoradas.
func (c *Coordinator) Leave(connID string) {
	code, ok := c.takeRoomOf(connID)
	if !ok {
		return
	}
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	i := r.indexOf(connID)
	if i < 0 {
		return
	}
	p := r.players[i]
	r.players = append(r.players[:i], r.players[i+1:]...)
	c.gw.Unsubscribe(connID, code)

	c.roomLog(r).WithFields(logrus.Fields{"conn": connID, "name": p.Name, "players": len(r.players)}).Info("player left")

	c.gw.Broadcast(code, message.Text(fmt.Sprintf("%s left the room.", p.Name)))
	c.broadcastScores(r)

	if len(r.players) == 0 {
		c.destroy(r, "empty")
		return
	}

	if r.adminID == connID {
		admin := r.players[0]
		r.adminID = admin.ID
		c.gw.SendTo(admin.ID, message.IsAdmin())
		c.gw.Broadcast(code, message.Text(fmt.Sprintf("Admin left. New admin: %s", admin.Name)))
	}

	c.reconcileDrawer(r)
}

// reconcileDrawer recomeça o turno quando uma entrada ou saída mudou o
// desenhista derivado, sem avançar o contador. Na pausa entre turnos o
// callback pendente já cuida disso. Assume r.mu travado.
func (c *Coordinator) reconcileDrawer(r *Room) bool {
	if r.phase != PhaseChoosing && r.phase != PhaseDrawing {
		return false
	}
	d := r.drawer()
	if d == nil || d.ID == r.turnDrawerID {
		return false
	}
	c.cancelTimer(r)
	c.roomLog(r).WithField("drawer", d.ID).Info("drawer changed, restarting turn")
	c.nextTurnOrEnd(r)
	return true
}
