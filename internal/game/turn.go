package game

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"letsdraw/internal/message"
)

// startTurn prepara o turno do desenhista derivado. Assume r.mu travado.
func (c *Coordinator) startTurn(r *Room) {
	d := r.drawer()
	if d == nil {
		return
	}
	c.cancelTimer(r)
	r.clearWords()
	r.timeLeft = 0
	r.paused = false
	r.phase = PhaseChoosing
	r.turnDrawerID = d.ID
	r.round = r.currentRound()
	r.choices = c.pickWords(r.words)

	c.roomLog(r).WithFields(logrus.Fields{"turn": r.turn, "round": r.round, "drawer": d.ID}).Info("turn started")

	c.gw.Broadcast(r.code, message.RoundUpdate(r.round))
	c.gw.SendTo(d.ID, message.ChooseWord(r.choices))
}

// nextTurnOrEnd encerra a partida quando todos desenharam MaxRounds vezes,
// senão começa o próximo turno. Assume r.mu travado.
func (c *Coordinator) nextTurnOrEnd(r *Room) {
	if len(r.players) == 0 {
		return
	}
	if r.turn >= len(r.players)*c.rules.MaxRounds {
		c.finish(r)
		return
	}
	c.startTurn(r)
}

func (c *Coordinator) finish(r *Room) {
	ranked := make([]*Player, len(r.players))
	copy(ranked, r.players)
	// Estável: no empate vence quem entrou primeiro.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	w := ranked[0]

	c.roomLog(r).WithFields(logrus.Fields{"winner": w.ID, "score": w.Score}).Info("game over")
	c.gw.Broadcast(r.code, message.GameOver(message.WinnerPayload{ID: w.ID, Name: w.Name, Score: w.Score}))
	c.destroy(r, "game over")
}

// SelectWord fixa a palavra do turno. Só vale para o desenhista, durante a
// escolha, e para uma das palavras oferecidas.
func (c *Coordinator) SelectWord(connID, code, word string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	d := r.drawer()
	if r.phase != PhaseChoosing || d == nil || d.ID != connID {
		c.roomLog(r).WithField("conn", connID).Debug("word selection ignored")
		return
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	if len(r.choices) > 0 {
		chosen := ""
		for _, w := range r.choices {
			if strings.EqualFold(w, word) {
				chosen = w
				break
			}
		}
		if chosen == "" {
			c.roomLog(r).WithField("conn", connID).Debug("word not among choices")
			return
		}
		word = chosen
	}

	d.word = word
	r.word = word
	r.choices = nil
	r.phase = PhaseDrawing

	hint := Mask(word)
	for _, p := range r.players {
		if p == d {
			c.gw.SendTo(p.ID, message.Turn(d.Name, word, true))
			continue
		}
		c.gw.SendTo(p.ID, message.Turn(d.Name, hint, false))
	}
	c.startTimer(r, c.rules.RoundSeconds)
}

// Skip encerra o turno atual a pedido do admin.
func (c *Coordinator) Skip(connID, code string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	if !r.isAdmin(connID) {
		c.roomLog(r).WithField("conn", connID).Debug("skip from non-admin ignored")
		return
	}
	c.cancelTimer(r)
	// Na pausa entre turnos o contador já avançou.
	if r.phase != PhaseTurnEnd {
		r.turn++
	}
	c.gw.Broadcast(code, message.Text("Turn skipped by admin."))
	c.nextTurnOrEnd(r)
}

// Reset zera placar e contador e recomeça do primeiro jogador.
func (c *Coordinator) Reset(connID, code string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	if !r.isAdmin(connID) {
		c.roomLog(r).WithField("conn", connID).Debug("reset from non-admin ignored")
		return
	}
	c.cancelTimer(r)
	r.turn = 0
	r.round = 1
	for _, p := range r.players {
		p.Score = 0
	}
	c.roomLog(r).Info("game reset")
	c.gw.Broadcast(code, message.Text("Game reset by admin."))
	c.broadcastScores(r)
	c.startTurn(r)
}
