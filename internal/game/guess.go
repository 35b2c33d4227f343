package game

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"letsdraw/internal/message"
)

// Guess compara o palpite com a palavra do desenhista, sem diferenciar maiúsculas.
func (c *Coordinator) Guess(connID, code, text string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	guesser := r.player(connID)
	d := r.drawer()
	if guesser == nil || d == nil || d.word == "" || r.phase != PhaseDrawing {
		return
	}
	if guesser == d {
		c.gw.SendTo(connID, message.Text("You cannot guess while drawing."))
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if !strings.EqualFold(text, d.word) {
		c.gw.Broadcast(code, message.Text(fmt.Sprintf("%s: %s", guesser.Name, text)))
		return
	}

	guesser.Score += c.rules.GuessPoints
	c.roomLog(r).WithFields(logrus.Fields{"conn": connID, "score": guesser.Score}).Info("word guessed")
	c.gw.Broadcast(code, message.Text(fmt.Sprintf("%s guessed the word!", guesser.Name)))
	c.broadcastScores(r)

	c.cancelTimer(r)
	r.turn++
	r.paused = false
	r.phase = PhaseTurnEnd
	c.schedule(r, c.rules.NextTurnDelay, func() { c.nextTurnOrEnd(r) })
}
