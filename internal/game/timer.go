package game

import (
	"letsdraw/internal/message"
)

// startTimer começa a contagem regressiva da palavra atual. Assume r.mu travado.
func (c *Coordinator) startTimer(r *Room, seconds int) {
	c.cancelTimer(r)
	r.timeLeft = seconds
	r.paused = false
	c.gw.Broadcast(r.code, message.Timer(seconds))
	c.schedule(r, tickInterval, func() { c.tick(r) })
}

func (c *Coordinator) tick(r *Room) {
	r.timeLeft--
	c.gw.Broadcast(r.code, message.Timer(r.timeLeft))
	if r.timeLeft > 0 {
		c.schedule(r, tickInterval, func() { c.tick(r) })
		return
	}

	c.cancelTimer(r)
	c.gw.Broadcast(r.code, message.Text("Time's up! The word was: "+r.word))
	r.turn++
	c.nextTurnOrEnd(r)
}

// Pause congela a contagem. Palavra e segundos restantes são mantidos.
func (c *Coordinator) Pause(connID, code string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	if !r.isAdmin(connID) || r.phase != PhaseDrawing || r.paused {
		c.roomLog(r).WithField("conn", connID).Debug("pause ignored")
		return
	}
	c.cancelTimer(r)
	r.paused = true
	c.gw.Broadcast(code, message.Text("Game paused by admin."))
}

// Resume retoma a contagem de onde parou.
func (c *Coordinator) Resume(connID, code string) {
	r, ok := c.lockRoom(code)
	if !ok {
		return
	}
	defer r.mu.Unlock()

	if !r.isAdmin(connID) || r.word == "" || r.phase != PhaseDrawing || !r.paused {
		c.roomLog(r).WithField("conn", connID).Debug("resume ignored")
		return
	}
	seconds := r.timeLeft
	if seconds <= 0 {
		seconds = c.rules.RoundSeconds
	}
	c.gw.Broadcast(code, message.Text("Game resumed by admin."))
	c.startTimer(r, seconds)
}
