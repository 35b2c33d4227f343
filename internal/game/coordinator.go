package game

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"letsdraw/internal/message"
	"letsdraw/internal/network"
)

var ErrRoomNotFound = errors.New("room not found")

// Gateway é o que o coordenador precisa da camada de mensagens.
// network.Hub satisfaz esta interface.
type Gateway interface {
	Subscribe(connID, room string)
	Unsubscribe(connID, room string)
	Broadcast(room string, msg network.Message)
	BroadcastExcept(room, except string, msg network.Message)
	SendTo(connID string, msg network.Message)
}

// Coordinator aplica as regras do jogo sobre as salas da Table.
// Cada operação trava apenas a sala envolvida.
type Coordinator struct {
	table *Table
	gw    Gateway
	sched Scheduler
	rules Rules
	now   func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	// conexão -> código da sala em que ela está
	connsMu sync.Mutex
	conns   map[string]string

	log *logrus.Entry
}

type Option func(*Coordinator)

func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) { c.sched = s }
}

func WithRules(r Rules) Option {
	return func(c *Coordinator) { c.rules = r.withDefaults() }
}

// WithSeed fixa a semente do sorteio de palavras.
func WithSeed(seed uint64) Option {
	return func(c *Coordinator) { c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func NewCoordinator(table *Table, gw Gateway, opts ...Option) *Coordinator {
	seed := uint64(time.Now().UnixNano())
	c := &Coordinator{
		table: table,
		gw:    gw,
		sched: RealScheduler(),
		rules: DefaultRules(),
		now:   time.Now,
		rng:   rand.New(rand.NewPCG(seed, seed>>1)),
		conns: make(map[string]string),
		log:   logrus.WithField("component", "coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RoomOf retorna o código da sala da conexão.
func (c *Coordinator) RoomOf(connID string) (string, bool) {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()
	code, ok := c.conns[connID]
	return code, ok
}

func (c *Coordinator) setRoomOf(connID, code string) {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()
	c.conns[connID] = code
}

func (c *Coordinator) takeRoomOf(connID string) (string, bool) {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()
	code, ok := c.conns[connID]
	delete(c.conns, connID)
	return code, ok
}

// clearRoomOf só apaga se a conexão ainda aponta para 'code'.
func (c *Coordinator) clearRoomOf(connID, code string) {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()
	if c.conns[connID] == code {
		delete(c.conns, connID)
	}
}

// lockRoom busca e trava a sala. Salas já destruídas contam como inexistentes.
func (c *Coordinator) lockRoom(code string) (*Room, bool) {
	r, ok := c.table.get(code)
	if !ok {
		return nil, false
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, false
	}
	return r, true
}

func (c *Coordinator) roomLog(r *Room) *logrus.Entry {
	return c.log.WithField("room", r.code)
}

func (c *Coordinator) pickWords(list []string) []string {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return pickWords(c.rng, list, c.rules.WordChoices)
}

func (c *Coordinator) broadcastScores(r *Room) {
	c.gw.Broadcast(r.code, message.Scoreboard(r.scoreboard()))
}

// destroy remove a sala da tabela e desinscreve quem restou. Assume r.mu travado.
func (c *Coordinator) destroy(r *Room, reason string) {
	c.cancelTimer(r)
	r.closed = true
	r.phase = PhaseGameOver
	c.table.remove(r.code, r)
	for _, p := range r.players {
		c.clearRoomOf(p.ID, r.code)
		c.gw.Unsubscribe(p.ID, r.code)
	}
	c.roomLog(r).WithField("reason", reason).Info("room destroyed")
}

// cancelTimer invalida qualquer callback pendente. Assume r.mu travado.
func (c *Coordinator) cancelTimer(r *Room) {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.epoch++
}

// schedule agenda f sob o lock da sala, descartando-o se o epoch mudar antes.
func (c *Coordinator) schedule(r *Room, d time.Duration, f func()) {
	epoch := r.epoch
	r.timer = c.sched.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.epoch != epoch {
			return
		}
		r.timer = nil
		f()
	})
}

// PlayerView é a visão de um jogador exposta aos operadores.
type PlayerView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	IsAdmin  bool   `json:"isAdmin"`
	IsDrawer bool   `json:"isDrawer"`
}

// RoomView é uma cópia do estado da sala. Nunca inclui a palavra secreta.
type RoomView struct {
	Code      string       `json:"code"`
	Phase     Phase        `json:"phase"`
	Round     int          `json:"round"`
	Turn      int          `json:"turn"`
	TimeLeft  int          `json:"timeLeft"`
	Paused    bool         `json:"paused"`
	HasWord   bool         `json:"hasWord"`
	Players   []PlayerView `json:"players"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (r *Room) view() RoomView {
	d := r.drawer()
	players := make([]PlayerView, len(r.players))
	for i, p := range r.players {
		players[i] = PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Score:    p.Score,
			IsAdmin:  p.ID == r.adminID,
			IsDrawer: d != nil && p == d,
		}
	}
	return RoomView{
		Code:      r.code,
		Phase:     r.phase,
		Round:     r.round,
		Turn:      r.turn,
		TimeLeft:  r.timeLeft,
		Paused:    r.paused,
		HasWord:   r.word != "",
		Players:   players,
		CreatedAt: r.createdAt,
	}
}

// Room retorna uma cópia do estado da sala.
func (c *Coordinator) Room(code string) (RoomView, error) {
	r, ok := c.lockRoom(code)
	if !ok {
		return RoomView{}, ErrRoomNotFound
	}
	defer r.mu.Unlock()
	return r.view(), nil
}

// Rooms retorna todas as salas ativas ordenadas pelo código.
func (c *Coordinator) Rooms() []RoomView {
	views := make([]RoomView, 0, c.table.Len())
	for _, code := range c.table.codes() {
		if v, err := c.Room(code); err == nil {
			views = append(views, v)
		}
	}
	return views
}
