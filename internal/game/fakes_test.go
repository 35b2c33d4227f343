package game

import (
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"letsdraw/internal/message"
	"letsdraw/internal/network"
)

// fakeGateway grava o que cada conexão receberia.
type fakeGateway struct {
	mu      sync.Mutex
	members map[string]map[string]bool
	inbox   map[string][]network.Message
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		members: make(map[string]map[string]bool),
		inbox:   make(map[string][]network.Message),
	}
}

func (g *fakeGateway) Subscribe(connID, room string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.members[room] == nil {
		g.members[room] = make(map[string]bool)
	}
	g.members[room][connID] = true
}

func (g *fakeGateway) Unsubscribe(connID, room string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.members[room], connID)
	if len(g.members[room]) == 0 {
		delete(g.members, room)
	}
}

func (g *fakeGateway) Broadcast(room string, msg network.Message) {
	g.BroadcastExcept(room, "", msg)
}

func (g *fakeGateway) BroadcastExcept(room, except string, msg network.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id := range g.members[room] {
		if id != except {
			g.inbox[id] = append(g.inbox[id], msg)
		}
	}
}

func (g *fakeGateway) SendTo(connID string, msg network.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inbox[connID] = append(g.inbox[connID], msg)
}

func (g *fakeGateway) subscribed(room string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(g.members[room]))
	for id := range g.members[room] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// drain devolve e esquece as mensagens recebidas pela conexão.
func (g *fakeGateway) drain(connID string) []network.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	msgs := g.inbox[connID]
	delete(g.inbox, connID)
	return msgs
}

func (g *fakeGateway) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inbox = make(map[string][]network.Message)
}

func ofType(msgs []network.Message, typ string) []network.Message {
	var out []network.Message
	for _, m := range msgs {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func texts(t *testing.T, msgs []network.Message) []string {
	t.Helper()
	var out []string
	for _, m := range ofType(msgs, message.TypeMessage) {
		var s string
		require.NoError(t, json.Unmarshal(m.Payload, &s))
		out = append(out, s)
	}
	return out
}

func timers(t *testing.T, msgs []network.Message) []int {
	t.Helper()
	var out []int
	for _, m := range ofType(msgs, message.TypeTimer) {
		var n int
		require.NoError(t, json.Unmarshal(m.Payload, &n))
		out = append(out, n)
	}
	return out
}

func decode[T any](t *testing.T, m network.Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(m.Payload, &v))
	return v
}

// fakeScheduler é um relógio manual: nada dispara até Advance.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance dispara, em ordem, tudo o que vence até now+d.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()
		next.f()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type harness struct {
	c     *Coordinator
	gw    *fakeGateway
	sched *fakeScheduler
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	gw := newFakeGateway()
	sched := newFakeScheduler()
	base := []Option{
		WithScheduler(sched),
		WithSeed(7),
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
	}
	c := NewCoordinator(NewTable(), gw, append(base, opts...)...)
	return &harness{c: c, gw: gw, sched: sched}
}

func (h *harness) room(t *testing.T, code string) *Room {
	t.Helper()
	r, ok := h.c.table.get(code)
	require.True(t, ok, "room %s should exist", code)
	return r
}

// checkInvariants confere as regras que valem entre quaisquer duas operações.
func (h *harness) checkInvariants(t *testing.T, code string) {
	t.Helper()
	r, ok := h.c.table.get(code)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	require.NotEmpty(t, r.players)
	require.GreaterOrEqual(t, r.indexOf(r.adminID), 0, "admin must be a member")

	holders := 0
	for _, p := range r.players {
		if p.word != "" {
			holders++
		}
	}
	require.LessOrEqual(t, holders, 1)

	if r.phase == PhaseChoosing || r.phase == PhaseDrawing {
		require.Equal(t, r.players[r.turn%len(r.players)].ID, r.turnDrawerID)
	}
	if r.phase == PhaseDrawing {
		require.Equal(t, r.word, r.drawer().word)
	}
}
