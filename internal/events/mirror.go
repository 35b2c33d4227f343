package events

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"letsdraw/internal/game"
	"letsdraw/internal/network"
)

// Publisher publica bytes num assunto. *nats.Conn satisfaz esta interface.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event é o que vai para o barramento a cada broadcast de sala.
type Event struct {
	Room    string          `json:"room"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// Mirror decora um game.Gateway e espelha todo broadcast de sala no barramento,
// em "<prefix>.<sala>.<evento>". Mensagens privadas (SendTo) não são espelhadas.
type Mirror struct {
	next   game.Gateway
	pub    Publisher
	prefix string
	now    func() time.Time
	log    *logrus.Entry
}

func NewMirror(next game.Gateway, pub Publisher, prefix string) *Mirror {
	return &Mirror{
		next:   next,
		pub:    pub,
		prefix: strings.TrimSuffix(prefix, "."),
		now:    time.Now,
		log:    logrus.WithField("component", "events"),
	}
}

func (m *Mirror) Subscribe(connID, room string) {
	m.next.Subscribe(connID, room)
}

func (m *Mirror) Unsubscribe(connID, room string) {
	m.next.Unsubscribe(connID, room)
}

func (m *Mirror) SendTo(connID string, msg network.Message) {
	m.next.SendTo(connID, msg)
}

func (m *Mirror) Broadcast(room string, msg network.Message) {
	m.next.Broadcast(room, msg)
	m.publish(room, msg)
}

func (m *Mirror) BroadcastExcept(room, except string, msg network.Message) {
	m.next.BroadcastExcept(room, except, msg)
	m.publish(room, msg)
}

// Subject monta o assunto de uma sala e evento.
func (m *Mirror) Subject(room, eventType string) string {
	return m.prefix + "." + token(room) + "." + token(eventType)
}

// Falha no barramento nunca afeta a sala: só registra.
func (m *Mirror) publish(room string, msg network.Message) {
	data, err := json.Marshal(Event{Room: room, Type: msg.Type, Payload: msg.Payload, At: m.now().UTC()})
	if err != nil {
		m.log.WithError(err).Warn("encode event")
		return
	}
	subject := m.Subject(room, msg.Type)
	if err := m.pub.Publish(subject, data); err != nil {
		m.log.WithFields(logrus.Fields{"subject": subject}).WithError(err).Warn("publish failed")
	}
}

// token troca o que não pode aparecer num token de assunto NATS.
func token(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, s)
}
