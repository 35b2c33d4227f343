package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"letsdraw/internal/message"
	"letsdraw/internal/network"
)

// CommandHandlerFunc define a assinatura para todas as funções que lidam com comandos.
// Elas recebem o id da conexão e o payload bruto da mensagem.
type CommandHandlerFunc func(h *GameHandler, connID string, payload json.RawMessage) error

// Coordinator é a lógica de salas que o roteador aciona.
type Coordinator interface {
	Join(connID, name, code string, customWords []string)
	Leave(connID string)
	SelectWord(connID, code, word string)
	Guess(connID, code, text string)
	Pause(connID, code string)
	Resume(connID, code string)
	Skip(connID, code string)
	Reset(connID, code string)
	Draw(connID, code string, stroke json.RawMessage)
	ClearCanvas(connID, code string)
	Chat(connID, code, msg string)
}

// Sender entrega uma mensagem a uma única conexão.
type Sender interface {
	SendTo(connID string, msg network.Message)
}

var errInvalidPayload = errors.New("invalid payload")

// GameHandler implementa network.EventHandler: decodifica os eventos de
// entrada e os despacha para o Coordinator.
type GameHandler struct {
	game   Coordinator
	sender Sender
	router map[string]CommandHandlerFunc
	log    *logrus.Entry
}

func NewGameHandler() *GameHandler {
	h := &GameHandler{
		router: make(map[string]CommandHandlerFunc),
		log:    logrus.WithField("component", "session"),
	}
	h.registerHandlers()
	return h
}

// Attach liga o handler ao coordenador e ao gateway. O Hub precisa do handler
// antes de existir, e o coordenador precisa do Hub; por isso a ligação é tardia.
// Deve ser chamado antes do Hub começar a rodar.
func (h *GameHandler) Attach(game Coordinator, sender Sender) {
	h.game = game
	h.sender = sender
}

// --- Implementação da Interface network.EventHandler ---

func (h *GameHandler) OnConnect(c *network.Client) {
	h.log.WithFields(logrus.Fields{"conn": c.ID(), "remote": c.RemoteAddr()}).Debug("session opened")
}

// OnDisconnect tira o jogador da sala em que ele estiver.
func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.game.Leave(c.ID())
	h.log.WithField("conn", c.ID()).Debug("session closed")
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	h.dispatch(c.ID(), msg)
}

func (h *GameHandler) dispatch(connID string, msg network.Message) {
	handler, found := h.router[msg.Type]
	if !found {
		h.log.WithFields(logrus.Fields{"conn": connID, "event": msg.Type}).Debug("unknown event")
		h.sender.SendTo(connID, message.Error("Unknown event: %s", msg.Type))
		return
	}

	if err := handler(h, connID, msg.Payload); err != nil {
		h.log.WithFields(logrus.Fields{"conn": connID, "event": msg.Type}).WithError(err).Debug("rejected event")
		h.sender.SendTo(connID, message.Error("%s: %v", msg.Type, err))
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidPayload, fmt.Sprintf(format, args...))
}
