package network

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// clientMessage empacota uma mensagem com o cliente que a enviou.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos, as salas lógicas de broadcast e
// roteia os eventos de entrada para o handler. Ele é o gateway de mensagens:
// a lógica do jogo usa Subscribe/Broadcast/SendTo para falar com os clientes.
type Hub struct {
	// Protege clients e rooms. Nunca fica travado enquanto o handler executa.
	mu sync.RWMutex

	clients map[string]*Client
	// sala -> id da conexão -> cliente
	rooms map[string]map[string]*Client
	// id da conexão -> salas em que ela está
	memberships map[string]map[string]struct{}

	register   chan *Client
	unregister chan *Client
	// Sem buffer: a readLoop só pede o unregister depois que o Hub consumiu a
	// última mensagem dela, então OnDisconnect sempre vem depois das mensagens.
	incoming chan clientMessage
	done       chan struct{}

	handler EventHandler
	log     *logrus.Entry
}

// NewHub cria, inicializa e retorna um novo Hub.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		rooms:       make(map[string]map[string]*Client),
		memberships: make(map[string]map[string]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		incoming:    make(chan clientMessage),
		done:        make(chan struct{}),
		handler:     handler,
		log:         logrus.WithField("component", "hub"),
	}
}

// Run processa registros, desregistros e mensagens até o contexto ser cancelado.
// Todos os callbacks do EventHandler acontecem nesta goroutine.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info("hub running")
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if h.removeClient(client) {
				h.handler.OnDisconnect(client)
			}

		case cm := <-h.incoming:
			h.handler.OnMessage(cm.client, cm.msg)

		case <-ctx.Done():
			h.log.Info("hub shutting down")
			return
		}
	}
}

func (h *Hub) requestRegister(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) requestUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) enqueue(cm clientMessage) bool {
	select {
	case h.incoming <- cm:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	h.log.WithFields(logrus.Fields{"conn": c.id, "remote": c.RemoteAddr(), "clients": len(h.clients)}).Info("client registered")
}

// removeClient tira o cliente de todas as salas e fecha o canal 'send',
// sinalizando para a writeLoop parar. Retorna false se ele já havia saído.
func (h *Hub) removeClient(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.id]; !ok {
		return false
	}
	for room := range h.memberships[c.id] {
		h.detach(c.id, room)
	}
	delete(h.memberships, c.id)
	delete(h.clients, c.id)
	close(c.send)
	h.log.WithFields(logrus.Fields{"conn": c.id, "clients": len(h.clients)}).Info("client unregistered")
	return true
}

// detach assume h.mu travado para escrita.
func (h *Hub) detach(connID, room string) {
	members := h.rooms[room]
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	if rooms := h.memberships[connID]; rooms != nil {
		delete(rooms, room)
	}
}

// Subscribe coloca a conexão na sala de broadcast. Conexões desconhecidas são ignoradas.
func (h *Hub) Subscribe(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]*Client)
	}
	h.rooms[room][connID] = c
	if h.memberships[connID] == nil {
		h.memberships[connID] = make(map[string]struct{})
	}
	h.memberships[connID][room] = struct{}{}
}

// Unsubscribe remove a conexão da sala de broadcast.
func (h *Hub) Unsubscribe(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detach(connID, room)
}

// Broadcast envia a mensagem para todos os membros da sala.
func (h *Hub) Broadcast(room string, msg Message) {
	h.BroadcastExcept(room, "", msg)
}

// BroadcastExcept envia a mensagem para todos os membros da sala menos 'except'.
func (h *Hub) BroadcastExcept(room, except string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.rooms[room] {
		if id == except {
			continue
		}
		h.deliver(c, msg)
	}
}

// SendTo envia a mensagem para uma única conexão.
func (h *Hub) SendTo(connID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[connID]; ok {
		h.deliver(c, msg)
	}
}

// Running informa se o Hub ainda processa eventos.
func (h *Hub) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// ClientCount retorna o número de conexões ativas.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// deliver nunca bloqueia: um cliente lento perde a mensagem em vez de travar a sala.
// Assume h.mu travado (leitura basta), o que garante que c.send ainda está aberto.
func (h *Hub) deliver(c *Client, msg Message) {
	select {
	case c.send <- msg:
	default:
		h.log.WithFields(logrus.Fields{"conn": c.id, "event": msg.Type}).Warn("send buffer full, message dropped")
	}
}
