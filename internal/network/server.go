package network

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Options ajusta o comportamento das conexões aceitas pelo Server.
type Options struct {
	// MessagesPerSecond e Burst configuram o limitador de entrada de cada cliente.
	// Zero desliga o limitador.
	MessagesPerSecond float64
	Burst             int
}

// Server aceita conexões WebSocket e as entrega ao Hub.
type Server struct {
	hub      *Hub
	opts     Options
	upgrader websocket.Upgrader
}

// NewServer aceita um EventHandler para passá-lo ao Hub.
// Este é o ponto de injeção da lógica do jogo.
func NewServer(handler EventHandler, opts Options) *Server {
	return &Server{
		hub:  NewHub(handler),
		opts: opts,
		upgrader: websocket.Upgrader{
			// O cliente é servido de qualquer origem; o jogo não tem autenticação.
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Hub expõe o gateway para a lógica do jogo.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run inicia a goroutine do Hub e bloqueia até o contexto terminar.
func (s *Server) Run(ctx context.Context) {
	s.hub.Run(ctx)
}

// ServeWS promove a requisição HTTP para WebSocket e registra o novo cliente.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithField("component", "network").WithError(err).Warn("websocket upgrade failed")
		return
	}

	var limiter *rate.Limiter
	if s.opts.MessagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.opts.MessagesPerSecond), s.opts.Burst)
	}

	client := newClient(uuid.NewString(), conn, s.hub, limiter)

	if !s.hub.requestRegister(client) {
		conn.Close()
		return
	}

	go client.writeLoop()
	go client.readLoop()
}
