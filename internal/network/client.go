package network

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// Tempo para aguardar por uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo para aguardar por uma resposta de pong do cliente.
	pongWait = 60 * time.Second

	// Frequência com que enviamos pings para o cliente. Deve ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Capacidade do buffer de saída de cada cliente.
	sendBufferSize = 256
)

// Client é a representação de um jogador conectado do ponto de vista do servidor.
// Ele agrupa a conexão, a identidade opaca da conexão e o canal de saída.
type Client struct {
	id string

	// A conexão WebSocket real com o jogador. Nula nos testes do Hub.
	conn *websocket.Conn

	// Uma referência ao Hub central. O cliente usa isso para se (des)registrar.
	hub *Hub

	// Canal bufferizado para mensagens de saída. O Hub coloca as mensagens aqui
	// e a goroutine writeLoop as envia. Fechado pelo Hub no unregister.
	send chan Message

	// Limita a taxa de mensagens recebidas; o excesso é descartado.
	limiter *rate.Limiter
}

func newClient(id string, conn *websocket.Conn, hub *Hub, limiter *rate.Limiter) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		hub:     hub,
		send:    make(chan Message, sendBufferSize),
		limiter: limiter,
	}
}

// ID retorna a identidade opaca da conexão, atribuída pelo servidor.
func (c *Client) ID() string {
	return c.id
}

// RemoteAddr retorna o endereço do par, ou "" quando não há conexão real.
func (c *Client) RemoteAddr() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

func (c *Client) log() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"component": "network", "conn": c.id})
}

func (c *Client) readLoop() {
	// Garante que a limpeza ocorrerá quando o loop terminar.
	defer func() {
		c.hub.requestUnregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Warn("unexpected close")
			}
			break
		}

		if c.limiter != nil && !c.limiter.Allow() {
			c.log().WithField("event", msg.Type).Debug("rate limit exceeded, message dropped")
			continue
		}

		if !c.hub.enqueue(clientMessage{client: c, msg: msg}) {
			break
		}
	}
}

// writeLoop bombeia mensagens do canal 'send' do cliente para a conexão WebSocket.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			// O canal 'send' foi fechado pelo Hub: o cliente foi desregistrado.
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				c.log().WithError(err).Warn("write failed")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
