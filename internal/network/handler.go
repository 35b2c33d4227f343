package network

// EventHandler é a interface que conecta a camada de rede com a lógica do jogo.
// O Hub chama estes métodos a partir da sua própria goroutine, um evento por vez.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(c *Client)

	// OnDisconnect é chamado depois que o cliente foi removido do Hub e de todas as salas.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem recebida de um cliente.
	OnMessage(c *Client, msg Message)
}
