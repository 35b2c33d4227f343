package network

import (
	"encoding/json"
)

// Message é o envelope padrão para toda a comunicação, nos dois sentidos.
// Type é o nome do evento (ex: "joinRoom", "scoreboard") e Payload os dados
// específicos, mantidos em JSON bruto para decodificação posterior.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MaxMessageSize limita o tamanho de um frame recebido de um cliente.
// Traços de desenho são pequenos; 64 KiB cobre com folga um lote de pontos.
const MaxMessageSize = 64 * 1024
