package message

// Mensagens no sentido servidor -> cliente.
import (
	"encoding/json"
	"fmt"

	"letsdraw/internal/network"
)

// ScoreEntry é uma linha do placar.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// TurnPayload anuncia o desenhista e a dica da palavra para um jogador.
// O desenhista recebe a palavra inteira; os outros, a máscara.
type TurnPayload struct {
	Drawer     string `json:"drawer"`
	WordHint   string `json:"wordHint"`
	IsYourTurn bool   `json:"isYourTurn"`
}

// ChatPayload é uma linha de chat atribuída a um jogador.
type ChatPayload struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

// WinnerPayload descreve o vencedor no fim de jogo.
type WinnerPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ErrorClientPayload é o diagnóstico enviado apenas para a conexão que errou.
type ErrorClientPayload struct {
	Error string `json:"error"`
}

func create(msgType string, payload any) network.Message {
	if payload == nil {
		return network.Message{Type: msgType}
	}
	payloadBytes, _ := json.Marshal(payload)
	return network.Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
}

func Text(text string) network.Message {
	return create(TypeMessage, text)
}

func IsAdmin() network.Message {
	return create(TypeIsAdmin, nil)
}

func Scoreboard(entries []ScoreEntry) network.Message {
	if entries == nil {
		entries = []ScoreEntry{}
	}
	return create(TypeScoreboard, entries)
}

func Turn(drawer, hint string, yours bool) network.Message {
	return create(TypeTurn, TurnPayload{Drawer: drawer, WordHint: hint, IsYourTurn: yours})
}

func ChooseWord(words []string) network.Message {
	if words == nil {
		words = []string{}
	}
	return create(TypeChooseWord, words)
}

func Timer(secondsLeft int) network.Message {
	return create(TypeTimer, secondsLeft)
}

func RoundUpdate(round int) network.Message {
	return create(TypeRoundUpdate, round)
}

// Draw repassa o traço sem reinterpretá-lo.
func Draw(stroke json.RawMessage) network.Message {
	return network.Message{Type: TypeDraw, Payload: stroke}
}

func ClearCanvas() network.Message {
	return create(TypeClearCanvas, nil)
}

func Chat(name, msg string) network.Message {
	return create(TypeChatMessage, ChatPayload{Name: name, Msg: msg})
}

func GameOver(winner WinnerPayload) network.Message {
	return create(TypeGameOver, winner)
}

// Error monta o diagnóstico para eventos desconhecidos ou malformados.
func Error(format string, args ...any) network.Message {
	return create(TypeError, ErrorClientPayload{Error: fmt.Sprintf(format, args...)})
}
