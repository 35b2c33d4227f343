package game

import (
	"sync"
	"time"

	"letsdraw/internal/message"
)

// Phase é a etapa do turno corrente.
type Phase string

const (
	PhaseChoosing Phase = "choosing"
	PhaseDrawing  Phase = "drawing"
	PhaseTurnEnd  Phase = "turn_end"
	PhaseGameOver Phase = "game_over"
)

// Player é um participante da sala. Só o desenhista tem 'word' preenchida.
type Player struct {
	ID    string
	Name  string
	Score int
	word  string
}

// Room guarda o estado de uma partida. Todos os campos são protegidos por mu.
type Room struct {
	mu sync.Mutex

	code      string
	createdAt time.Time

	// Ordem de entrada = ordem dos turnos.
	players []*Player
	adminID string

	// turn só cresce, exceto no reset. Desenhista e rodada são derivados dele.
	turn  int
	round int
	words []string

	phase        Phase
	choices      []string
	word         string
	turnDrawerID string

	timeLeft int
	paused   bool

	// timer é o disparo pendente (tique ou pausa entre turnos).
	// epoch muda a cada cancelamento; callbacks com epoch antigo são ignorados.
	timer  Timer
	epoch  uint64
	closed bool
}

func newRoom(code string, words []string, adminID string, now time.Time) *Room {
	return &Room{
		code:      code,
		createdAt: now,
		adminID:   adminID,
		round:     1,
		words:     words,
		phase:     PhaseChoosing,
	}
}

// drawer é players[turn mod n], ou nil numa sala vazia.
func (r *Room) drawer() *Player {
	if len(r.players) == 0 {
		return nil
	}
	return r.players[r.turn%len(r.players)]
}

func (r *Room) currentRound() int {
	if len(r.players) == 0 {
		return 1
	}
	return r.turn/len(r.players) + 1
}

func (r *Room) indexOf(connID string) int {
	for i, p := range r.players {
		if p.ID == connID {
			return i
		}
	}
	return -1
}

func (r *Room) player(connID string) *Player {
	if i := r.indexOf(connID); i >= 0 {
		return r.players[i]
	}
	return nil
}

func (r *Room) isAdmin(connID string) bool {
	return connID != "" && r.adminID == connID
}

func (r *Room) scoreboard() []message.ScoreEntry {
	entries := make([]message.ScoreEntry, len(r.players))
	for i, p := range r.players {
		entries[i] = message.ScoreEntry{Name: p.Name, Score: p.Score}
	}
	return entries
}

func (r *Room) clearWords() {
	for _, p := range r.players {
		p.word = ""
	}
	r.word = ""
}
