package game

import (
	"sort"
	"sync"
)

// Table é o mapa código -> sala. O primeiro a entrar com um código cria a sala.
type Table struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewTable() *Table {
	return &Table{rooms: make(map[string]*Room)}
}

// getOrCreate devolve a sala existente ou instala a criada por 'create'.
// O segundo retorno indica se a sala foi criada agora.
func (t *Table) getOrCreate(code string, create func() *Room) (*Room, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if r, ok := t.rooms[code]; ok {
		return r, false
	}
	r := create()
	t.rooms[code] = r
	return r, true
}

func (t *Table) get(code string) (*Room, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rooms[code]
	return r, ok
}

// remove só apaga se o código ainda aponta para esta mesma sala,
// para não derrubar uma sala nova criada com o código reaproveitado.
func (t *Table) remove(code string, r *Room) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.rooms[code]; ok && cur == r {
		delete(t.rooms, code)
		return true
	}
	return false
}

// Len retorna o número de salas ativas.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rooms)
}

// codes retorna os códigos em ordem alfabética.
func (t *Table) codes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	codes := make([]string, 0, len(t.rooms))
	for code := range t.rooms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
