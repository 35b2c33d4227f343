package game

import "time"

// Rules são os parâmetros de uma partida.
type Rules struct {
	RoundSeconds  int
	MaxRounds     int
	GuessPoints   int
	WordChoices   int
	NextTurnDelay time.Duration
}

func DefaultRules() Rules {
	return Rules{
		RoundSeconds:  45,
		MaxRounds:     5,
		GuessPoints:   10,
		WordChoices:   3,
		NextTurnDelay: 2 * time.Second,
	}
}

// withDefaults preenche os campos zerados com os valores padrão.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.RoundSeconds <= 0 {
		r.RoundSeconds = d.RoundSeconds
	}
	if r.MaxRounds <= 0 {
		r.MaxRounds = d.MaxRounds
	}
	if r.GuessPoints <= 0 {
		r.GuessPoints = d.GuessPoints
	}
	if r.WordChoices <= 0 {
		r.WordChoices = d.WordChoices
	}
	if r.NextTurnDelay <= 0 {
		r.NextTurnDelay = d.NextTurnDelay
	}
	return r
}

const tickInterval = time.Second
