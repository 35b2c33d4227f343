package game

import "time"

// Timer é um disparo agendado que pode ser cancelado.
type Timer interface {
	Stop() bool
}

// Scheduler agenda callbacks. A sala usa para o tique de 1s e para a pausa
// entre turnos; os testes injetam um relógio manual.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler agenda com time.AfterFunc.
func RealScheduler() Scheduler {
	return clockScheduler{}
}
