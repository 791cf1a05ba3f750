package report

import (
	"fmt"
	"sync"

	"github.com/ekspresi/itm-sub002/internal/domain"
)

// State estado del ciclo de generación de un reporte.
type State string

const (
	StateIdle      State = "idle"
	StatePreparing State = "preparing"
	StateReady     State = "ready"
)

// Document es una estructura imprimible de este paquete.
type Document interface {
	composed() bool
}

// Job controla el ciclo Idle -> Preparing -> Ready -> Idle de un reporte.
// La entrega al renderizador solo es posible en Ready, es decir, con el documento
// completamente construido; no hay esperas por tiempo.
type Job[D Document] struct {
	mu    sync.Mutex
	state State
	doc   D
}

// NewJob crea un job en Idle.
func NewJob[D Document]() *Job[D] {
	return &Job[D]{state: StateIdle}
}

// State devuelve el estado actual.
func (j *Job[D]) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Begin pasa de Idle a Preparing.
func (j *Job[D]) Begin() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state != StateIdle {
		return fmt.Errorf("%w: begin en estado %s", domain.ErrReportNotReady, j.state)
	}
	j.state = StatePreparing
	return nil
}

// Complete registra el documento compuesto y pasa de Preparing a Ready.
// Un documento nil no completa la preparación.
func (j *Job[D]) Complete(doc D) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state != StatePreparing {
		return fmt.Errorf("%w: complete en estado %s", domain.ErrReportNotReady, j.state)
	}
	if !doc.composed() {
		return fmt.Errorf("%w: documento vacío", domain.ErrReportNotReady)
	}
	j.doc = doc
	j.state = StateReady
	return nil
}

// Handoff entrega el documento a render y vuelve a Idle, haya o no error de render.
// Falla sin invocar render si el job no está en Ready.
func (j *Job[D]) Handoff(render func(D) ([]byte, error)) ([]byte, error) {
	j.mu.Lock()
	if j.state != StateReady {
		st := j.state
		j.mu.Unlock()
		return nil, fmt.Errorf("%w: handoff en estado %s", domain.ErrReportNotReady, st)
	}
	doc := j.doc
	j.mu.Unlock()

	out, err := render(doc)

	j.Reset()
	return out, err
}

// Reset abandona el ciclo y vuelve a Idle.
func (j *Job[D]) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	var zero D
	j.doc = zero
	j.state = StateIdle
}
