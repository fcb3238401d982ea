package usecase

import (
	"context"

	"github.com/rs/zerolog"
)

// saga collects undo actions for the steps of a multi-statement create.
// The store gives this layer no cross-statement transactions, so when a
// later step fails the completed steps are compensated in reverse order.
type saga struct {
	log   zerolog.Logger
	steps []sagaStep
}

type sagaStep struct {
	name string
	undo func(context.Context) error
}

func newSaga(log zerolog.Logger) *saga {
	return &saga{log: log}
}

// record registers the undo action for a step that just succeeded.
func (s *saga) record(name string, undo func(context.Context) error) {
	s.steps = append(s.steps, sagaStep{name: name, undo: undo})
}

// compensate runs every recorded undo in reverse order. Undo failures are
// logged and do not stop the remaining undos; the rows they leave behind
// need operator cleanup, which is why each failure is logged with its step
// name.
func (s *saga) compensate(ctx context.Context) {
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.undo(ctx); err != nil {
			s.log.Error().Err(err).Str("step", step.name).Msg("compensating rollback failed")
		}
	}

	s.steps = nil
}
