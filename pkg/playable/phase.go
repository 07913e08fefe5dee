package playable

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"
)

// PhaseTable lists, for each phase, the triggers it accepts and the phase each trigger leads to.
// A trigger that leads back to the same phase is a reentry.
type PhaseTable[P ~string] map[P]map[string]P

// Fire applies trigger to current and returns the resulting phase
// An ErrInvalidAction is returned if current does not accept the trigger.
func (t PhaseTable[P]) Fire(current P, trigger string) (P, error) {
	phase := current
	sm := stateless.NewStateMachineWithExternalStorage(
		func(_ context.Context) (stateless.State, error) {
			return phase, nil
		},
		func(_ context.Context, s stateless.State) error {
			phase = s.(P)
			return nil
		},
		stateless.FiringImmediate,
	)

	for from, triggers := range t {
		cfg := sm.Configure(from)
		for trig, to := range triggers {
			if to == from {
				cfg.PermitReentry(trig)
			} else {
				cfg.Permit(trig, to)
			}
		}
	}

	if err := sm.Fire(trigger); err != nil {
		return current, fmt.Errorf("%w: cannot %s during %s", ErrInvalidAction, trigger, current)
	}

	return phase, nil
}

// Permits returns true if current accepts the trigger
func (t PhaseTable[P]) Permits(current P, trigger string) bool {
	_, ok := t[current][trigger]
	return ok
}
