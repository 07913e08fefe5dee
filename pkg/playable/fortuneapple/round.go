package fortuneapple

import (
	"fmt"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// ApplesPerLevel is how many apples are offered on each level, one of them is rotten
const ApplesPerLevel = 4

// multipliers is the cash-out value, in percent of the bet, after clearing each level
var multipliers = []int{130, 170, 230, 300, 400, 530, 700, 940}

// MaxLevels is the tallest ladder that can be played
var MaxLevels = len(multipliers)

// Phase is the phase of an apple round
type Phase string

// Phase constants
const (
	PhasePicking   Phase = "picking"
	PhaseCashedOut Phase = "cashed-out"
	PhaseRotten    Phase = "rotten"
)

const (
	triggerPick    = "pick"
	triggerRot     = "bite a rotten apple"
	triggerCashOut = "cash out"
)

var phases = playable.PhaseTable[Phase]{
	PhasePicking: {triggerPick: PhasePicking, triggerRot: PhaseRotten, triggerCashOut: PhaseCashedOut},
}

// Round is a snapshot of a climb up the apple ladder
// Every transition returns a new Round and leaves the receiver untouched
type Round struct {
	Bet    int
	Levels int
	// Level is the number of levels cleared
	Level int
	Phase Phase
	// Picks are the apples chosen, one per level reached
	Picks []int
	// Payout is the gross amount returned to the player, stake included
	Payout int

	rotten int
}

// NewRound validates the bet and hides the rotten apple on the first level
func NewRound(bet, available, levels int, g rng.Generator) (Round, error) {
	if levels < 1 || levels > MaxLevels {
		return Round{}, fmt.Errorf("levels must be between 1 and %d", MaxLevels)
	}

	if err := playable.ValidateBet(bet, available); err != nil {
		return Round{}, err
	}

	return Round{
		Bet:    bet,
		Levels: levels,
		Phase:  PhasePicking,
		rotten: g.Intn(ApplesPerLevel),
	}, nil
}

// Multiplier returns the current cash-out value in percent of the bet
// Before the first level is cleared the bet is simply returned.
func (r Round) Multiplier() int {
	if r.Level == 0 {
		return 100
	}

	return multipliers[r.Level-1]
}

// NextMultiplier returns what clearing the next level would be worth, or 0 at the top of the ladder
func (r Round) NextMultiplier() int {
	if r.Level >= r.Levels {
		return 0
	}

	return multipliers[r.Level]
}

// CashOutValue is what the player would be paid by cashing out now
func (r Round) CashOutValue() int {
	return r.Bet * r.Multiplier() / 100
}

// Pick bites the apple at position i. A rotten apple loses the bet.
// Clearing the top level cashes out automatically.
func (r Round) Pick(i int, g rng.Generator) (Round, error) {
	if i < 0 || i >= ApplesPerLevel {
		return r, playable.NewUserError("pick an apple between 0 and %d", ApplesPerLevel-1)
	}

	next := r
	next.Picks = append(append([]int{}, r.Picks...), i)

	var err error
	if i == r.rotten {
		if next.Phase, err = phases.Fire(r.Phase, triggerRot); err != nil {
			return r, err
		}

		next.Payout = 0
		return next, nil
	}

	if next.Phase, err = phases.Fire(r.Phase, triggerPick); err != nil {
		return r, err
	}

	next.Level++
	if next.Level == next.Levels {
		return next.CashOut()
	}

	next.rotten = g.Intn(ApplesPerLevel)
	return next, nil
}

// CashOut ends the climb and pays the current multiplier
func (r Round) CashOut() (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerCashOut)
	if err != nil {
		return r, err
	}

	next := r
	next.Phase = phase
	next.Payout = r.CashOutValue()
	return next, nil
}

// IsOver returns true once the player has cashed out or bitten a rotten apple
func (r Round) IsOver() bool {
	return r.Phase != PhasePicking
}

// Rotten reveals the rotten apple on the current level once the round is over
func (r Round) Rotten() (int, bool) {
	if !r.IsOver() {
		return 0, false
	}

	return r.rotten, true
}
