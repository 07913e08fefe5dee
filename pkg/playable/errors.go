package playable

import (
	"errors"
	"fmt"
)

// ErrInvalidBet is returned when a bet is missing, fractional, or not positive
var ErrInvalidBet = errors.New("bet must be a positive whole number of credits")

// ErrInsufficientCredits is returned when a bet exceeds the available balance
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrInvalidAction is returned when an action is not allowed in the current phase
var ErrInvalidAction = errors.New("that action is not allowed right now")

// UserError is an error that is safe to show to the player
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// NewUserError returns a formatted UserError
func NewUserError(format string, a ...interface{}) UserError {
	return UserError(fmt.Sprintf(format, a...))
}

// ValidateBet checks a stake against the available balance
func ValidateBet(bet, available int) error {
	if bet <= 0 {
		return ErrInvalidBet
	}

	if bet > available {
		return fmt.Errorf("%w: bet of %d exceeds balance of %d", ErrInsufficientCredits, bet, available)
	}

	return nil
}

// IsUserError returns true if the error is caused by the player's input rather than the system
func IsUserError(err error) bool {
	var u UserError
	return errors.As(err, &u) ||
		errors.Is(err, ErrInvalidBet) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrInsufficientCredits)
}
