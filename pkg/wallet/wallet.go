package wallet

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the wallet backend cannot be reached
var ErrUnavailable = errors.New("wallet is unavailable")

// Kind is the reason for a balance adjustment
type Kind string

// Kind constants
const (
	KindBet    Kind = "bet"
	KindWin    Kind = "win"
	KindRefund Kind = "refund"
)

// Memo describes a balance adjustment
type Memo struct {
	Kind        Kind   `json:"type"`
	Game        string `json:"game"`
	RoundID     string `json:"roundId"`
	Description string `json:"description"`
}

// Wallet holds a single player's credits
type Wallet interface {
	// Balance returns the credits available to bet
	Balance(ctx context.Context) (int, error)

	// Adjust adds delta (negative to debit) to the balance
	// A debit larger than the balance returns playable.ErrInsufficientCredits
	Adjust(ctx context.Context, delta int, memo Memo) error
}

// Provider returns the wallet of a player
// token is the player's bearer token, passed through to remote ledgers
type Provider interface {
	Wallet(playerID, token string) Wallet
}
