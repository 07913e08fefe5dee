package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"casino-server/pkg/playable"
)

// Transaction is an adjustment applied to a Memory wallet
type Transaction struct {
	Delta   int       `json:"delta"`
	Balance int       `json:"balance"`
	Memo    Memo      `json:"memo"`
	Created time.Time `json:"created"`
}

// Memory is an in-process wallet, used for development, simulations, and tests
type Memory struct {
	mu           sync.Mutex
	balance      int
	transactions []Transaction
}

// NewMemory returns a wallet holding balance credits
func NewMemory(balance int) *Memory {
	return &Memory{balance: balance}
}

// Balance returns the current balance
func (m *Memory) Balance(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.balance, nil
}

// Adjust applies delta to the balance
func (m *Memory) Adjust(_ context.Context, delta int, memo Memo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balance+delta < 0 {
		return fmt.Errorf("%w: cannot debit %d from %d", playable.ErrInsufficientCredits, -delta, m.balance)
	}

	m.balance += delta
	m.transactions = append(m.transactions, Transaction{
		Delta:   delta,
		Balance: m.balance,
		Memo:    memo,
		Created: time.Now(),
	})

	return nil
}

// Transactions returns a copy of every adjustment, oldest first
func (m *Memory) Transactions() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Transaction{}, m.transactions...)
}

// MemoryBank hands out a Memory wallet per player, creating it with the starting balance
type MemoryBank struct {
	mu              sync.Mutex
	startingBalance int
	wallets         map[string]*Memory
}

// NewMemoryBank returns a bank that opens new wallets with startingBalance credits
func NewMemoryBank(startingBalance int) *MemoryBank {
	return &MemoryBank{
		startingBalance: startingBalance,
		wallets:         make(map[string]*Memory),
	}
}

// Wallet returns the player's wallet. The token is ignored.
func (b *MemoryBank) Wallet(playerID, _ string) Wallet {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, ok := b.wallets[playerID]
	if !ok {
		w = NewMemory(b.startingBalance)
		b.wallets[playerID] = w
	}

	return w
}
