package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"casino-server/pkg/playable"
)

// Ledger is a wallet backed by the external ledger service
// The player's bearer token is forwarded on every call.
type Ledger struct {
	client  *http.Client
	baseURL string
	userID  string
	token   string

	mu        sync.Mutex
	accountID string
}

// NewLedger returns a wallet for userID on the ledger at baseURL
func NewLedger(client *http.Client, baseURL, userID, token string) *Ledger {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	return &Ledger{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		token:   token,
	}
}

// amount accepts numbers and numeric strings, the ledger sends both
type amount float64

func (a *amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}

	*a = amount(f)
	return nil
}

type accountResponse struct {
	Account struct {
		ID json.RawMessage `json:"id"`
	} `json:"account"`
}

type balanceResponse struct {
	Balance struct {
		AvailableBalance *amount `json:"availableBalance"`
	} `json:"balance"`
}

type transactionRequest struct {
	AccountID   string `json:"accountId"`
	Amount      int    `json:"amount"`
	Direction   string `json:"direction"`
	Type        Kind   `json:"type"`
	Game        string `json:"game,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Description string `json:"description"`
}

// errorResponse is the body the ledger returns on failures
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (l *Ledger) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	res, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if res.StatusCode >= 300 {
		var e errorResponse
		_ = json.Unmarshal(data, &e)

		if res.StatusCode == http.StatusPaymentRequired || strings.EqualFold(e.Code, "INSUFFICIENT_FUNDS") {
			return fmt.Errorf("%w: %s", playable.ErrInsufficientCredits, e.Message)
		}

		logrus.WithFields(logrus.Fields{
			"path":   path,
			"status": res.StatusCode,
			"code":   e.Code,
		}).Warn("ledger request failed")

		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(data, out)
}

// account looks up, and caches, the player's account id
func (l *Ledger) account(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.accountID != "" {
		return l.accountID, nil
	}

	var res accountResponse
	if err := l.post(ctx, "/find/account", map[string]string{"userId": l.userID}, &res); err != nil {
		return "", err
	}

	id := strings.Trim(string(res.Account.ID), `"`)
	if id == "" || id == "null" {
		return "", errors.New("account id not found in ledger response")
	}

	l.accountID = id
	return id, nil
}

// Balance returns the available balance, floored to whole credits
func (l *Ledger) Balance(ctx context.Context) (int, error) {
	accountID, err := l.account(ctx)
	if err != nil {
		return 0, err
	}

	var res balanceResponse
	if err := l.post(ctx, "/find/balance", map[string]string{"accountId": accountID}, &res); err != nil {
		return 0, err
	}

	if res.Balance.AvailableBalance == nil {
		return 0, errors.New("available balance not found in ledger response")
	}

	return int(math.Floor(float64(*res.Balance.AvailableBalance))), nil
}

// Adjust records a credit or debit with the ledger
func (l *Ledger) Adjust(ctx context.Context, delta int, memo Memo) error {
	if delta == 0 {
		return nil
	}

	accountID, err := l.account(ctx)
	if err != nil {
		return err
	}

	direction := "credit"
	amt := delta
	if delta < 0 {
		direction = "debit"
		amt = -delta
	}

	return l.post(ctx, "/transaction", transactionRequest{
		AccountID:   accountID,
		Amount:      amt,
		Direction:   direction,
		Type:        memo.Kind,
		Game:        memo.Game,
		Reference:   memo.RoundID,
		Description: memo.Description,
	}, nil)
}

// LedgerProvider hands out Ledger wallets that share one HTTP client
type LedgerProvider struct {
	Client  *http.Client
	BaseURL string
}

// Wallet returns a ledger wallet acting with the player's token
func (p LedgerProvider) Wallet(playerID, token string) Wallet {
	return NewLedger(p.Client, p.BaseURL, playerID, token)
}
