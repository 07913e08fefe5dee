package room

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-server/internal/rng"
	"casino-server/pkg/events"
	"casino-server/pkg/history"
	"casino-server/pkg/playable"
	"casino-server/pkg/room/gamefactory"
	"casino-server/pkg/wallet"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.RoundSettled
}

func (r *recordingPublisher) Publish(_ context.Context, e events.RoundSettled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

// flakyWallet fails the next credit
type flakyWallet struct {
	*wallet.Memory
	failCredit bool
}

func (f *flakyWallet) Adjust(ctx context.Context, delta int, memo wallet.Memo) error {
	if delta > 0 && memo.Kind == wallet.KindWin && f.failCredit {
		f.failCredit = false
		return wallet.ErrUnavailable
	}

	return f.Memory.Adjust(ctx, delta, memo)
}

// stuckPublisher blocks until the publish deadline passes
type stuckPublisher struct {
	err chan error
}

func (s *stuckPublisher) Publish(ctx context.Context, _ events.RoundSettled) error {
	<-ctx.Done()
	s.err <- ctx.Err()
	return ctx.Err()
}

func (s *stuckPublisher) Close() error { return nil }

type failingFactory struct{}

func (failingFactory) CreateGame(logrus.FieldLogger, rng.Generator, int, int, playable.AdditionalData) (playable.Playable, error) {
	return nil, errors.New("the table is broken")
}

func (failingFactory) Details(bet int, _ playable.AdditionalData) (string, int, error) {
	return "Broken", bet, nil
}

type fixture struct {
	pitBoss   *PitBoss
	history   *history.Memory
	publisher *recordingPublisher
}

// newFixture returns a pit boss whose rooms roll sixes and deal an unshuffled deck
func newFixture(t *testing.T, values ...int) *fixture {
	t.Helper()

	if len(values) == 0 {
		values = []int{5}
	}

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	games := gamefactory.NewRegistry(gamefactory.DefaultSettings())
	games["broken"] = failingFactory{}

	f := &fixture{
		history:   history.NewMemory(),
		publisher: &recordingPublisher{},
	}

	f.pitBoss, err = NewPitBoss(Options{
		Games:     games,
		History:   f.history,
		Publisher: f.publisher,
		Node:      node,
		RNG: func() rng.Generator {
			return &rng.Sequence{Values: values}
		},
		Logger: logrus.StandardLogger(),
	})
	require.NoError(t, err)

	return f
}

func TestRoom_StartDice(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	w := wallet.NewMemory(100)
	r := f.pitBoss.Room("p1", w)

	res, err := r.Start(ctx, "dice", 10, playable.AdditionalData{"betType": "high"})
	a.NoError(err)
	if a.NotNil(res) {
		a.Equal("game", res.Key)
		a.Equal("dice", res.Value)
	}

	balance, _ := w.Balance(ctx)
	a.Equal(110, balance)

	txs := w.Transactions()
	if a.Len(txs, 2) {
		a.Equal(wallet.KindBet, txs[0].Memo.Kind)
		a.Equal(-10, txs[0].Delta)
		a.Equal(wallet.KindWin, txs[1].Memo.Kind)
		a.Equal(20, txs[1].Delta)
		a.Equal(txs[0].Memo.RoundID, txs[1].Memo.RoundID)
	}

	entries, err := f.history.List(ctx, "p1", 0, 10)
	a.NoError(err)
	if a.Len(entries, 1) {
		a.Equal("dice", entries[0].Game)
		a.Equal(10, entries[0].Bet)
		a.Equal(20, entries[0].Payout)
		a.Equal(playable.OutcomeWin, entries[0].Outcome)
	}

	if a.Len(f.publisher.events, 1) {
		e := f.publisher.events[0]
		a.Equal("p1", e.PlayerID)
		a.Equal(110, e.Balance)
		a.Equal(entries[0].ID, e.RoundID)
	}

	// a finished round does not block the next bet
	_, err = r.Start(ctx, "dice", 10, playable.AdditionalData{"betType": "low"})
	a.NoError(err)
	balance, _ = w.Balance(ctx)
	a.Equal(100, balance)

	entries, _ = f.history.List(ctx, "p1", 0, 10)
	a.Len(entries, 2)
}

func TestRoom_StartValidation(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	w := wallet.NewMemory(50)
	r := f.pitBoss.Room("p1", w)

	_, err := r.Start(ctx, "dice", 51, playable.AdditionalData{"betType": "high"})
	a.ErrorIs(err, playable.ErrInsufficientCredits)

	_, err = r.Start(ctx, "dice", 0, playable.AdditionalData{"betType": "high"})
	a.ErrorIs(err, playable.ErrInvalidBet)

	_, err = r.Start(ctx, "dice", 10, playable.AdditionalData{})
	a.True(playable.IsUserError(err))

	_, err = r.Start(ctx, "roulette", 10, nil)
	a.EqualError(err, "no game with name: roulette")

	a.Empty(w.Transactions(), "nothing was debited")
	a.Empty(f.publisher.events)
}

func TestRoom_StartRefundsOnFailure(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	w := wallet.NewMemory(50)
	r := f.pitBoss.Room("p1", w)

	_, err := r.Start(ctx, "broken", 20, nil)
	a.EqualError(err, "the table is broken")

	balance, _ := w.Balance(ctx)
	a.Equal(50, balance)

	txs := w.Transactions()
	if a.Len(txs, 2) {
		a.Equal(wallet.KindBet, txs[0].Memo.Kind)
		a.Equal(wallet.KindRefund, txs[1].Memo.Kind)
		a.Equal(20, txs[1].Delta)
	}

	entries, _ := f.history.List(ctx, "p1", 0, 10)
	a.Empty(entries)
}

func TestRoom_Blackjack(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t, 0)

	w := wallet.NewMemory(100)
	r := f.pitBoss.Room("p1", w)

	_, err := r.Action(ctx, "blackjack", &playable.PayloadIn{Action: "stand"})
	a.Equal(ErrNoRound, err)

	_, err = r.Start(ctx, "blackjack", 10, nil)
	a.NoError(err)
	a.Equal([]string{"blackjack"}, r.InProgress())

	balance, _ := w.Balance(ctx)
	a.Equal(90, balance)

	_, err = r.Start(ctx, "blackjack", 10, nil)
	a.Equal(ErrRoundInProgress, err)

	_, err = r.Action(ctx, "blackjack", &playable.PayloadIn{Action: "double"})
	a.True(playable.IsUserError(err))

	res, err := r.Action(ctx, "blackjack", &playable.PayloadIn{Action: "stand", Context: "abc"})
	a.NoError(err)
	if a.NotNil(res) {
		a.Equal("abc", res.Context)
	}
	a.Empty(r.InProgress())

	entries, _ := f.history.List(ctx, "p1", 0, 10)
	if a.Len(entries, 1) {
		balance, _ = w.Balance(ctx)
		a.Equal(100-entries[0].Bet+entries[0].Payout, balance)
	}

	_, err = r.Action(ctx, "blackjack", &playable.PayloadIn{Action: "hit"})
	a.Equal(ErrNoRound, err)

	state, err := r.State("blackjack")
	a.NoError(err)
	a.Equal("blackjack", state.Value)

	_, err = r.State("slots")
	a.Equal(ErrNoRound, err)
}

func TestRoom_SettlementRetry(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	w := &flakyWallet{Memory: wallet.NewMemory(100), failCredit: true}
	r := f.pitBoss.Room("p1", w)

	_, err := r.Start(ctx, "dice", 10, playable.AdditionalData{"betType": "high"})
	a.ErrorIs(err, wallet.ErrUnavailable)

	balance, _ := w.Balance(ctx)
	a.Equal(90, balance)
	a.Empty(f.publisher.events)

	// the next call credits the stuck payout exactly once
	_, err = r.Action(ctx, "dice", &playable.PayloadIn{Action: "roll"})
	a.Equal(ErrNoRound, err)

	balance, _ = w.Balance(ctx)
	a.Equal(110, balance)
	a.Len(f.publisher.events, 1)

	_, err = r.Action(ctx, "dice", &playable.PayloadIn{Action: "roll"})
	a.Equal(ErrNoRound, err)

	balance, _ = w.Balance(ctx)
	a.Equal(110, balance)
	a.Len(f.publisher.events, 1)
}

func TestRoom_Subscribe(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	r := f.pitBoss.Room("p1", wallet.NewMemory(100))
	c := NewClient(nil, "p1")
	r.Subscribe(c)

	_, err := r.Start(ctx, "slots", 0, nil)
	a.NoError(err)

	keys := make([]string, 0)
	for len(c.SendChan()) > 0 {
		msg := <-c.SendChan()
		res, ok := msg.(*playable.Response)
		if a.True(ok) {
			keys = append(keys, res.Key)
		}
	}

	a.Contains(keys, "log")
	a.Contains(keys, "roundSettled")
	a.Contains(keys, "game")
	a.Len(r.LogMessages(), 1)

	r.Unsubscribe(c)
	_, err = r.Start(ctx, "slots", 0, nil)
	a.NoError(err)
	a.Equal(0, len(c.SendChan()))
}

func TestRoom_ReceivedMessage(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	f := newFixture(t)

	w := wallet.NewMemory(100)
	r := f.pitBoss.Room("p1", w)
	c := NewClient(nil, "p1")

	r.ReceivedMessage(ctx, c, &playable.PayloadIn{
		Action:         "bet",
		Subject:        "dice",
		AdditionalData: playable.AdditionalData{"bet": float64(10), "betType": "high"},
		Context:        "ctx-1",
	})

	res := (<-c.SendChan()).(*playable.Response)
	a.Equal("game", res.Key)
	a.Equal("ctx-1", res.Context)

	r.ReceivedMessage(ctx, c, &playable.PayloadIn{
		Action:         "bet",
		Subject:        "dice",
		AdditionalData: playable.AdditionalData{"bet": 10.5, "betType": "high"},
		Context:        "ctx-2",
	})

	res = (<-c.SendChan()).(*playable.Response)
	a.Equal("error", res.Key)
	a.Equal(playable.ErrInvalidBet.Error(), res.Value)
	a.Equal("ctx-2", res.Context)

	r.ReceivedMessage(ctx, c, &playable.PayloadIn{Action: "state", Subject: "dice", Context: "ctx-3"})
	res = (<-c.SendChan()).(*playable.Response)
	a.Equal("game", res.Key)
	a.Equal("ctx-3", res.Context)
}

func TestRoom_PublishTimeout(t *testing.T) {
	a := assert.New(t)

	publisher := &stuckPublisher{err: make(chan error, 1)}
	p, err := NewPitBoss(Options{
		Publisher:      publisher,
		RNG:            func() rng.Generator { return &rng.Sequence{Values: []int{5}} },
		PublishTimeout: 20 * time.Millisecond,
	})
	require.NoError(t, err)

	w := wallet.NewMemory(100)
	r := p.Room("p1", w)

	_, err = r.Start(context.Background(), "dice", 10, playable.AdditionalData{"betType": "high"})
	a.NoError(err, "a stuck publisher does not fail the round")
	a.ErrorIs(<-publisher.err, context.DeadlineExceeded)

	balance, _ := w.Balance(context.Background())
	a.Equal(110, balance)

	defaults, err := NewPitBoss(Options{})
	a.NoError(err)
	a.Equal(DefaultPublishTimeout, defaults.publishTimeout)
}

func Test_newErrorResponse(t *testing.T) {
	a := assert.New(t)

	res := newErrorResponse("ctx", playable.UserError("bad bet"))
	a.Equal("error", res.Key)
	a.Equal("bad bet", res.Value)

	res = newErrorResponse("ctx", errors.New("pq: connection refused"))
	a.Equal("something went wrong", res.Value)
}
