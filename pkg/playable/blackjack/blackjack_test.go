package blackjack

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/snapshot"
)

func stackedGame(t *testing.T, bet int, cards string) *Game {
	t.Helper()
	return &Game{
		options: DefaultOptions(),
		round:   dealStacked(t, bet, cards),
		logChan: make(chan []*playable.LogMessage, 256),
		logger:  logrus.StandardLogger(),
	}
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	game, err := NewGame(logrus.StandardLogger(), rng.NewSeeded(1), 10, 100, Options{})
	a.EqualError(err, "minimum bet must be > 0")
	a.Nil(game)

	game, err = NewGame(logrus.StandardLogger(), rng.NewSeeded(1), 10, 100, Options{MinBet: 5, MaxBet: 1})
	a.EqualError(err, "maximum bet must be >= the minimum bet")
	a.Nil(game)

	game, err = NewGame(logrus.StandardLogger(), rng.NewSeeded(1), 2000, 5000, DefaultOptions())
	a.EqualError(err, "bet must be between 1 and 1000")
	a.Nil(game)

	game, err = NewGame(logrus.StandardLogger(), rng.NewSeeded(1), 200, 100, DefaultOptions())
	a.ErrorIs(err, playable.ErrInsufficientCredits)
	a.Nil(game)

	game, err = NewGame(logrus.StandardLogger(), rng.NewSeeded(1), 10, 100, DefaultOptions())
	a.NoError(err)
	a.Equal("Blackjack", game.Name())
	a.Equal(10, game.Round().Bet)
	a.NotZero(len(game.LogChan()))

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	_, err = NewGame(logger, rng.NewSeeded(1), 10, 100, DefaultOptions())
	a.NoError(err)
	if entry := hook.LastEntry(); a.NotNil(entry) {
		a.Equal("deck shuffled", entry.Message)
		a.Len(entry.Data["deck"], 40, "sha1 of the shuffled order")
	}
}

func TestGame_Action(t *testing.T) {
	a := assert.New(t)
	game := stackedGame(t, 10, "10c,9d,10h,6d,2s")

	details, over := game.GetEndOfGameDetails()
	a.False(over)
	a.Nil(details)

	_, _, err := game.Action(&playable.PayloadIn{Action: "double"})
	a.EqualError(err, "invalid action: double")

	resp, update, err := game.Action(&playable.PayloadIn{Action: "stand", Context: "abc"})
	a.NoError(err)
	a.True(update)
	a.Equal(playable.OK("abc"), resp)

	details, over = game.GetEndOfGameDetails()
	a.True(over)
	a.Equal(10, details.Bet)
	a.Equal(20, details.Payout)
	a.Equal(playable.OutcomeWin, details.Outcome)

	_, _, err = game.Action(&playable.PayloadIn{Action: "hit"})
	a.ErrorIs(err, playable.ErrInvalidAction)

	msgs := <-game.LogChan()
	a.Equal("Player stands on 19", msgs[0].Message)
	a.Equal("Player wins 20", msgs[2].Message)
}

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)
	game := stackedGame(t, 10, "10c,9d,14h,6d,2s")

	resp, err := game.GetPlayerState()
	a.NoError(err)
	a.Equal("blackjack", resp.Value)

	state := resp.Data.(*GameState)
	a.Equal(PhasePlayerTurn, state.Phase)
	a.Equal(19, state.Player.Score)
	a.Equal(11, state.Dealer.Score, "only the up card is counted")
	a.True(state.Dealer.Cards[1].Hidden)
	a.Equal([]Action{ActionHit, ActionStand}, state.Actions)

	_, _, err = game.Action(&playable.PayloadIn{Action: "1"})
	a.NoError(err)

	resp, _ = game.GetPlayerState()
	state = resp.Data.(*GameState)
	a.Equal(PhaseGameOver, state.Phase)
	a.Equal(17, state.Dealer.Score, "dealer stands on soft 17")
	a.Equal(WinnerPlayer, state.Winner)
	a.Nil(state.Actions)

	snapshot.Match(t, state)
}

func TestActionFromString(t *testing.T) {
	a := assert.New(t)

	action, err := ActionFromString("HIT")
	a.NoError(err)
	a.Equal(ActionHit, action)

	action, err = ActionFromString("0")
	a.NoError(err)
	a.Equal(ActionHit, action)

	_, err = ActionFromString("5")
	a.Error(err)

	b, _ := ActionStand.MarshalJSON()
	a.JSONEq(`{"id":1,"name":"stand"}`, string(b))
}
