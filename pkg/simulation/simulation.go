package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/room/gamefactory"
)

// maxActions guards against a strategy that never finishes a round
const maxActions = 100

// DefaultBet is the stake used when a Config does not name one
const DefaultBet = 10

// ErrStuck is returned when a round does not finish within maxActions
var ErrStuck = errors.New("round did not finish")

// Config describes a simulation run
type Config struct {
	Game   string
	Rounds int
	Seed   int64
	Bet    int

	// Settings override the house defaults when set
	Settings *gamefactory.Settings
}

// Run plays rounds of the game with its fixed strategy
// progress, when not nil, is called once per finished round.
func Run(cfg Config, progress func()) (*Report, error) {
	if cfg.Rounds < 1 {
		return nil, errors.New("rounds must be at least 1")
	}

	if cfg.Bet == 0 {
		cfg.Bet = DefaultBet
	}

	settings := gamefactory.DefaultSettings()
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}

	factory, err := gamefactory.NewRegistry(settings).Get(cfg.Game)
	if err != nil {
		return nil, err
	}

	strategy, ok := Strategies()[cfg.Game]
	if !ok {
		return nil, fmt.Errorf("no strategy for %s", cfg.Game)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	g := rng.NewSeeded(cfg.Seed)
	returns := make([]float64, 0, cfg.Rounds)
	report := &Report{Game: cfg.Game, Seed: cfg.Seed}

	for i := 0; i < cfg.Rounds; i++ {
		data := strategy.Options(i)
		_, stake, err := factory.Details(cfg.Bet, data)
		if err != nil {
			return nil, err
		}

		game, err := factory.CreateGame(logger, g, stake, math.MaxInt32, data)
		if err != nil {
			return nil, err
		}

		details, err := play(game, strategy)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}

		report.add(details)
		returns = append(returns, float64(details.Payout)/float64(details.Bet))

		if progress != nil {
			progress()
		}
	}

	report.finish(returns)
	return report, nil
}

func play(game playable.Playable, strategy Strategy) (*playable.GameOverDetails, error) {
	for i := 0; i < maxActions; i++ {
		// nobody reads the logs, keep the buffers from filling up
		drain(game)

		if details, isOver := game.GetEndOfGameDetails(); isOver {
			return details, nil
		}

		action := strategy.Next(game)
		if action == nil {
			break
		}

		if action.AdditionalData == nil {
			action.AdditionalData = playable.AdditionalData{}
		}

		if _, _, err := game.Action(action); err != nil {
			return nil, err
		}
	}

	return nil, ErrStuck
}

func drain(game playable.Playable) {
	for {
		select {
		case <-game.LogChan():
		default:
			return
		}
	}
}

// Report summarizes a simulation
// RTP is returned over wagered; StdDev is the deviation of the per-round return ratio.
type Report struct {
	Game     string  `json:"game"`
	Seed     int64   `json:"seed"`
	Rounds   int     `json:"rounds"`
	Wagered  int64   `json:"wagered"`
	Returned int64   `json:"returned"`
	RTP      float64 `json:"rtp"`
	StdDev   float64 `json:"stdDev"`
	CI95Low  float64 `json:"ci95Low"`
	CI95High float64 `json:"ci95High"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Pushes   int     `json:"pushes"`
}

func (r *Report) add(details *playable.GameOverDetails) {
	r.Rounds++
	r.Wagered += int64(details.Bet)
	r.Returned += int64(details.Payout)

	switch details.Outcome {
	case playable.OutcomeWin:
		r.Wins++
	case playable.OutcomeLoss:
		r.Losses++
	case playable.OutcomePush:
		r.Pushes++
	}
}

func (r *Report) finish(returns []float64) {
	if r.Wagered > 0 {
		r.RTP = float64(r.Returned) / float64(r.Wagered)
	}

	if len(returns) > 1 {
		r.StdDev = stat.StdDev(returns, nil)
	}

	z := distuv.UnitNormal.Quantile(0.975)
	margin := z * r.StdDev / math.Sqrt(float64(len(returns)))
	r.CI95Low = r.RTP - margin
	r.CI95High = r.RTP + margin
}
