package simulation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-server/pkg/room/gamefactory"
)

func TestRun(t *testing.T) {
	for _, key := range gamefactory.NewRegistry(gamefactory.DefaultSettings()).Keys() {
		key := key
		t.Run(key, func(t *testing.T) {
			a := assert.New(t)

			calls := 0
			report, err := Run(Config{Game: key, Rounds: 200, Seed: 42}, func() { calls++ })
			require.NoError(t, err)

			a.Equal(200, calls)
			a.Equal(200, report.Rounds)
			a.Equal(200, report.Wins+report.Losses+report.Pushes)
			a.True(report.Wagered > 0)
			a.InDelta(float64(report.Returned)/float64(report.Wagered), report.RTP, 0.0001)
			a.True(report.CI95Low <= report.RTP)
			a.True(report.CI95High >= report.RTP)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	a := assert.New(t)

	r1, err := Run(Config{Game: "blackjack", Rounds: 100, Seed: 7}, nil)
	a.NoError(err)
	r2, err := Run(Config{Game: "blackjack", Rounds: 100, Seed: 7}, nil)
	a.NoError(err)

	a.Equal(r1, r2)
}

func TestRun_Errors(t *testing.T) {
	a := assert.New(t)

	_, err := Run(Config{Game: "dice", Rounds: 0}, nil)
	a.EqualError(err, "rounds must be at least 1")

	_, err = Run(Config{Game: "roulette", Rounds: 1}, nil)
	a.ErrorIs(err, gamefactory.ErrUnknownGame)

	_, err = Run(Config{Game: "dice", Rounds: 1, Bet: -5}, nil)
	a.Error(err)
}

func TestReport_Render(t *testing.T) {
	a := assert.New(t)

	r := &Report{Game: "slots", Seed: 1, Rounds: 10, Wagered: 100, Returned: 90, RTP: 0.9}
	out := r.Render()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	a.Contains(lines[1], "Simulation Report")
	a.Contains(out, "| RTP")
	a.Contains(out, "90.0000%")

	// every row is the same width
	for _, line := range lines {
		a.Equal(len(lines[0]), len(line), line)
	}
}
