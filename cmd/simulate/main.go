package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"casino-server/internal/config"
	"casino-server/pkg/room/gamefactory"
	"casino-server/pkg/simulation"
)

var game = flag.String("game", "blackjack", "the game key to simulate")
var rounds = flag.Int("rounds", 100000, "number of rounds to play")
var seed = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
var bet = flag.Int("bet", simulation.DefaultBet, "stake per round")
var asJSON = flag.Bool("json", false, "print the report as JSON")

func main() {
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	settings := gamefactory.SettingsFromConfig(config.Instance())

	bar := pb.StartNew(*rounds)
	if *asJSON || !term.IsTerminal(int(os.Stderr.Fd())) {
		bar.SetWriter(io.Discard)
	}

	report, err := simulation.Run(simulation.Config{
		Game:     *game,
		Rounds:   *rounds,
		Seed:     *seed,
		Bet:      *bet,
		Settings: &settings,
	}, func() { bar.Increment() })
	bar.Finish()

	if err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logrus.WithError(err).Fatal("could not encode report")
		}
		return
	}

	fmt.Print(report.Render())
}
