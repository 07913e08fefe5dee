package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"casino-server/internal/config"
	"casino-server/internal/tui"
	"casino-server/pkg/room"
	"casino-server/pkg/room/gamefactory"
	"casino-server/pkg/wallet"
)

var player = flag.String("player", "guest", "the player id to sit down as")

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		logrus.Fatal("casino needs an interactive terminal")
	}

	cfg := config.Instance()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	pitBoss, err := room.NewPitBoss(room.Options{
		Games:  gamefactory.NewRegistry(gamefactory.SettingsFromConfig(cfg)),
		Logger: logger,
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not create pit boss")
	}
	defer pitBoss.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Casino", pterm.FgLightGreen.ToStyle()),
	).Render()

	rm := pitBoss.Room(*player, wallet.NewMemory(cfg.Wallet.StartingBalance))
	if err := tui.New(rm, tui.Interactive{}, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Fatal("casino closed")
	}

	pterm.Info.Println("Thanks for playing")
}
