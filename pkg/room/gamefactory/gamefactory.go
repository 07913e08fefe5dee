package gamefactory

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"casino-server/internal/config"
	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/blackjack"
	"casino-server/pkg/playable/dice"
	"casino-server/pkg/playable/fivecarddraw"
	"casino-server/pkg/playable/fortuneapple"
	"casino-server/pkg/playable/slots"
)

// ErrUnknownGame is returned when no factory is registered for a key
var ErrUnknownGame = playable.UserError("no game with name")

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	// CreateGame starts a round for bet credits. available is the balance before the bet was taken.
	CreateGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, additionalData playable.AdditionalData) (playable.Playable, error)

	// Details validates the options and resolves the stake
	// A zero bet is replaced with the game's default stake when it has one
	Details(bet int, additionalData playable.AdditionalData) (name string, stake int, err error)
}

// Settings configure the factories
type Settings struct {
	Blackjack     blackjack.Options
	SlotsSpinCost int
	AppleLevels   int
	Fortunes      fortuneapple.FortuneTeller
}

// DefaultSettings returns the house defaults
func DefaultSettings() Settings {
	return Settings{
		Blackjack:     blackjack.DefaultOptions(),
		SlotsSpinCost: slots.DefaultSpinCost,
		AppleLevels:   fortuneapple.DefaultLevels,
		Fortunes:      fortuneapple.DefaultFortunes,
	}
}

// SettingsFromConfig applies the game limits from the config to the house defaults
func SettingsFromConfig(cfg config.Config) Settings {
	s := DefaultSettings()
	s.Blackjack = blackjack.Options{MinBet: cfg.Games.MinBet, MaxBet: cfg.Games.MaxBet}
	s.SlotsSpinCost = cfg.Games.SlotsSpinCost
	s.AppleLevels = cfg.Games.AppleLevels

	return s
}

// Registry maps game keys to their factory
type Registry map[string]GameFactory

// NewRegistry returns a factory for every game the house offers
func NewRegistry(s Settings) Registry {
	return Registry{
		blackjack.Key:                 blackjackFactory{options: s.Blackjack},
		fivecarddraw.KeyJacksOrBetter: fiveCardDrawFactory{variant: fivecarddraw.VariantJacksOrBetter},
		fivecarddraw.KeyVersusDealer:  fiveCardDrawFactory{variant: fivecarddraw.VariantVersusDealer},
		dice.Key:                      diceFactory{},
		slots.Key:                     slotsFactory{spinCost: s.SlotsSpinCost},
		fortuneapple.Key:              fortuneAppleFactory{levels: s.AppleLevels, teller: s.Fortunes},
	}
}

var factories = NewRegistry(DefaultSettings())

// Get returns a factory by the given name
func (r Registry) Get(name string) (GameFactory, error) {
	factory, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, name)
	}

	return factory, nil
}

// Keys returns the game keys in alphabetical order
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// Get returns a factory from the default registry
func Get(name string) (GameFactory, error) {
	return factories.Get(name)
}

// optionalInt reads an integer option, reporting whether it was provided
// A provided value that is not a whole number is an error.
func optionalInt(data playable.AdditionalData, key string) (int, bool, error) {
	if _, ok := data[key]; !ok {
		return 0, false, nil
	}

	n, ok := data.GetInt(key)
	if !ok {
		return 0, false, playable.NewUserError("%s must be a whole number", key)
	}

	return n, true, nil
}

func requireBet(bet int) error {
	if bet <= 0 {
		return fmt.Errorf("%w: bet must be greater than zero", playable.ErrInvalidBet)
	}

	return nil
}
