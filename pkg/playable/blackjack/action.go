package blackjack

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"casino-server/pkg/playable"
)

// Action is an action the player can take during their turn
type Action int

// Action constants
const (
	ActionHit Action = iota
	ActionStand
)

// MarshalJSON encodes the JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(a),
		Name: a.String(),
	})
}

func (a Action) String() string {
	switch a {
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	}

	panic(fmt.Sprintf("invalid action: %d", a))
}

// ActionFromString returns an action from its name or its integer id
func ActionFromString(action string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "hit":
		return ActionHit, nil
	case "stand":
		return ActionStand, nil
	}

	actionInt, err := strconv.Atoi(action)
	if err == nil && actionInt >= 0 && actionInt <= int(ActionStand) {
		return Action(actionInt), nil
	}

	return -1, playable.NewUserError("invalid action: %s", action)
}

func (g *Game) getActions() []Action {
	if g.round.Phase == PhasePlayerTurn {
		return []Action{ActionHit, ActionStand}
	}

	return nil
}
