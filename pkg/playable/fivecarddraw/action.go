package fivecarddraw

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"casino-server/pkg/playable"
	"casino-server/pkg/poker"
)

// Action is an action the player can take
type Action int

// Action constants
const (
	ActionDraw Action = iota
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
	if a == ActionDraw {
		return "draw"
	}

	panic(fmt.Sprintf("invalid action: %d", a))
}

// ActionFromString returns an action from its name or its integer id
func ActionFromString(action string) (Action, error) {
	if strings.EqualFold(strings.TrimSpace(action), "draw") {
		return ActionDraw, nil
	}

	if actionInt, err := strconv.Atoi(action); err == nil && actionInt == int(ActionDraw) {
		return ActionDraw, nil
	}

	return -1, playable.NewUserError("invalid action: %s", action)
}

// holdsFromData reads the held positions from "holds", a list of card indexes
func holdsFromData(data playable.AdditionalData) ([poker.HandSize]bool, error) {
	var holds [poker.HandSize]bool
	if _, ok := data["holds"]; !ok {
		return holds, nil
	}

	positions, ok := data.GetIntSlice("holds")
	if !ok {
		return holds, playable.UserError("holds must be a list of card positions")
	}

	for _, pos := range positions {
		if pos < 0 || pos >= poker.HandSize {
			return holds, playable.NewUserError("invalid card position: %d", pos)
		}

		holds[pos] = true
	}

	return holds, nil
}

func (g *Game) getActions() []Action {
	if g.round.Phase == PhaseDraw {
		return []Action{ActionDraw}
	}

	return nil
}
