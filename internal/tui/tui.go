// Package tui is a terminal front end that plays a room directly
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"casino-server/pkg/playable"
	"casino-server/pkg/playable/blackjack"
	"casino-server/pkg/playable/fivecarddraw"
	"casino-server/pkg/room"
)

const quit = "Quit"

// Games are the game keys offered at the terminal
var Games = []string{blackjack.Key, fivecarddraw.KeyJacksOrBetter, fivecarddraw.KeyVersusDealer}

// Client plays a single player's room
type Client struct {
	room   *room.Room
	sub    *room.Client
	prompt Prompter
	out    io.Writer
}

// New returns a terminal client for the room
func New(rm *room.Room, prompt Prompter, out io.Writer) *Client {
	return &Client{
		room:   rm,
		sub:    room.NewClient(nil, rm.PlayerID()),
		prompt: prompt,
		out:    out,
	}
}

// Run loops over game selection until the player quits
func (c *Client) Run(ctx context.Context) error {
	c.room.Subscribe(c.sub)
	defer c.room.Unsubscribe(c.sub)
	c.discardPushes()

	lastBet := "10"
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		balance, err := c.room.Balance(ctx)
		if err != nil {
			return err
		}
		c.println(pterm.Info.Sprintf("Balance: %d", balance))

		key, err := c.prompt.Select("Pick a game", append(append([]string{}, Games...), quit))
		if err != nil {
			return err
		}

		if key == quit {
			return nil
		}

		answer, err := c.prompt.Input("Bet", lastBet)
		if err != nil {
			return err
		}

		bet, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			c.println(pterm.Error.Sprint("the bet must be a whole number"))
			continue
		}
		lastBet = answer

		if _, err := c.room.Start(ctx, key, bet, nil); err != nil {
			c.println(pterm.Error.Sprint(err.Error()))
			continue
		}

		if err := c.playRound(ctx, key); err != nil {
			return err
		}
	}
}

func (c *Client) playRound(ctx context.Context, key string) error {
	for {
		res, err := c.room.State(key)
		if err != nil {
			return err
		}

		table, over, err := render(res)
		if err != nil {
			return err
		}
		c.println(table)
		c.showPushes()

		if over {
			return nil
		}

		payload, err := c.nextAction(res)
		if err != nil {
			return err
		}

		if _, err := c.room.Action(ctx, key, payload); err != nil {
			c.println(pterm.Error.Sprint(err.Error()))
		}
	}
}

func render(res *playable.Response) (string, bool, error) {
	switch state := res.Data.(type) {
	case *blackjack.GameState:
		table, over := renderBlackjack(state)
		return table, over, nil
	case *fivecarddraw.GameState:
		table, over := renderDraw(state)
		return table, over, nil
	}

	return "", false, fmt.Errorf("cannot display %T", res.Data)
}

func (c *Client) nextAction(res *playable.Response) (*playable.PayloadIn, error) {
	switch state := res.Data.(type) {
	case *blackjack.GameState:
		options := make([]string, len(state.Actions))
		for i, a := range state.Actions {
			options[i] = a.String()
		}

		action, err := c.prompt.Select("Your move", options)
		if err != nil {
			return nil, err
		}

		return &playable.PayloadIn{Action: action}, nil
	case *fivecarddraw.GameState:
		options := make([]string, len(state.Player))
		for i, card := range state.Player {
			options[i] = fmt.Sprintf("%d: %s", i+1, cardsString([]playable.CardView{card}))
		}

		held, err := c.prompt.MultiSelect("Cards to hold", options)
		if err != nil {
			return nil, err
		}

		holds := make([]int, 0, len(held))
		for _, h := range held {
			for i, option := range options {
				if h == option {
					holds = append(holds, i)
				}
			}
		}

		return &playable.PayloadIn{
			Action:         fivecarddraw.ActionDraw.String(),
			AdditionalData: playable.AdditionalData{"holds": holds},
		}, nil
	}

	return nil, errors.New("no moves for this game")
}

// showPushes prints the log messages and settlements the room sent
func (c *Client) showPushes() {
	for {
		select {
		case msg := <-c.sub.SendChan():
			res, ok := msg.(*playable.Response)
			if !ok {
				continue
			}

			switch data := res.Data.(type) {
			case room.LogResponse:
				for _, m := range data.Messages {
					c.println(pterm.Gray("  " + m.Message))
				}
			case room.RoundSettled:
				c.println(pterm.Success.Sprintf("%s settled, balance %d", data.Game, data.Balance))
			}
		default:
			return
		}
	}
}

func (c *Client) discardPushes() {
	for {
		select {
		case <-c.sub.SendChan():
		default:
			return
		}
	}
}

func (c *Client) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
