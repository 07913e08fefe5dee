package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-server/pkg/playable"
)

func TestRoundSettled_JSON(t *testing.T) {
	b, err := json.Marshal(RoundSettled{
		RoundID:  123,
		PlayerID: "p1",
		Game:     "blackjack",
		Bet:      10,
		Payout:   25,
		Outcome:  playable.OutcomeWin,
		Balance:  1015,
	})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"roundId":"123","playerId":"p1","game":"blackjack","bet":10,"payout":25,"outcome":"win","balance":1015}`, string(b))
}

func TestConnect_NoAddr(t *testing.T) {
	p := Connect(context.Background(), "", "")
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), RoundSettled{}))
	assert.NoError(t, p.Close())
}

func TestConnect_Unreachable(t *testing.T) {
	p := Connect(context.Background(), "127.0.0.1:1", "")
	assert.IsType(t, Nop{}, p)
}

func TestRedis_Publish(t *testing.T) {
	addr := os.Getenv("CASINO_REDIS_ADDR")
	if addr == "" {
		t.Skip("CASINO_REDIS_ADDR is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := redis.NewClient(&redis.Options{Addr: addr})
	defer sub.Close()
	ps := sub.Subscribe(ctx, "casino:test")
	defer ps.Close()
	_, err := ps.Receive(ctx)
	require.NoError(t, err)

	pub, err := NewRedis(ctx, addr, "casino:test")
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.Publish(ctx, RoundSettled{RoundID: 1, PlayerID: "p1", Game: "dice"}))

	msg, err := ps.ReceiveMessage(ctx)
	require.NoError(t, err)

	var got RoundSettled
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, "p1", got.PlayerID)
	assert.Equal(t, "dice", got.Game)
}
