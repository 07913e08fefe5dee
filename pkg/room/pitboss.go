package room

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/events"
	"casino-server/pkg/history"
	"casino-server/pkg/room/gamefactory"
	"casino-server/pkg/wallet"
)

// Options configure a PitBoss
type Options struct {
	Games     gamefactory.Registry
	History   history.Store
	Publisher events.Publisher
	Node      *snowflake.Node

	// RNG returns the generator for a new room, rng.Crypto when nil
	RNG    func() rng.Generator
	Logger logrus.FieldLogger

	// PublishTimeout bounds each event publish, DefaultPublishTimeout when zero
	PublishTimeout time.Duration
}

// DefaultPublishTimeout is how long a settled round waits on the event publisher
const DefaultPublishTimeout = 2 * time.Second

// PitBoss is responsible for dispatching players to their rooms
type PitBoss struct {
	games     gamefactory.Registry
	history   history.Store
	publisher events.Publisher
	ids       *snowflake.Node
	newRNG    func() rng.Generator
	logger    logrus.FieldLogger

	publishTimeout time.Duration

	mu sync.Mutex
	// rooms is ordered from least to most recently used
	rooms *linkedhashmap.Map
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) (*PitBoss, error) {
	p := &PitBoss{
		games:     opts.Games,
		history:   opts.History,
		publisher: opts.Publisher,
		ids:       opts.Node,
		newRNG:    opts.RNG,
		logger:    opts.Logger,
		rooms:     linkedhashmap.New(),

		publishTimeout: opts.PublishTimeout,
	}

	if p.publishTimeout <= 0 {
		p.publishTimeout = DefaultPublishTimeout
	}

	if p.games == nil {
		p.games = gamefactory.NewRegistry(gamefactory.DefaultSettings())
	}

	if p.history == nil {
		p.history = history.NewMemory()
	}

	if p.publisher == nil {
		p.publisher = events.Nop{}
	}

	if p.ids == nil {
		node, err := snowflake.NewNode(1)
		if err != nil {
			return nil, err
		}

		p.ids = node
	}

	if p.newRNG == nil {
		p.newRNG = func() rng.Generator {
			return rng.Crypto{}
		}
	}

	if p.logger == nil {
		p.logger = logrus.StandardLogger()
	}

	return p, nil
}

// Room returns the player's room, creating it on first use
// The wallet replaces the one the room was holding so fresh credentials are used.
// A room busy with a slow wallet call does not hold up other players.
func (p *PitBoss) Room(playerID string, w wallet.Wallet) *Room {
	p.mu.Lock()
	defer p.mu.Unlock()

	if val, found := p.rooms.Get(playerID); found {
		r := val.(*Room)
		r.setWallet(w)

		// move to the back of the line
		p.rooms.Remove(playerID)
		p.rooms.Put(playerID, r)

		return r
	}

	r := newRoom(p, playerID, w)
	p.rooms.Put(playerID, r)
	p.logger.WithField("player", playerID).Debug("room opened")

	return r
}

// Rooms returns the number of open rooms
func (p *PitBoss) Rooms() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.rooms.Size()
}

// Evict closes rooms that have not been used for olderThan and have no subscribers
// The number of closed rooms is returned.
func (p *PitBoss) Evict(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	p.mu.Lock()
	idle := make([]*Room, 0)
	it := p.rooms.Iterator()
	for it.Next() {
		r := it.Value().(*Room)
		lastUsed, subscribers := r.idle()
		if lastUsed.After(cutoff) || subscribers > 0 {
			continue
		}

		idle = append(idle, r)
	}

	for _, r := range idle {
		p.rooms.Remove(r.playerID)
	}
	p.mu.Unlock()

	for _, r := range idle {
		r.close()
		p.logger.WithField("player", r.playerID).Debug("room evicted")
	}

	return len(idle)
}

// StartShift evicts idle rooms every interval until ctx is done
func (p *PitBoss) StartShift(ctx context.Context, interval, idleTimeout time.Duration) {
	go p.runLoop(ctx, interval, idleTimeout)
}

func (p *PitBoss) runLoop(ctx context.Context, interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := p.Evict(idleTimeout); n > 0 {
				p.logger.WithField("rooms", n).Info("evicted idle rooms")
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close closes every room
func (p *PitBoss) Close() {
	p.mu.Lock()
	rooms := make([]*Room, 0, p.rooms.Size())
	for _, val := range p.rooms.Values() {
		rooms = append(rooms, val.(*Room))
	}
	p.rooms.Clear()
	p.mu.Unlock()

	for _, r := range rooms {
		r.close()
	}
}
