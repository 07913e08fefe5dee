package room

import (
	"casino-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the newest log messages
// Note: the room lock must be held
func (r *Room) addLogMessages(messages []*playable.LogMessage) {
	m := append(r.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	r.logMessages = m
}

// drainLogs moves any pending messages from the game's log channel into the room
// Note: the room lock must be held
func (r *Room) drainLogs(key string, game playable.Playable) []*playable.LogMessage {
	var drained []*playable.LogMessage
	for {
		select {
		case messages := <-game.LogChan():
			drained = append(drained, messages...)
		default:
			if len(drained) > 0 {
				r.addLogMessages(drained)
				r.broadcast(&playable.Response{
					Key:   "log",
					Value: key,
					Data:  LogResponse{Game: key, Messages: drained},
				})
			}

			return drained
		}
	}
}

// LogMessages returns the most recent log messages across every game
func (r *Room) LogMessages() []*playable.LogMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*playable.LogMessage{}, r.logMessages...)
}
