package room

import (
	"github.com/gorilla/websocket"
)

// Client is a subscriber to a room, usually a websocket connection
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	playerID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID string) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string, 1),
		Conn:     conn,
		playerID: playerID,
	}
}

// Send sends a message to the client without blocking
// false is returned when the client's buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player
func (c *Client) String() string {
	return c.playerID
}

// close asks the connection to shut down
func (c *Client) close(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}
