package room

import (
	"fmt"
	"pokerroom-server/internal/util"
	"pokerroom-server/pkg/protocol"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// RoomID is the room the client connected to
	RoomID string

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer
	seatID string
}

// NewClient returns a new client object
// If seatID is empty the client is given a new identity.
func NewClient(conn *websocket.Conn, roomID, seatID string) *Client {
	if seatID == "" {
		seatID = util.NewID()
	}

	return &Client{
		Conn:   conn,
		RoomID: roomID,
		send:   make(chan interface{}, 256),
		Close:  make(chan string, 1),
		seatID: seatID,
	}
}

// SeatID returns the seat identity the client acts as
func (c *Client) SeatID() string {
	return c.seatID
}

// Send send a message to the web client
// Returns false if the client's buffer is full and the message was dropped.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("send buffer is full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// RequestClose asks the write loop to close the connection
func (c *Client) RequestClose(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the seat and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.seatID, c.RoomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *protocol.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
