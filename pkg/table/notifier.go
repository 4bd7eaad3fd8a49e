package table

import (
	"pokerroom-server/pkg/protocol"
	"time"
)

// Notifier delivers the table's outbound messages
// Implementations must not call back into the table.
type Notifier interface {
	// Broadcast sends a message to every connection in the room
	Broadcast(msg *protocol.Response)
	// Send sends a message to a single seat's connection
	Send(seatID string, msg *protocol.Response)
	// Disconnect closes a seat's connection
	Disconnect(seatID string, reason string)
}

// Timer is a pending callback created by a Scheduler
type Timer interface {
	Stop() bool
}

// Scheduler runs fn after d
// The callback must be delivered on the same goroutine that drives the table.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}
