package table

import (
	"pokerroom-server/pkg/deck"
	"time"
)

// Status is a seat's participation status
type Status string

// Status constants
const (
	StatusActive       Status = "active"
	StatusFolded       Status = "folded"
	StatusSitout       Status = "sitout"
	StatusDisconnected Status = "disconnected"
)

// Role is a bitset of the positions a seat holds in the current hand
type Role uint8

// Role flags
const (
	RoleDealer Role = 1 << iota
	RoleSmallBlind
	RoleBigBlind
)

// Has returns true if every flag in o is set
func (r Role) Has(o Role) bool {
	return r&o == o
}

// Seat is a participant in a room
type Seat struct {
	ID         string
	Name       string
	Chips      int
	Hole       deck.Hand
	Status     Status
	CurrentBet int
	Roles      Role
	LastActive time.Time

	// status to restore when a disconnected seat comes back mid-hand
	resumeStatus Status
}

// pay moves up to amount from the seat's stack into its current bet
// Returns the amount actually paid.
func (s *Seat) pay(amount int) int {
	if amount <= 0 {
		return 0
	}

	if amount > s.Chips {
		amount = s.Chips
	}

	s.Chips -= amount
	s.CurrentBet += amount
	return amount
}

// IsAllIn returns true if an active seat has no chips left to put in
func (s *Seat) IsAllIn() bool {
	return s.Status == StatusActive && s.Chips == 0
}
