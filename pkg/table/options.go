package table

import (
	"errors"
	"time"
)

// Options configures a table
type Options struct {
	MaxSeats            int
	StartingStack       int
	SmallBlind          int
	BigBlind            int
	TurnTimeout         time.Duration
	DisconnectRetention time.Duration
	NextHandDelay       time.Duration
}

// DefaultOptions returns the default options for a table
func DefaultOptions() Options {
	return Options{
		MaxSeats:            10,
		StartingStack:       10000,
		SmallBlind:          50,
		BigBlind:            100,
		TurnTimeout:         10 * time.Second,
		DisconnectRetention: 5 * time.Minute,
		NextHandDelay:       5 * time.Second,
	}
}

// two hole cards per seat plus burns and the board must fit in one deck
const maxSeatsPerDeck = 22

func validateOptions(opts Options) error {
	if opts.MaxSeats < 2 || opts.MaxSeats > maxSeatsPerDeck {
		return errors.New("max seats must be between 2 and 22")
	}

	if opts.StartingStack <= 0 {
		return errors.New("starting stack must be positive")
	}

	if opts.SmallBlind <= 0 || opts.BigBlind <= 0 {
		return errors.New("blinds must be positive")
	}

	if opts.SmallBlind > opts.BigBlind {
		return errors.New("small blind cannot exceed the big blind")
	}

	if opts.TurnTimeout <= 0 || opts.NextHandDelay < 0 || opts.DisconnectRetention < 0 {
		return errors.New("durations cannot be negative and the turn timeout must be set")
	}

	return nil
}
