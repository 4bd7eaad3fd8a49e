package table

import "encoding/json"

// Stage is the phase of the current hand
type Stage int

// Stage constants
const (
	StageWaiting Stage = iota
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StageWaiting:
		return "waiting"
	case StagePreflop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	}

	return "unknown"
}

// MarshalJSON encodes the stage by name
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// IsBetting is true on the four streets where seats act
func (s Stage) IsBetting() bool {
	return s >= StagePreflop && s <= StageRiver
}
