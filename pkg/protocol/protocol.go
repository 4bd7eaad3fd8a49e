package protocol

// Outbound message keys
const (
	KeyGameState  = "game_state"
	KeyYourTurn   = "your_turn"
	KeyGameResult = "game_result"
	KeyKicked     = "kicked"
	KeyKickResult = "kick_result"
	KeyJoined     = "joined"
	KeyError      = "error"
	KeyStatus     = "status"
)

// Inbound actions
const (
	ActionJoin      = "join"
	ActionAction    = "action"
	ActionKick      = "kick"
	ActionReconnect = "reconnect"
)

// Response is a message sent from the server to one or more clients
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   KeyStatus,
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// NewErrorResponse wraps an error for the client
func NewErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     KeyError,
		Value:   err.Error(),
		Context: ctx,
	}
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameResult is sent to each winner of a hand
type GameResult struct {
	Message  string `json:"message"`
	Amount   int    `json:"amount"`
	HandName string `json:"handName,omitempty"`
}

// Kicked is sent to a seat right before it is disconnected by the host
type Kicked struct {
	Reason     string `json:"reason"`
	KickerName string `json:"kickerName"`
}

// KickResult is returned to the seat that requested a kick
type KickResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Joined tells a connection which seat identity it owns
type Joined struct {
	SeatID string `json:"seatId"`
	RoomID string `json:"roomId"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	return boolVal, ok
}
