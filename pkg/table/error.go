package table

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// kick failures, reported to the requester verbatim
const (
	ErrSeatNotFound UserError = "player does not exist"
	ErrNotHost      UserError = "only the host can kick players"
	ErrKickSelf     UserError = "you cannot kick yourself"
)
