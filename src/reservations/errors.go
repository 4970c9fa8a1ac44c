package reservations

import "fmt"

type ErrorCode string

const (
	CodeNotFound          ErrorCode = "not_found"
	CodeForbidden         ErrorCode = "forbidden"
	CodeInvalidInput      ErrorCode = "invalid_input"
	CodeInvalidTransition ErrorCode = "invalid_transition"
	CodeConflict          ErrorCode = "conflict"
	CodeRatingState       ErrorCode = "rating_state"
)

// Error carries a code so the HTTP layer can pick a status without string
// matching. Conflict is kept distinct from InvalidInput: it is a race
// outcome at commit time, not a static validation failure.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrListingNotFound     = &Error{Code: CodeNotFound, Message: "listing not found"}
	ErrReservationNotFound = &Error{Code: CodeNotFound, Message: "reservation not found"}
	ErrNotParticipant      = &Error{Code: CodeForbidden, Message: "user is not a party to this reservation"}
	ErrOwnListing          = &Error{Code: CodeInvalidInput, Message: "cannot reserve own listing"}
	ErrSpaceUnavailable    = &Error{Code: CodeConflict, Message: "not enough space available for the requested dates"}

	ErrRatingNotClient      = &Error{Code: CodeForbidden, Message: "only the reserving client may rate"}
	ErrRatingWrongListing   = &Error{Code: CodeRatingState, Message: "reservation does not belong to this listing"}
	ErrRatingNotApproved    = &Error{Code: CodeRatingState, Message: "only approved reservations can be rated"}
	ErrRatingAlreadyRated   = &Error{Code: CodeRatingState, Message: "reservation has already been rated"}
	ErrRatingNotStarted     = &Error{Code: CodeRatingState, Message: "reservation term has not started yet"}
)
