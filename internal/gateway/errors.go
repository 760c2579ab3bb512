package gateway

import "fmt"

// Kind classifies a failed gateway call.
type Kind int

const (
	// KindNetwork covers transport failures: the request never got a
	// response.
	KindNetwork Kind = iota
	// KindServer covers non-200 responses; Status and the server's
	// error detail are preserved.
	KindServer
	// KindMalformed covers responses that could not be decoded.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network-error"
	case KindServer:
		return "server-error"
	case KindMalformed:
		return "malformed-response"
	default:
		return "unknown"
	}
}

// Error is the uniform failure result of any gateway call.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	if e.detail != "" {
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, e.detail)
	}
	return fmt.Sprintf("%s: %s (%d)", e.Op, e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Detail returns the server-provided failure description when one
// exists, or a generic user-facing message otherwise.
func (e *Error) Detail() string {
	if e.detail != "" {
		return e.detail
	}
	switch e.Kind {
	case KindServer:
		return fmt.Sprintf("The game server reported an error (%d).", e.Status)
	case KindMalformed:
		return "The game server sent an unreadable response."
	default:
		return "Could not reach the game server."
	}
}
