package cart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCartNotFound means the remote answered without cart data.
	ErrCartNotFound = errors.New("cart not found")
	// ErrInvalidQuantity is a caller error: line quantities must be at least 1.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrNoCart means an action needs a cart but the session has none.
	ErrNoCart = errors.New("no active cart")
)

// TransportError wraps failures below the business layer: network errors,
// non-2xx responses and top-level GraphQL errors.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserError is a validation or business error reported by the platform.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

type UserErrors []UserError

func (e UserErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ue := range e {
		if len(ue.Field) > 0 {
			msgs = append(msgs, strings.Join(ue.Field, ".")+": "+ue.Message)
			continue
		}
		msgs = append(msgs, ue.Message)
	}
	return "remote rejected request: " + strings.Join(msgs, "; ")
}

// IsRejection reports whether err is the platform refusing the request, as
// opposed to the request never getting a business answer.
func IsRejection(err error) bool {
	var ue UserErrors
	return errors.As(err, &ue) || errors.Is(err, ErrCartNotFound)
}
