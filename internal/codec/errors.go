package codec

import (
	"errors"
	"fmt"
)

// ErrMalformedToken matches every *MalformedTokenError via errors.Is.
var ErrMalformedToken = errors.New("malformed share token")

// MalformedTokenError is returned by Decode when a token cannot be turned
// back into a list of entries.
type MalformedTokenError struct {
	Reason string
	Err    error
}

func (e *MalformedTokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedToken, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedToken, e.Reason)
}

func (e *MalformedTokenError) Unwrap() error { return e.Err }

func (e *MalformedTokenError) Is(target error) bool { return target == ErrMalformedToken }
