package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientEntries matches every *InsufficientEntriesError.
	ErrInsufficientEntries = errors.New("not enough entries")

	ErrLocked          = errors.New("card already generated; reset to edit entries")
	ErrNotGenerated    = errors.New("no card generated yet")
	ErrEmptyEntry      = errors.New("entry is empty")
	ErrDuplicateEntry  = errors.New("entry already added")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// InsufficientEntriesError blocks generation of a card.
type InsufficientEntriesError struct {
	Have, Need int
}

func (e *InsufficientEntriesError) Error() string {
	return fmt.Sprintf("please add at least %d entries to generate a bingo card (have %d)", e.Need, e.Have)
}

func (e *InsufficientEntriesError) Is(target error) bool { return target == ErrInsufficientEntries }
