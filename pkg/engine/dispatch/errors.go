package dispatch

import "errors"

var (
	// ErrUnknownCommand indicates the command name matched no entry.
	ErrUnknownCommand = errors.New("unknown command")
)

// UsageError indicates the argument count was out of bounds for the
// matched entry. The handler is never invoked in this case.
type UsageError struct {
	Entry *Entry
}

// Error implements error.
func (e *UsageError) Error() string {
	if e.Entry.Usage == "" {
		return "usage: " + e.Entry.Name
	}
	return "usage: " + e.Entry.Name + " " + e.Entry.Usage
}
