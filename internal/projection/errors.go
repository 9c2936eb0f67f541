package projection

import (
	"errors"
	"fmt"

	"talentGraph/internal/entity"
)

// ErrInvalidEvent marks a payload that cannot be parsed or breaks a protocol bound.
// Like a missing dependency it only aborts the event it came from.
var ErrInvalidEvent = errors.New("invalid event")

func invalidEvent(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidEvent, fmt.Sprintf(format, args...))
}

// IsEventScoped reports whether err aborts only the current event.
func IsEventScoped(err error) bool {
	return errors.Is(err, ErrInvalidEvent) || errors.Is(err, entity.ErrMissingDependency)
}

// SkipReason labels an event-scoped error for metrics.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrMissingDependency):
		return "missing_dependency"
	case errors.Is(err, ErrInvalidEvent):
		return "invalid_event"
	default:
		return "error"
	}
}
