package entity

import (
	"errors"
	"fmt"

	"talentGraph/internal/model"
)

// ErrMissingDependency matches every MissingDependencyError.
var ErrMissingDependency = errors.New("missing dependency")

// MissingDependencyError reports a referenced entity that an earlier event should have created.
type MissingDependencyError struct {
	Kind model.Kind
	ID   string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing %s %q", e.Kind, e.ID)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}
