package projection

import "talentGraph/internal/model"

// Recorder receives projection counters.
type Recorder interface {
	EventApplied(name string)
	EventSkipped(name, reason string)
	EntityCreated(kind model.Kind)
}

type nopRecorder struct{}

func (nopRecorder) EventApplied(string)         {}
func (nopRecorder) EventSkipped(string, string) {}
func (nopRecorder) EntityCreated(model.Kind)    {}
