package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"talentGraph/internal/model"
)

// Recorder counts projection activity. It satisfies projection.Recorder.
type Recorder struct {
	// EventsApplied counts committed events by name
	EventsApplied *prometheus.CounterVec

	// EventsSkipped counts events left without effect, by name and reason
	EventsSkipped *prometheus.CounterVec

	// EntitiesCreated counts first-time entity creations by kind
	EntitiesCreated *prometheus.CounterVec
}

// NewRecorder registers the projection counters on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		EventsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projection_events_applied_total",
				Help: "Total number of events applied to the entity graph",
			},
			[]string{"event"},
		),
		EventsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projection_events_skipped_total",
				Help: "Total number of events skipped by the projector",
			},
			[]string{"event", "reason"},
		),
		EntitiesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projection_entities_created_total",
				Help: "Total number of entities created",
			},
			[]string{"kind"},
		),
	}
}

func (r *Recorder) EventApplied(name string) {
	r.EventsApplied.WithLabelValues(name).Inc()
}

func (r *Recorder) EventSkipped(name, reason string) {
	r.EventsSkipped.WithLabelValues(name, reason).Inc()
}

func (r *Recorder) EntityCreated(kind model.Kind) {
	r.EntitiesCreated.WithLabelValues(string(kind)).Inc()
}
