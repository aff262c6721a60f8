package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts scheduling outcomes. A nil *Recorder is a no-op.
type Recorder struct {
	bookings    *prometheus.CounterVec
	conflicts   prometheus.Counter
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	registry    *prometheus.Registry
}

func New() *Recorder {
	r := &Recorder{
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vet_appointments_booked_total",
				Help: "Appointments successfully booked",
			},
			[]string{"origin"},
		),
		conflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vet_appointment_conflicts_total",
				Help: "Bookings rejected because the slot was taken",
			},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vet_appointment_transitions_total",
				Help: "Applied lifecycle transitions",
			},
			[]string{"action"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vet_appointment_rejections_total",
				Help: "Rejected lifecycle operations by action and error code",
			},
			[]string{"action", "code"},
		),
		registry: prometheus.NewRegistry(),
	}

	r.registry.MustRegister(
		r.bookings,
		r.conflicts,
		r.transitions,
		r.rejections,
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Recorder) Booked(origin string) {
	if r == nil {
		return
	}
	r.bookings.WithLabelValues(origin).Inc()
}

func (r *Recorder) Conflict() {
	if r == nil {
		return
	}
	r.conflicts.Inc()
}

func (r *Recorder) Transition(action string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(action).Inc()
}

func (r *Recorder) Rejected(action, code string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(action, code).Inc()
}

func (r *Recorder) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
