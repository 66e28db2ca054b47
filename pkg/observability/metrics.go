package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the intake collectors.
type Metrics struct {
	NodeVisits        *prometheus.CounterVec
	Handoffs          *prometheus.CounterVec
	CaseResets        prometheus.Counter
	AssistantDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyberdesk_node_visits_total",
				Help: "Total number of decision tree node visits",
			},
			[]string{"node_id"},
		),
		Handoffs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cyberdesk_assistant_handoffs_total",
				Help: "Hand-offs to the assistant, by the node the officer left",
			},
			[]string{"node_id"},
		),
		CaseResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cyberdesk_case_resets_total",
			Help: "Number of New Case resets",
		}),
		AssistantDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cyberdesk_assistant_duration_seconds",
				Help:    "Duration of assistant round-trips",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.NodeVisits, m.Handoffs, m.CaseResets, m.AssistantDuration)
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnHandoff: func(_ context.Context, e *domain.NodeEvent) {
			m.Handoffs.WithLabelValues(e.NodeID).Inc()
		},
		OnCaseReset: func(context.Context, *domain.NodeEvent) {
			m.CaseResets.Inc()
		},
		OnAssistantReply: func(_ context.Context, e *domain.AssistantEvent) {
			outcome := "ok"
			if e.IsError {
				outcome = "error"
			}
			m.AssistantDuration.WithLabelValues(outcome).Observe(e.Duration.Seconds())
		},
	}
}

// LogHooks returns hooks writing one log line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "node_enter", "case_id", e.CaseID, "node_id", e.NodeID)
		},
		OnHandoff: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "handoff", "case_id", e.CaseID, "node_id", e.NodeID)
		},
		OnCaseReset: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "case_reset", "case_id", e.CaseID, "node_id", e.NodeID)
		},
		OnAssistantReply: func(ctx context.Context, e *domain.AssistantEvent) {
			logger.InfoContext(ctx, "assistant_reply", "case_id", e.CaseID, "duration_ms", e.Duration.Milliseconds(), "is_error", e.IsError)
		},
	}
}

// Chain combines hooks so every non-nil callback runs, in order.
func Chain(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			for _, h := range all {
				if h.OnNodeEnter != nil {
					h.OnNodeEnter(ctx, e)
				}
			}
		},
		OnHandoff: func(ctx context.Context, e *domain.NodeEvent) {
			for _, h := range all {
				if h.OnHandoff != nil {
					h.OnHandoff(ctx, e)
				}
			}
		},
		OnCaseReset: func(ctx context.Context, e *domain.NodeEvent) {
			for _, h := range all {
				if h.OnCaseReset != nil {
					h.OnCaseReset(ctx, e)
				}
			}
		},
		OnAssistantReply: func(ctx context.Context, e *domain.AssistantEvent) {
			for _, h := range all {
				if h.OnAssistantReply != nil {
					h.OnAssistantReply(ctx, e)
				}
			}
		},
	}
}
