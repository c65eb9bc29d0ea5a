package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/urakawa/pkg/core"
	"github.com/aretw0/urakawa/pkg/undo"
)

// Collector holds the metric vectors fed by attached managers and presentations.
type Collector struct {
	history      *prometheus.CounterVec
	transactions *prometheus.HistogramVec
	depth        prometheus.Gauge
	model        *prometheus.CounterVec
	decodes      *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		history: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urakawa_undo_events_total",
				Help: "Undo/redo history changes by kind",
			},
			[]string{"kind"},
		),
		transactions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "urakawa_transaction_commands",
				Help:    "Number of commands in finished transactions",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"outcome"},
		),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "urakawa_transaction_depth",
			Help: "Open transactions after the last history change",
		}),
		model: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urakawa_model_events_total",
				Help: "Document model changes by type",
			},
			[]string{"type"},
		),
		decodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urakawa_decodes_total",
				Help: "XUK documents decoded by result",
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(c.history, c.transactions, c.depth, c.model, c.decodes)
	}
	return c
}

// Attach counts the events of m until the returned function is called.
func (c *Collector) Attach(m *undo.Manager) (detach func()) {
	return m.Events().Subscribe(c.observeHistory)
}

// AttachPresentation counts the model events of p and the history events of
// its undo/redo manager.
func (c *Collector) AttachPresentation(p *core.Presentation) (detach func()) {
	stopModel := p.Events().Subscribe(c.observeModel)
	stopHistory := c.Attach(p.UndoRedoManager())
	return func() {
		stopModel()
		stopHistory()
	}
}

// ObserveDecode counts one document load that ended with err.
func (c *Collector) ObserveDecode(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.decodes.WithLabelValues(result).Inc()
}

func (c *Collector) observeHistory(e undo.Event) {
	c.history.WithLabelValues(e.Kind.String()).Inc()
	c.depth.Set(float64(e.Depth))

	var outcome string
	switch e.Kind {
	case undo.EventTransactionEnded:
		outcome = "committed"
	case undo.EventTransactionCancelled:
		outcome = "cancelled"
	default:
		return
	}
	if tx, ok := e.Command.(*undo.CompositeCommand); ok {
		c.transactions.WithLabelValues(outcome).Observe(float64(tx.Count()))
	}
}

func (c *Collector) observeModel(e core.Event) {
	c.model.WithLabelValues(EventType(e)).Inc()
}

// EventType returns the metric label used for a model event.
func EventType(e core.Event) string {
	switch e.(type) {
	case core.ChildAdded:
		return "child_added"
	case core.ChildRemoved:
		return "child_removed"
	case core.PropertyAdded:
		return "property_added"
	case core.PropertyRemoved:
		return "property_removed"
	case core.MediaSet:
		return "media_set"
	case core.XmlAttributeChanged:
		return "xml_attribute_changed"
	case core.ChannelAdded:
		return "channel_added"
	case core.ChannelRemoved:
		return "channel_removed"
	default:
		return "other"
	}
}
