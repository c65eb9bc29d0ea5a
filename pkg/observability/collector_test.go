package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa/pkg/core"
)

func TestCollector_Presentation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	p := core.NewProject().NewPresentation()
	um := p.UndoRedoManager()
	root := p.RootNode()
	detach := c.AttachPresentation(p)

	um.StartTransaction("two children", "")
	require.NoError(t, um.Execute(core.NewInsertChildCommand(root, p.NewTreeNode(), -1)))
	require.NoError(t, um.Execute(core.NewInsertChildCommand(root, p.NewTreeNode(), -1)))
	require.NoError(t, um.EndTransaction())
	require.NoError(t, um.Undo())

	um.StartTransaction("abandoned", "")
	require.NoError(t, um.Execute(core.NewInsertChildCommand(root, p.NewTreeNode(), -1)))
	require.NoError(t, um.CancelTransaction())

	detach()
	require.NoError(t, root.AppendChild(p.NewTreeNode()))

	assert.Equal(t, 3.0, testutil.ToFloat64(c.model.WithLabelValues("child_added")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.model.WithLabelValues("child_removed")))

	assert.Equal(t, 3.0, testutil.ToFloat64(c.history.WithLabelValues("done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.history.WithLabelValues("undone")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.history.WithLabelValues("transaction_started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.history.WithLabelValues("transaction_ended")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.history.WithLabelValues("transaction_cancelled")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.depth))
	assert.Equal(t, 2, testutil.CollectAndCount(c.transactions))

	n, err := testutil.GatherAndCount(reg, "urakawa_undo_events_total")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestCollector_DepthTracksNesting(t *testing.T) {
	c := NewCollector(nil)
	p := core.NewProject().NewPresentation()
	um := p.UndoRedoManager()
	defer c.Attach(um)()

	um.StartTransaction("outer", "")
	um.StartTransaction("inner", "")
	assert.Equal(t, 2.0, testutil.ToFloat64(c.depth))
	require.NoError(t, um.EndTransaction())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.depth))
	require.NoError(t, um.EndTransaction())
	assert.Equal(t, 0.0, testutil.ToFloat64(c.depth))
}

func TestEventType(t *testing.T) {
	tests := []struct {
		event core.Event
		want  string
	}{
		{core.ChildAdded{}, "child_added"},
		{core.PropertyRemoved{}, "property_removed"},
		{core.MediaSet{}, "media_set"},
		{core.XmlAttributeChanged{}, "xml_attribute_changed"},
		{core.ChannelRemoved{}, "channel_removed"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EventType(tt.event))
		})
	}
}

func TestCollector_ObserveDecode(t *testing.T) {
	c := NewCollector(nil)
	c.ObserveDecode(nil)
	c.ObserveDecode(nil)
	c.ObserveDecode(assert.AnError)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.decodes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.decodes.WithLabelValues("error")))
}
