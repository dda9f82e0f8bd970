package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()

	c.RecordRequest(100, 50*time.Millisecond)
	c.RecordRequest(200, 150*time.Millisecond)
	c.RecordRoute("action")
	c.RecordRoute("action")
	c.RecordRoute("knowledge")
	c.RecordToolCall("create_file")
	c.RecordError()

	s := c.Collect()
	assert.Equal(t, int64(2), s.RequestCount)
	assert.Equal(t, int64(300), s.TokenCount)
	assert.Equal(t, int64(1), s.ErrorCount)
	assert.InDelta(t, 100.0, s.AvgLatencyMs, 0.01)
	assert.Equal(t, int64(2), s.Routes["action"])
	assert.Equal(t, int64(1), s.Routes["knowledge"])
	assert.Equal(t, int64(1), s.ToolCalls["create_file"])
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordRequest(10, time.Millisecond)
		c.RecordRoute("hybrid")
		c.RecordToolCall("zip_folder")
		c.RecordError()
	})
}

func TestCollect_SnapshotIsCopy(t *testing.T) {
	c := NewCollector()
	c.RecordRoute("action")

	s := c.Collect()
	s.Routes["action"] = 99
	s.ToolCalls["injected"] = 1

	fresh := c.Collect()
	assert.Equal(t, int64(1), fresh.Routes["action"])
	assert.NotContains(t, fresh.ToolCalls, "injected")
}

func TestCollect_EmptyCollector(t *testing.T) {
	c := NewCollector()

	s := c.Collect()
	require.NotNil(t, s)
	assert.Zero(t, s.RequestCount)
	assert.Zero(t, s.AvgLatencyMs)
	assert.Positive(t, s.Goroutines)
	assert.NotEmpty(t, s.Uptime)
	assert.False(t, c.StartTime().IsZero())
}
