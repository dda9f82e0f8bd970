// Package stats provides runtime statistics tracking for Relay.
package stats

import (
	"runtime"
	"sync"
	"time"
)

// Collector tracks query counts, routing decisions, and model latency
// for the lifetime of one session.
type Collector struct {
	mu            sync.Mutex
	startTime     time.Time
	requestCount  int64
	tokenCount    int64
	errorCount    int64
	totalDuration int64 // nanoseconds
	routes        map[string]int64
	toolCalls     map[string]int64
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		routes:    make(map[string]int64),
		toolCalls: make(map[string]int64),
	}
}

// Stats represents collected statistics at a point in time.
type Stats struct {
	Memory     MemoryStats `json:"memory"`
	Goroutines int         `json:"goroutines"`
	Uptime     string      `json:"uptime"`

	RequestCount int64   `json:"request_count"`
	TokenCount   int64   `json:"token_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`

	Routes    map[string]int64 `json:"routes"`
	ToolCalls map[string]int64 `json:"tool_calls"`
}

// MemoryStats represents process memory usage.
type MemoryStats struct {
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	HeapSysMB   float64 `json:"heap_sys_mb"`
	NumGC       uint32  `json:"num_gc"`
}

// RecordRequest records a completed model request.
func (c *Collector) RecordRequest(tokens int, duration time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestCount++
	c.tokenCount += int64(tokens)
	c.totalDuration += duration.Nanoseconds()
}

// RecordRoute records one routing decision (knowledge, action, hybrid).
func (c *Collector) RecordRoute(label string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[label]++
}

// RecordToolCall records one remote tool invocation.
func (c *Collector) RecordToolCall(tool string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toolCalls[tool]++
}

// RecordError records an error.
func (c *Collector) RecordError() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// StartTime returns when the collector started.
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// Collect returns current statistics.
func (c *Collector) Collect() *Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.mu.Lock()
	defer c.mu.Unlock()

	avgLatency := float64(0)
	if c.requestCount > 0 {
		avgLatency = float64(c.totalDuration) / float64(c.requestCount) / 1e6
	}

	routes := make(map[string]int64, len(c.routes))
	for k, v := range c.routes {
		routes[k] = v
	}
	toolCalls := make(map[string]int64, len(c.toolCalls))
	for k, v := range c.toolCalls {
		toolCalls[k] = v
	}

	return &Stats{
		Memory: MemoryStats{
			HeapAllocMB: bytesToMB(int64(m.HeapAlloc)),
			HeapSysMB:   bytesToMB(int64(m.HeapSys)),
			NumGC:       m.NumGC,
		},
		Goroutines:   runtime.NumGoroutine(),
		Uptime:       time.Since(c.startTime).String(),
		RequestCount: c.requestCount,
		TokenCount:   c.tokenCount,
		ErrorCount:   c.errorCount,
		AvgLatencyMs: avgLatency,
		Routes:       routes,
		ToolCalls:    toolCalls,
	}
}

func bytesToMB(b int64) float64 {
	return float64(b) / 1024 / 1024
}
