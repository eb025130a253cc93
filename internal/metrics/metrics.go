// Package metrics collects request counters for Prometheus text export.
package metrics

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Collector collects gateway metrics.
type Collector struct {
	// Counters
	totalRequests   atomic.Int64
	successRequests atomic.Int64
	failedRequests  atomic.Int64
	cacheHits       atomic.Int64
	rateLimited     atomic.Int64

	// Per method/status upstream call counters
	upstreamCalls map[string]*atomic.Int64
	upstreamMu    sync.RWMutex

	// Duration histogram
	durationBuckets map[float64]*atomic.Int64 // milliseconds
	durationSum     atomic.Int64
	durationCount   atomic.Int64

	startTime time.Time
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		upstreamCalls:   make(map[string]*atomic.Int64),
		durationBuckets: initDurationBuckets(),
		startTime:       time.Now(),
	}
}

var bucketBounds = []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

func initDurationBuckets() map[float64]*atomic.Int64 {
	m := make(map[float64]*atomic.Int64)
	for _, b := range bucketBounds {
		m[b] = &atomic.Int64{}
	}
	return m
}

// RecordRequest records one GraphQL request.
func (c *Collector) RecordRequest(duration time.Duration, success bool) {
	c.totalRequests.Add(1)
	if success {
		c.successRequests.Add(1)
	} else {
		c.failedRequests.Add(1)
	}

	durationMs := float64(duration.Milliseconds())
	c.durationSum.Add(duration.Milliseconds())
	c.durationCount.Add(1)
	for bucket, counter := range c.durationBuckets {
		if durationMs <= bucket {
			counter.Add(1)
		}
	}
}

// RecordUpstream records one performed upstream call.
func (c *Collector) RecordUpstream(method string, status int) {
	key := fmt.Sprintf("%s:%d", method, status)
	c.upstreamMu.Lock()
	if _, ok := c.upstreamCalls[key]; !ok {
		c.upstreamCalls[key] = &atomic.Int64{}
	}
	c.upstreamCalls[key].Add(1)
	c.upstreamMu.Unlock()
}

// RecordCacheHit records a response served from the response cache.
func (c *Collector) RecordCacheHit() {
	c.cacheHits.Add(1)
}

// RecordRateLimited records a request rejected by the rate limiter.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Add(1)
}

// PrometheusFormat exports metrics in Prometheus text format.
func (c *Collector) PrometheusFormat() string {
	var output string

	output += "# HELP chouquette_requests_total Total number of GraphQL requests\n"
	output += "# TYPE chouquette_requests_total counter\n"
	output += fmt.Sprintf("chouquette_requests_total %d\n\n", c.totalRequests.Load())

	output += "# HELP chouquette_requests_success_total Total number of successful requests\n"
	output += "# TYPE chouquette_requests_success_total counter\n"
	output += fmt.Sprintf("chouquette_requests_success_total %d\n\n", c.successRequests.Load())

	output += "# HELP chouquette_requests_failed_total Total number of failed requests\n"
	output += "# TYPE chouquette_requests_failed_total counter\n"
	output += fmt.Sprintf("chouquette_requests_failed_total %d\n\n", c.failedRequests.Load())

	output += "# HELP chouquette_response_cache_hits_total Responses served from the response cache\n"
	output += "# TYPE chouquette_response_cache_hits_total counter\n"
	output += fmt.Sprintf("chouquette_response_cache_hits_total %d\n\n", c.cacheHits.Load())

	output += "# HELP chouquette_rate_limited_total Requests rejected by the rate limiter\n"
	output += "# TYPE chouquette_rate_limited_total counter\n"
	output += fmt.Sprintf("chouquette_rate_limited_total %d\n\n", c.rateLimited.Load())

	output += "# HELP chouquette_upstream_calls_total Performed upstream calls by method and status\n"
	output += "# TYPE chouquette_upstream_calls_total counter\n"
	c.upstreamMu.RLock()
	keys := make([]string, 0, len(c.upstreamCalls))
	for key := range c.upstreamCalls {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		output += fmt.Sprintf("chouquette_upstream_calls_total{call=\"%s\"} %d\n", key, c.upstreamCalls[key].Load())
	}
	c.upstreamMu.RUnlock()
	output += "\n"

	output += "# HELP chouquette_request_duration_milliseconds Request duration in milliseconds\n"
	output += "# TYPE chouquette_request_duration_milliseconds histogram\n"
	for _, bucket := range bucketBounds {
		if counter, ok := c.durationBuckets[bucket]; ok {
			output += fmt.Sprintf("chouquette_request_duration_milliseconds_bucket{le=\"%.0f\"} %d\n", bucket, counter.Load())
		}
	}
	output += fmt.Sprintf("chouquette_request_duration_milliseconds_bucket{le=\"+Inf\"} %d\n", c.durationCount.Load())
	output += fmt.Sprintf("chouquette_request_duration_milliseconds_sum %d\n", c.durationSum.Load())
	output += fmt.Sprintf("chouquette_request_duration_milliseconds_count %d\n\n", c.durationCount.Load())

	uptime := time.Since(c.startTime).Seconds()
	output += "# HELP chouquette_uptime_seconds Uptime in seconds\n"
	output += "# TYPE chouquette_uptime_seconds counter\n"
	output += fmt.Sprintf("chouquette_uptime_seconds %.0f\n\n", uptime)

	return output
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TotalRequests   int64            `json:"total_requests"`
	SuccessRequests int64            `json:"success_requests"`
	FailedRequests  int64            `json:"failed_requests"`
	CacheHits       int64            `json:"cache_hits"`
	RateLimited     int64            `json:"rate_limited"`
	AvgDurationMs   float64          `json:"avg_duration_ms"`
	UpstreamCalls   map[string]int64 `json:"upstream_calls"`
	UptimeSeconds   float64          `json:"uptime_seconds"`
}

// Snapshot returns a snapshot of current metrics.
func (c *Collector) Snapshot() *Snapshot {
	snap := &Snapshot{
		TotalRequests:   c.totalRequests.Load(),
		SuccessRequests: c.successRequests.Load(),
		FailedRequests:  c.failedRequests.Load(),
		CacheHits:       c.cacheHits.Load(),
		RateLimited:     c.rateLimited.Load(),
		UpstreamCalls:   make(map[string]int64),
		UptimeSeconds:   time.Since(c.startTime).Seconds(),
	}

	if c.durationCount.Load() > 0 {
		snap.AvgDurationMs = float64(c.durationSum.Load()) / float64(c.durationCount.Load())
	}

	c.upstreamMu.RLock()
	for key, counter := range c.upstreamCalls {
		snap.UpstreamCalls[key] = counter.Load()
	}
	c.upstreamMu.RUnlock()

	return snap
}
