package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

type Metrics struct {
	requestCount  int64
	startTime     time.Time
	inFlight      int32
	endpointStats map[string]*EndpointStats
	mu            sync.RWMutex
}

type EndpointStats struct {
	Requests    int64
	Successes   int64
	Failures    int64
	Stale       int64
	TotalTime   int64
	LastRequest time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime:     time.Now(),
		endpointStats: make(map[string]*EndpointStats),
	}
}

func (m *Metrics) stats(endpoint string) *EndpointStats {
	stats, exists := m.endpointStats[endpoint]
	if !exists {
		stats = &EndpointStats{}
		m.endpointStats[endpoint] = stats
	}
	return stats
}

// RequestStarted records a lookup leaving for endpoint.
func (m *Metrics) RequestStarted(endpoint string) {
	atomic.AddInt64(&m.requestCount, 1)
	atomic.AddInt32(&m.inFlight, 1)

	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.stats(endpoint)
	stats.Requests++
	stats.LastRequest = time.Now()
}

// RequestFinished records the outcome of a lookup.
func (m *Metrics) RequestFinished(endpoint string, duration time.Duration, err error) {
	atomic.AddInt32(&m.inFlight, -1)

	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.stats(endpoint)
	stats.TotalTime += duration.Nanoseconds()
	if err != nil {
		stats.Failures++
	} else {
		stats.Successes++
	}
}

// StaleDiscarded records a response dropped because a newer query superseded it.
func (m *Metrics) StaleDiscarded(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats(endpoint).Stale++
}

func (m *Metrics) GetRequestCount() int64 {
	return atomic.LoadInt64(&m.requestCount)
}

func (m *Metrics) InFlight() int32 {
	return atomic.LoadInt32(&m.inFlight)
}

// Endpoint returns a copy of the counters of one endpoint.
func (m *Metrics) Endpoint(endpoint string) EndpointStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if stats, ok := m.endpointStats[endpoint]; ok {
		return *stats
	}
	return EndpointStats{}
}

// Snapshot flattens all counters into info-style key/values.
func (m *Metrics) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info := map[string]string{
		"uptime_in_seconds":        strconv.Itoa(int(time.Since(m.startTime).Seconds())),
		"total_requests_processed": strconv.FormatInt(m.GetRequestCount(), 10),
		"requests_in_flight":       strconv.Itoa(int(m.InFlight())),
	}

	for endpoint, stat := range m.endpointStats {
		prefix := "endpoint_" + endpoint + "_"
		info[prefix+"requests"] = strconv.FormatInt(stat.Requests, 10)
		info[prefix+"successes"] = strconv.FormatInt(stat.Successes, 10)
		info[prefix+"failures"] = strconv.FormatInt(stat.Failures, 10)
		info[prefix+"stale"] = strconv.FormatInt(stat.Stale, 10)
		info[prefix+"total_time_us"] = strconv.FormatInt(stat.TotalTime/1000, 10)
		if done := stat.Successes + stat.Failures; done > 0 {
			info[prefix+"avg_time_us"] = strconv.FormatInt(stat.TotalTime/done/1000, 10)
		}
	}

	return info
}
