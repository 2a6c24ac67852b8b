package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RequestStarted("giftee")
	m.RequestStarted("giftee")
	m.RequestStarted("friend")
	assert.Equal(t, int32(3), m.InFlight())

	m.RequestFinished("giftee", 2*time.Millisecond, nil)
	m.RequestFinished("giftee", 4*time.Millisecond, errors.New("boom"))
	m.StaleDiscarded("giftee")

	giftee := m.Endpoint("giftee")
	assert.Equal(t, int64(2), giftee.Requests)
	assert.Equal(t, int64(1), giftee.Successes)
	assert.Equal(t, int64(1), giftee.Failures)
	assert.Equal(t, int64(1), giftee.Stale)
	assert.Equal(t, int64(3), m.GetRequestCount())
	assert.Equal(t, int32(1), m.InFlight())

	info := m.Snapshot()
	assert.Equal(t, "3", info["total_requests_processed"])
	assert.Equal(t, "2", info["endpoint_giftee_requests"])
	assert.Equal(t, "3000", info["endpoint_giftee_avg_time_us"])
	assert.Equal(t, "1", info["endpoint_friend_requests"])
	_, hasAvg := info["endpoint_friend_avg_time_us"]
	assert.False(t, hasAvg, "no average before any request completes")

	assert.Equal(t, EndpointStats{}, m.Endpoint("unknown"))
}
