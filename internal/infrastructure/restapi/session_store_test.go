package restapi

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wallet_risk_analyzer/internal/app/port"
	"wallet_risk_analyzer/internal/pkg/logger"
	"wallet_risk_analyzer/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSession struct {
	port.AnalysisSession
	closes *atomic.Int32
}

func (c countingSession) Close() {
	c.closes.Add(1)
}

func TestSessionStore_GetExtendsLifetime(t *testing.T) {
	store := NewSessionStore(80*time.Millisecond, time.Hour, func() port.AnalysisSession {
		return countingSession{closes: new(atomic.Int32)}
	}, logger.NewNopLogger())

	id, _ := store.Create()
	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		_, ok := store.Get(id)
		require.True(t, ok, "session expired despite access")
	}
}

func TestSessionStore_GetDoesNotReviveExpired(t *testing.T) {
	var closes atomic.Int32
	store := NewSessionStore(10*time.Millisecond, time.Hour, func() port.AnalysisSession {
		return countingSession{closes: &closes}
	}, logger.NewNopLogger())
	before := testutil.ToFloat64(metrics.ActiveSessions)

	id, _ := store.Create()
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(id)
	assert.False(t, ok)

	store.cache.DeleteExpired()
	assert.Zero(t, store.Count())
	assert.Equal(t, int32(1), closes.Load())
	assert.Equal(t, before, testutil.ToFloat64(metrics.ActiveSessions))
}

func TestSessionStore_ConcurrentGetDuringEviction(t *testing.T) {
	const sessions = 20
	var closes atomic.Int32
	store := NewSessionStore(5*time.Millisecond, time.Millisecond, func() port.AnalysisSession {
		return countingSession{closes: &closes}
	}, logger.NewNopLogger())
	before := testutil.ToFloat64(metrics.ActiveSessions)

	ids := make([]string, sessions)
	for i := range ids {
		ids[i], _ = store.Create()
	}

	var wg sync.WaitGroup
	stop := time.Now().Add(50 * time.Millisecond)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for time.Now().Before(stop) {
				store.Get(id)
			}
		}(id)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return closes.Load() >= sessions && testutil.ToFloat64(metrics.ActiveSessions) <= before
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, store.Count())
	assert.Equal(t, int32(sessions), closes.Load(), "each session is closed exactly once")
	assert.Equal(t, before, testutil.ToFloat64(metrics.ActiveSessions))
}
