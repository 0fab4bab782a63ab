package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthwatch/internal/cache"
	"healthwatch/internal/models"
)

func newManager(kv cache.KVStore) *cache.Manager {
	return cache.NewManager(kv, "health:subject:", ":alerts", ":insight", 30*time.Second, zap.NewNop())
}

func TestManager_AlertsRoundTrip(t *testing.T) {
	kv := newFakeKVStore()
	m := newManager(kv)
	ctx := context.Background()

	alerts := []models.Alert{
		{
			ID:        "hr-anomaly-1722500000000",
			Type:      models.AlertCritical,
			Title:     "Elevated Heart Rate Alert",
			Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, m.UpdateAlerts(ctx, "subject-1", alerts))

	got, err := m.GetAlerts(ctx, "subject-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alerts[0].ID, got[0].ID)
	assert.Equal(t, models.AlertCritical, got[0].Type)
}

func TestManager_InsightRoundTrip(t *testing.T) {
	kv := newFakeKVStore()
	m := newManager(kv)
	ctx := context.Background()

	ins := models.HealthInsight{
		OverallScore: 85,
		RiskLevel:    models.RiskLow,
		Trends: models.Trends{
			HeartRate:   models.TrendStable,
			BloodOxygen: models.TrendStable,
			Activity:    models.TrendIncreasing,
		},
	}

	require.NoError(t, m.UpdateInsight(ctx, "subject-1", ins))

	got, err := m.GetInsight(ctx, "subject-1")
	require.NoError(t, err)
	assert.Equal(t, ins, *got)
}

func TestManager_MissReturnsSentinel(t *testing.T) {
	m := newManager(newFakeKVStore())

	_, err := m.GetAlerts(context.Background(), "nobody")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	_, err = m.GetInsight(context.Background(), "nobody")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestRedisKVStore(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	kv := cache.NewRedisKVStore(client)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, kv.Set(ctx, "k", "v", 30*time.Second))
	val, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	// TTL expiry
	srv.FastForward(31 * time.Second)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestRedisKVStore_WithManager(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	m := newManager(cache.NewRedisKVStore(client))
	ctx := context.Background()

	ins := models.HealthInsight{OverallScore: 95, RiskLevel: models.RiskLow}
	require.NoError(t, m.UpdateInsight(ctx, "subject-9", ins))

	// keys follow the prefix/suffix scheme
	assert.True(t, srv.Exists("health:subject:subject-9:insight"))
}
