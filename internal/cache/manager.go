package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"healthwatch/internal/models"
)

// Manager maintains the read-path cache for per-subject alerts and
// insights. Dashboard readers hit these keys instead of the monitors.
type Manager struct {
	kv            KVStore
	keyPrefix     string
	alertsSuffix  string
	insightSuffix string
	ttl           time.Duration
	logger        *zap.Logger
}

// NewManager creates a cache manager.
func NewManager(kv KVStore, keyPrefix, alertsSuffix, insightSuffix string, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		kv:            kv,
		keyPrefix:     keyPrefix,
		alertsSuffix:  alertsSuffix,
		insightSuffix: insightSuffix,
		ttl:           ttl,
		logger:        logger,
	}
}

func (m *Manager) alertsKey(subjectID string) string {
	return fmt.Sprintf("%s%s%s", m.keyPrefix, subjectID, m.alertsSuffix)
}

func (m *Manager) insightKey(subjectID string) string {
	return fmt.Sprintf("%s%s%s", m.keyPrefix, subjectID, m.insightSuffix)
}

// UpdateAlerts writes the current alert list for a subject.
func (m *Manager) UpdateAlerts(ctx context.Context, subjectID string, alerts []models.Alert) error {
	jsonData, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}

	key := m.alertsKey(subjectID)
	if err := m.kv.Set(ctx, key, string(jsonData), m.ttl); err != nil {
		return fmt.Errorf("failed to set alerts cache: %w", err)
	}

	m.logger.Debug("Updated alerts cache",
		zap.String("subject_id", subjectID),
		zap.String("key", key),
		zap.Int("alert_count", len(alerts)),
	)

	return nil
}

// UpdateInsight writes the current insight for a subject.
func (m *Manager) UpdateInsight(ctx context.Context, subjectID string, ins models.HealthInsight) error {
	jsonData, err := json.Marshal(ins)
	if err != nil {
		return fmt.Errorf("failed to marshal insight: %w", err)
	}

	key := m.insightKey(subjectID)
	if err := m.kv.Set(ctx, key, string(jsonData), m.ttl); err != nil {
		return fmt.Errorf("failed to set insight cache: %w", err)
	}

	m.logger.Debug("Updated insight cache",
		zap.String("subject_id", subjectID),
		zap.String("key", key),
	)

	return nil
}

// GetAlerts reads the cached alert list. ErrCacheMiss when absent.
func (m *Manager) GetAlerts(ctx context.Context, subjectID string) ([]models.Alert, error) {
	val, err := m.kv.Get(ctx, m.alertsKey(subjectID))
	if err != nil {
		return nil, err
	}

	var alerts []models.Alert
	if err := json.Unmarshal([]byte(val), &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached alerts: %w", err)
	}
	return alerts, nil
}

// GetInsight reads the cached insight. ErrCacheMiss when absent.
func (m *Manager) GetInsight(ctx context.Context, subjectID string) (*models.HealthInsight, error) {
	val, err := m.kv.Get(ctx, m.insightKey(subjectID))
	if err != nil {
		return nil, err
	}

	var ins models.HealthInsight
	if err := json.Unmarshal([]byte(val), &ins); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached insight: %w", err)
	}
	return &ins, nil
}
