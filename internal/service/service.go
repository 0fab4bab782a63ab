package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"healthwatch/internal/config"
	"healthwatch/internal/metrics"
	"healthwatch/internal/models"
	"healthwatch/internal/monitor"
	"healthwatch/internal/notifier"
)

// AlertSink persists generated alerts outside the live window.
type AlertSink interface {
	CreateAlert(ctx context.Context, subjectID string, alert models.Alert) error
	MarkAlertRead(ctx context.Context, subjectID, alertID string) error
}

// Escalator fans critical alerts out to the configured contacts.
type Escalator interface {
	NotifyCritical(ctx context.Context, subjectID string, alert models.Alert) ([]notifier.Notification, error)
}

// AlertCache maintains the read-path cache for dashboards.
type AlertCache interface {
	UpdateAlerts(ctx context.Context, subjectID string, alerts []models.Alert) error
	UpdateInsight(ctx context.Context, subjectID string, ins models.HealthInsight) error
}

// HealthService owns one monitor per subject and drives the periodic
// evaluation loop. Sink, escalator and cache are optional; a nil
// dependency disables that side effect. Their failures never stop the
// loop or fail an evaluation pass.
type HealthService struct {
	config    *config.Config
	logger    *zap.Logger
	sink      AlertSink
	escalator Escalator
	cache     AlertCache

	mu       sync.RWMutex
	monitors map[string]*monitor.Monitor
}

// NewHealthService creates the service.
func NewHealthService(
	cfg *config.Config,
	sink AlertSink,
	escalator Escalator,
	cache AlertCache,
	logger *zap.Logger,
) *HealthService {
	return &HealthService{
		config:    cfg,
		logger:    logger,
		sink:      sink,
		escalator: escalator,
		cache:     cache,
		monitors:  make(map[string]*monitor.Monitor),
	}
}

// SubmitReading ingests one reading for a subject, creating the
// subject's monitor on first contact.
func (s *HealthService) SubmitReading(subjectID string, r models.Reading) error {
	if subjectID == "" {
		metrics.ReadingsRejected.WithLabelValues("missing_subject").Inc()
		return fmt.Errorf("subject_id is required")
	}
	if r.Timestamp.IsZero() {
		metrics.ReadingsRejected.WithLabelValues("missing_timestamp").Inc()
		return fmt.Errorf("reading timestamp is required")
	}

	s.monitorFor(subjectID).Ingest(r)
	metrics.ReadingsIngested.Inc()
	return nil
}

// monitorFor returns the subject's monitor, creating it if needed.
func (s *HealthService) monitorFor(subjectID string) *monitor.Monitor {
	s.mu.RLock()
	m, ok := s.monitors[subjectID]
	s.mu.RUnlock()
	if ok {
		return m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok = s.monitors[subjectID]; ok {
		return m
	}

	m = monitor.New(subjectID, s.config.Monitor.WindowSize, s.logger)
	s.monitors[subjectID] = m
	metrics.ActiveSubjects.Set(float64(len(s.monitors)))
	s.logger.Info("Started monitoring subject", zap.String("subject_id", subjectID))
	return m
}

func (s *HealthService) lookup(subjectID string) (*monitor.Monitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.monitors[subjectID]
	if !ok {
		return nil, fmt.Errorf("unknown subject: %s", subjectID)
	}
	return m, nil
}

// ListAlerts returns the retained alerts for a subject, newest first.
func (s *HealthService) ListAlerts(subjectID string) ([]models.Alert, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	return m.Alerts(), nil
}

// MarkRead marks one alert read and mirrors the flag to the sink.
// The sink write is best-effort.
func (s *HealthService) MarkRead(ctx context.Context, subjectID, alertID string) (bool, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return false, err
	}

	changed := m.MarkRead(alertID)
	if changed && s.sink != nil {
		if err := s.sink.MarkAlertRead(ctx, subjectID, alertID); err != nil {
			s.logger.Error("Failed to persist read flag",
				zap.String("subject_id", subjectID),
				zap.String("alert_id", alertID),
				zap.Error(err),
			)
		}
	}
	return changed, nil
}

// GetInsight returns the current score, risk level and trends.
func (s *HealthService) GetInsight(subjectID string) (models.HealthInsight, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return models.HealthInsight{}, err
	}
	return m.Insight(), nil
}

// GetRecommendations returns the active recommendations.
func (s *HealthService) GetRecommendations(subjectID string) ([]models.Recommendation, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	return m.Recommendations(), nil
}

// GetPredictions returns the forward-looking statements.
func (s *HealthService) GetPredictions(subjectID string) ([]models.Prediction, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	return m.Predictions(), nil
}

// Averages returns per-metric means over the trailing period.
func (s *HealthService) Averages(subjectID string, period time.Duration) (models.MetricAverages, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return models.MetricAverages{}, err
	}
	return m.AveragesSince(time.Now().Add(-period)), nil
}

// Range returns per-metric min/max over the trailing period.
func (s *HealthService) Range(subjectID string, period time.Duration) (models.MetricRanges, error) {
	m, err := s.lookup(subjectID)
	if err != nil {
		return models.MetricRanges{}, err
	}
	return m.RangeSince(time.Now().Add(-period)), nil
}

// Subjects returns the ids of all monitored subjects.
func (s *HealthService) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.monitors))
	for id := range s.monitors {
		ids = append(ids, id)
	}
	return ids
}

// Run drives the periodic evaluation until the context is cancelled.
func (s *HealthService) Run(ctx context.Context) error {
	s.logger.Info("Evaluation loop started",
		zap.Duration("tick_interval", s.config.Monitor.TickInterval),
	)

	ticker := time.NewTicker(s.config.Monitor.TickInterval)
	defer ticker.Stop()

	// run one pass immediately
	if err := s.evaluateAll(ctx); err != nil {
		s.logger.Error("Failed to evaluate subjects on startup", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Evaluation loop stopped")
			return nil
		case <-ticker.C:
			if err := s.evaluateAll(ctx); err != nil {
				s.logger.Error("Failed to evaluate subjects", zap.Error(err))
			}
		}
	}
}

// evaluateAll runs one evaluation pass over every monitor, in batches.
func (s *HealthService) evaluateAll(ctx context.Context) error {
	s.mu.RLock()
	snapshot := make([]*monitor.Monitor, 0, len(s.monitors))
	for _, m := range s.monitors {
		snapshot = append(snapshot, m)
	}
	s.mu.RUnlock()

	s.logger.Debug("Evaluating subjects", zap.Int("subject_count", len(snapshot)))

	batchSize := s.config.Monitor.Evaluation.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	for i := 0; i < len(snapshot); i += batchSize {
		end := i + batchSize
		if end > len(snapshot) {
			end = len(snapshot)
		}

		if err := s.evaluateBatch(ctx, snapshot[i:end]); err != nil {
			s.logger.Error("Failed to evaluate batch",
				zap.Int("batch_start", i),
				zap.Int("batch_end", end),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *HealthService) evaluateBatch(ctx context.Context, batch []*monitor.Monitor) error {
	for _, m := range batch {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		created := m.Evaluate()
		metrics.EvaluationLatency.Observe(time.Since(start).Seconds())

		for _, alert := range created {
			metrics.AlertsCreated.WithLabelValues(string(alert.Type)).Inc()
			s.persistAlert(ctx, m.SubjectID(), alert)
			s.escalate(ctx, m.SubjectID(), alert)
		}

		s.refreshCache(ctx, m)
	}

	return nil
}

func (s *HealthService) persistAlert(ctx context.Context, subjectID string, alert models.Alert) {
	if s.sink == nil {
		return
	}
	if err := s.sink.CreateAlert(ctx, subjectID, alert); err != nil {
		s.logger.Error("Failed to persist alert",
			zap.String("subject_id", subjectID),
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
	}
}

func (s *HealthService) escalate(ctx context.Context, subjectID string, alert models.Alert) {
	if s.escalator == nil || alert.Type != models.AlertCritical {
		return
	}

	notifications, err := s.escalator.NotifyCritical(ctx, subjectID, alert)
	if err != nil {
		s.logger.Error("Failed to escalate alert",
			zap.String("subject_id", subjectID),
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
		return
	}
	for _, n := range notifications {
		metrics.EscalationsSent.WithLabelValues(string(n.Channel)).Inc()
	}
}

func (s *HealthService) refreshCache(ctx context.Context, m *monitor.Monitor) {
	if s.cache == nil {
		return
	}

	subjectID := m.SubjectID()
	if err := s.cache.UpdateAlerts(ctx, subjectID, m.Alerts()); err != nil {
		metrics.CacheWrites.WithLabelValues("alerts", "error").Inc()
		s.logger.Error("Failed to update alerts cache",
			zap.String("subject_id", subjectID),
			zap.Error(err),
		)
	} else {
		metrics.CacheWrites.WithLabelValues("alerts", "ok").Inc()
	}

	if err := s.cache.UpdateInsight(ctx, subjectID, m.Insight()); err != nil {
		metrics.CacheWrites.WithLabelValues("insight", "error").Inc()
		s.logger.Error("Failed to update insight cache",
			zap.String("subject_id", subjectID),
			zap.Error(err),
		)
	} else {
		metrics.CacheWrites.WithLabelValues("insight", "ok").Inc()
	}
}
