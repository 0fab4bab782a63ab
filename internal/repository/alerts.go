package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"healthwatch/internal/models"
)

// AlertsRepository persists generated alerts to PostgreSQL for the
// long-term history. The in-memory managers stay authoritative for the
// live window; this table is the audit trail.
type AlertsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertsRepository creates an alerts repository.
func NewAlertsRepository(db *sql.DB, logger *zap.Logger) *AlertsRepository {
	return &AlertsRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAlert inserts one alert. Alert ids are derived from type and
// trigger timestamp, so re-evaluation can hand the same alert over
// twice; ON CONFLICT makes the insert idempotent.
func (r *AlertsRepository) CreateAlert(ctx context.Context, subjectID string, alert models.Alert) error {
	if subjectID == "" {
		return fmt.Errorf("subject_id is required")
	}
	if alert.ID == "" {
		return fmt.Errorf("alert id is required")
	}

	query := `
		INSERT INTO alerts (
			alert_id,
			subject_id,
			alert_type,
			title,
			description,
			metric,
			metric_value,
			recommendation,
			triggered_at,
			read
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (alert_id, subject_id) DO NOTHING
	`

	var metric sql.NullString
	if alert.Metric != "" {
		metric = sql.NullString{String: alert.Metric, Valid: true}
	}
	var value sql.NullFloat64
	if alert.Value != nil {
		value = sql.NullFloat64{Float64: *alert.Value, Valid: true}
	}
	var recommendation sql.NullString
	if alert.Recommendation != "" {
		recommendation = sql.NullString{String: alert.Recommendation, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		subjectID,
		string(alert.Type),
		alert.Title,
		alert.Description,
		metric,
		value,
		recommendation,
		alert.Timestamp,
		alert.Read,
	)

	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// MarkAlertRead flips the read flag. A missing row is not an error:
// the in-memory manager may retain alerts that predate the sink.
func (r *AlertsRepository) MarkAlertRead(ctx context.Context, subjectID, alertID string) error {
	if subjectID == "" {
		return fmt.Errorf("subject_id is required")
	}
	if alertID == "" {
		return fmt.Errorf("alert_id is required")
	}

	query := `
		UPDATE alerts
		SET read = TRUE
		WHERE alert_id = $1
		  AND subject_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, alertID, subjectID)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}

	return nil
}

// ListAlerts returns the most recent alerts for a subject, newest
// first.
func (r *AlertsRepository) ListAlerts(ctx context.Context, subjectID string, limit int) ([]models.Alert, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject_id is required")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT
			alert_id,
			alert_type,
			title,
			description,
			metric,
			metric_value,
			recommendation,
			triggered_at,
			read
		FROM alerts
		WHERE subject_id = $1
		ORDER BY triggered_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var alert models.Alert
		var alertType string
		var metric, recommendation sql.NullString
		var value sql.NullFloat64

		err := rows.Scan(
			&alert.ID,
			&alertType,
			&alert.Title,
			&alert.Description,
			&metric,
			&value,
			&recommendation,
			&alert.Timestamp,
			&alert.Read,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		alert.Type = models.AlertType(alertType)
		if metric.Valid {
			alert.Metric = metric.String
		}
		if value.Valid {
			v := value.Float64
			alert.Value = &v
		}
		if recommendation.Valid {
			alert.Recommendation = recommendation.String
		}

		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

// CountUnread returns the number of unread alerts for a subject.
func (r *AlertsRepository) CountUnread(ctx context.Context, subjectID string) (int, error) {
	if subjectID == "" {
		return 0, fmt.Errorf("subject_id is required")
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE subject_id = $1 AND read = FALSE`,
		subjectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}

	return count, nil
}
