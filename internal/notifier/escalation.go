package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthwatch/internal/models"
)

// Channel identifies how a notification is delivered.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Notification is one outbound escalation record.
type Notification struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	AlertID   string    `json:"alert_id"`
	Channel   Channel   `json:"channel"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

// EscalationNotifier fans critical alerts out to the configured
// emergency contact and caregiver emails. Delivery is handed to the
// downstream gateway via structured logs; the notifier itself only
// builds and records the notifications.
type EscalationNotifier struct {
	emergencyContact string
	caregiverEmails  []string
	logger           *zap.Logger
}

// NewEscalationNotifier creates a notifier from the configured
// contacts. Empty contacts are allowed; escalation then produces no
// notifications.
func NewEscalationNotifier(emergencyContact string, caregiverEmails []string, logger *zap.Logger) *EscalationNotifier {
	return &EscalationNotifier{
		emergencyContact: emergencyContact,
		caregiverEmails:  caregiverEmails,
		logger:           logger,
	}
}

// NotifyCritical builds and dispatches notifications for one critical
// alert. Non-critical alerts are ignored.
func (n *EscalationNotifier) NotifyCritical(ctx context.Context, subjectID string, alert models.Alert) ([]Notification, error) {
	if alert.Type != models.AlertCritical {
		return nil, nil
	}

	message := fmt.Sprintf("[HealthWatch] %s: %s", alert.Title, alert.Description)

	var notifications []Notification
	if n.emergencyContact != "" {
		notifications = append(notifications, Notification{
			ID:        uuid.New().String(),
			SubjectID: subjectID,
			AlertID:   alert.ID,
			Channel:   ChannelSMS,
			Recipient: n.emergencyContact,
			Message:   message,
			SentAt:    time.Now(),
		})
	}
	for _, email := range n.caregiverEmails {
		notifications = append(notifications, Notification{
			ID:        uuid.New().String(),
			SubjectID: subjectID,
			AlertID:   alert.ID,
			Channel:   ChannelEmail,
			Recipient: email,
			Message:   message,
			SentAt:    time.Now(),
		})
	}

	for _, notification := range notifications {
		select {
		case <-ctx.Done():
			return notifications, ctx.Err()
		default:
		}

		n.logger.Info("Dispatched escalation notification",
			zap.String("notification_id", notification.ID),
			zap.String("subject_id", notification.SubjectID),
			zap.String("alert_id", notification.AlertID),
			zap.String("channel", string(notification.Channel)),
			zap.String("recipient", notification.Recipient),
		)
	}

	return notifications, nil
}
