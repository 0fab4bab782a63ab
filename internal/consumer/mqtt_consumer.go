package consumer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"healthwatch/internal/common/mqtt"
	"healthwatch/internal/config"
	"healthwatch/internal/models"
)

// MQTTConsumer ingests readings published by wearable gateways over
// MQTT. A payload is either a single ReadingMessage or an array of
// them; gateways batch while offline and flush on reconnect.
type MQTTConsumer struct {
	config    *config.Config
	client    *mqtt.Client
	submitter ReadingSubmitter
	logger    *zap.Logger
}

// NewMQTTConsumer creates an MQTT consumer.
func NewMQTTConsumer(
	cfg *config.Config,
	client *mqtt.Client,
	submitter ReadingSubmitter,
	logger *zap.Logger,
) *MQTTConsumer {
	return &MQTTConsumer{
		config:    cfg,
		client:    client,
		submitter: submitter,
		logger:    logger,
	}
}

// Start subscribes to the reading topic.
func (c *MQTTConsumer) Start() error {
	topic := c.config.MQTT.Topic
	if err := c.client.Subscribe(topic, c.config.MQTT.QoS, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	c.logger.Info("MQTT consumer started", zap.String("topic", topic))
	return nil
}

// handleMessage parses one payload and submits every reading in it.
// A failed reading does not stop the rest of the batch.
func (c *MQTTConsumer) handleMessage(topic string, payload []byte) error {
	messages, err := parsePayload(payload)
	if err != nil {
		return fmt.Errorf("failed to parse payload on %s: %w", topic, err)
	}

	var failed int
	for _, msg := range messages {
		if err := c.submitter.SubmitReading(msg.SubjectID, msg.Reading); err != nil {
			failed++
			c.logger.Error("Failed to submit reading",
				zap.String("topic", topic),
				zap.String("subject_id", msg.SubjectID),
				zap.Error(err),
			)
		}
	}

	c.logger.Debug("Processed MQTT payload",
		zap.String("topic", topic),
		zap.Int("reading_count", len(messages)),
		zap.Int("failed", failed),
	)

	return nil
}

func parsePayload(payload []byte) ([]models.ReadingMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	if trimmed[0] == '[' {
		var messages []models.ReadingMessage
		if err := json.Unmarshal(trimmed, &messages); err != nil {
			return nil, err
		}
		return messages, nil
	}

	var msg models.ReadingMessage
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return nil, err
	}
	return []models.ReadingMessage{msg}, nil
}
