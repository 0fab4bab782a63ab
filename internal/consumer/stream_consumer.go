package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"healthwatch/internal/common/redisutil"
	"healthwatch/internal/config"
	"healthwatch/internal/models"
)

// ReadingSubmitter accepts parsed readings for a subject.
type ReadingSubmitter interface {
	SubmitReading(subjectID string, r models.Reading) error
}

// StreamConsumer reads readings from the Redis stream written by the
// device gateways. Each stream entry carries one ReadingMessage JSON
// document under the "data" field.
type StreamConsumer struct {
	config      *config.Config
	redisClient *redis.Client
	submitter   ReadingSubmitter
	logger      *zap.Logger
}

// NewStreamConsumer creates a stream consumer.
func NewStreamConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	submitter ReadingSubmitter,
	logger *zap.Logger,
) *StreamConsumer {
	return &StreamConsumer{
		config:      cfg,
		redisClient: redisClient,
		submitter:   submitter,
		logger:      logger,
	}
}

// Start runs the consume loop until the context is cancelled. Read
// failures back off exponentially, capped at 30 seconds.
func (c *StreamConsumer) Start(ctx context.Context) error {
	stream := c.config.Ingest.Stream
	if err := redisutil.EnsureGroup(ctx, c.redisClient, stream, c.config.Ingest.ConsumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group for %s: %w", stream, err)
	}

	c.logger.Info("Stream consumer started",
		zap.String("stream", stream),
		zap.String("consumer_group", c.config.Ingest.ConsumerGroup),
		zap.String("consumer_name", c.config.Ingest.ConsumerName),
	)

	backoffDuration := time.Second
	maxBackoff := 30 * time.Second

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := c.consumeStream(ctx, stream); err != nil {
				c.logger.Error("Failed to consume stream",
					zap.Error(err),
					zap.Duration("backoff", backoffDuration),
				)

				select {
				case <-ctx.Done():
					return nil
				case <-time.After(backoffDuration):
					backoffDuration *= 2
					if backoffDuration > maxBackoff {
						backoffDuration = maxBackoff
					}
				}
			} else {
				backoffDuration = time.Second
			}
		}
	}
}

// consumeStream reads one batch and processes each entry. Entry-level
// failures are logged and acknowledged so a bad message cannot wedge
// the group.
func (c *StreamConsumer) consumeStream(ctx context.Context, stream string) error {
	messages, err := redisutil.ReadGroup(
		ctx,
		c.redisClient,
		stream,
		c.config.Ingest.ConsumerGroup,
		c.config.Ingest.ConsumerName,
		c.config.Ingest.BatchSize,
	)
	if err != nil {
		return fmt.Errorf("failed to read from stream: %w", err)
	}

	for _, msg := range messages {
		if err := c.processMessage(msg); err != nil {
			c.logger.Error("Failed to process message",
				zap.String("stream_id", msg.ID),
				zap.Error(err),
			)
		}
		if err := redisutil.Ack(ctx, c.redisClient, stream, c.config.Ingest.ConsumerGroup, msg.ID); err != nil {
			c.logger.Error("Failed to ack message",
				zap.String("stream_id", msg.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (c *StreamConsumer) processMessage(msg redisutil.StreamMessage) error {
	val, ok := msg.Values["data"]
	if !ok {
		return fmt.Errorf("missing data field in message")
	}
	dataStr, ok := val.(string)
	if !ok {
		return fmt.Errorf("invalid data format in message")
	}

	var reading models.ReadingMessage
	if err := json.Unmarshal([]byte(dataStr), &reading); err != nil {
		return fmt.Errorf("failed to unmarshal reading: %w", err)
	}

	if err := c.submitter.SubmitReading(reading.SubjectID, reading.Reading); err != nil {
		return fmt.Errorf("failed to submit reading: %w", err)
	}

	c.logger.Debug("Ingested reading",
		zap.String("subject_id", reading.SubjectID),
		zap.Time("reading_time", reading.Reading.Timestamp),
	)

	return nil
}
