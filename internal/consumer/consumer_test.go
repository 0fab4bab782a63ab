package consumer

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"healthwatch/internal/common/redisutil"
	"healthwatch/internal/config"
	"healthwatch/internal/models"
)

type fakeSubmitter struct {
	submitted []models.ReadingMessage
	fail      bool
}

func (f *fakeSubmitter) SubmitReading(subjectID string, r models.Reading) error {
	if f.fail {
		return fmt.Errorf("submit failed")
	}
	f.submitted = append(f.submitted, models.ReadingMessage{SubjectID: subjectID, Reading: r})
	return nil
}

func sampleMessage() models.ReadingMessage {
	return models.ReadingMessage{
		SubjectID: "subject-1",
		Reading: models.Reading{
			Timestamp:              time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			HeartRate:              72,
			BloodOxygen:            98,
			BloodPressureSystolic:  120,
			BloodPressureDiastolic: 80,
			ActivityLevel:          8500,
			SleepQuality:           85,
		},
	}
}

func TestStreamConsumer_ProcessMessage(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewStreamConsumer(&config.Config{}, nil, sub, zap.NewNop())

	payload, err := json.Marshal(sampleMessage())
	require.NoError(t, err)

	err = c.processMessage(redisutil.StreamMessage{
		ID:     "1-0",
		Values: map[string]interface{}{"data": string(payload)},
	})
	require.NoError(t, err)

	require.Len(t, sub.submitted, 1)
	assert.Equal(t, "subject-1", sub.submitted[0].SubjectID)
	assert.Equal(t, float64(72), sub.submitted[0].Reading.HeartRate)
}

func TestStreamConsumer_ProcessMessage_MalformedPayloads(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewStreamConsumer(&config.Config{}, nil, sub, zap.NewNop())

	// missing data field
	err := c.processMessage(redisutil.StreamMessage{ID: "1-0", Values: map[string]interface{}{}})
	assert.Error(t, err)

	// non-string data
	err = c.processMessage(redisutil.StreamMessage{ID: "1-1", Values: map[string]interface{}{"data": 42}})
	assert.Error(t, err)

	// invalid JSON
	err = c.processMessage(redisutil.StreamMessage{ID: "1-2", Values: map[string]interface{}{"data": "{"}})
	assert.Error(t, err)

	assert.Empty(t, sub.submitted)
}

func TestStreamConsumer_ProcessMessage_SubmitFailure(t *testing.T) {
	sub := &fakeSubmitter{fail: true}
	c := NewStreamConsumer(&config.Config{}, nil, sub, zap.NewNop())

	payload, _ := json.Marshal(sampleMessage())
	err := c.processMessage(redisutil.StreamMessage{
		ID:     "1-0",
		Values: map[string]interface{}{"data": string(payload)},
	})
	assert.Error(t, err)
}

func TestParsePayload_SingleObject(t *testing.T) {
	payload, err := json.Marshal(sampleMessage())
	require.NoError(t, err)

	messages, err := parsePayload(payload)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "subject-1", messages[0].SubjectID)
}

func TestParsePayload_Array(t *testing.T) {
	batch := []models.ReadingMessage{sampleMessage(), sampleMessage()}
	batch[1].SubjectID = "subject-2"

	payload, err := json.Marshal(batch)
	require.NoError(t, err)

	messages, err := parsePayload(payload)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "subject-2", messages[1].SubjectID)
}

func TestParsePayload_Invalid(t *testing.T) {
	_, err := parsePayload(nil)
	assert.Error(t, err)

	_, err = parsePayload([]byte("   "))
	assert.Error(t, err)

	_, err = parsePayload([]byte("not json"))
	assert.Error(t, err)
}

func TestMQTTConsumer_HandleMessage_Batch(t *testing.T) {
	sub := &fakeSubmitter{}
	c := &MQTTConsumer{config: &config.Config{}, submitter: sub, logger: zap.NewNop()}

	batch := []models.ReadingMessage{sampleMessage(), sampleMessage()}
	batch[1].SubjectID = "subject-2"

	payload, err := json.Marshal(batch)
	require.NoError(t, err)

	require.NoError(t, c.handleMessage("healthwatch/readings/gw-1", payload))
	assert.Len(t, sub.submitted, 2)
}

func TestMQTTConsumer_HandleMessage_SubmitFailureDoesNotAbortBatch(t *testing.T) {
	sub := &fakeSubmitter{fail: true}
	c := &MQTTConsumer{config: &config.Config{}, submitter: sub, logger: zap.NewNop()}

	payload, err := json.Marshal([]models.ReadingMessage{sampleMessage(), sampleMessage()})
	require.NoError(t, err)

	// submitter errors are logged per reading, not surfaced
	assert.NoError(t, c.handleMessage("healthwatch/readings/gw-1", payload))
}

func TestMQTTConsumer_HandleMessage_BadPayload(t *testing.T) {
	c := &MQTTConsumer{config: &config.Config{}, submitter: &fakeSubmitter{}, logger: zap.NewNop()}
	assert.Error(t, c.handleMessage("healthwatch/readings/gw-1", []byte("nope")))
}
