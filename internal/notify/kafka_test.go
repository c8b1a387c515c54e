package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"appointments-server/internal/models"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w, zap.NewNop())
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), models.AppointmentEvent{
		Type:          models.EventAppointmentCreated,
		AppointmentID: 7,
		UserID:        1,
		ProviderID:    42,
		Date:          date,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, models.EventAppointmentCreated, headerValue(msg, HeaderEventType))
	assert.NotEmpty(t, headerValue(msg, HeaderEventID))

	var decoded models.AppointmentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, uint(7), decoded.AppointmentID)
	assert.True(t, decoded.Date.Equal(date))
	assert.False(t, decoded.OccurredAt.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewKafkaPublisher(&recordingWriter{err: boom}, zap.NewNop())

	err := p.Publish(context.Background(), models.AppointmentEvent{Type: models.EventAppointmentCanceled, ProviderID: 1})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), models.EventAppointmentCanceled)
}
