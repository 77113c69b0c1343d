package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/notification/models"
	"gatehouse/internal/platform/kafka/producer"
)

func message() models.Message {
	return models.Message{
		ID:        "n-1",
		Kind:      models.KindRegistrationApproved,
		To:        "a@x.com",
		Subject:   "Your registration was approved",
		Body:      "Welcome home",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLog(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, s.Send(context.Background(), message()))
	assert.Contains(t, buf.String(), `"kind":"registration.approved"`)
	assert.Contains(t, buf.String(), `"to":"a@x.com"`)
}

func TestRelaySender(t *testing.T) {
	t.Run("posts json", func(t *testing.T) {
		var got models.Message
		var key string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key = r.Header.Get("Idempotency-Key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		require.NoError(t, NewRelay(srv.URL, time.Second).Send(context.Background(), message()))
		assert.Equal(t, "a@x.com", got.To)
		assert.Equal(t, "n-1", key)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := NewRelay(srv.URL, time.Second).Send(context.Background(), message())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}

type recordingProducer struct {
	got []*producer.Message
}

func (p *recordingProducer) Produce(_ context.Context, msg *producer.Message) error {
	p.got = append(p.got, msg)
	return nil
}

func TestKafkaSender(t *testing.T) {
	p := &recordingProducer{}
	require.NoError(t, NewKafka(p, "gatehouse.notifications").Send(context.Background(), message()))

	require.Len(t, p.got, 1)
	assert.Equal(t, "gatehouse.notifications", p.got[0].Topic)
	assert.Equal(t, []byte("a@x.com"), p.got[0].Key)
	assert.Equal(t, "registration.approved", p.got[0].Headers["kind"])

	var decoded models.Message
	require.NoError(t, json.Unmarshal(p.got[0].Value, &decoded))
	assert.Equal(t, "Welcome home", decoded.Body)
}

type fakeChannel struct {
	declares  int
	published []amqp.Publishing
	keys      []string
}

func (c *fakeChannel) ExchangeDeclare(_, kind string, durable, _, _, _ bool, _ amqp.Table) error {
	if kind != "topic" || !durable {
		panic("unexpected exchange settings")
	}
	c.declares++
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error { return nil }

func TestRabbitMQSender(t *testing.T) {
	ch := &fakeChannel{}
	s := NewRabbitMQ(ch, "gatehouse", "notifications")

	require.NoError(t, s.Send(context.Background(), message()))
	rejected := message()
	rejected.Kind = models.KindRegistrationRejected
	require.NoError(t, s.Send(context.Background(), rejected))

	assert.Equal(t, 1, ch.declares, "exchange declared once")
	assert.Equal(t, []string{"notifications.registration.approved", "notifications.registration.rejected"}, ch.keys)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
	require.NoError(t, s.Close())
}
