package queue

//go:generate mockgen -source=queue.go -destination=mocks/mocks.go -package=mocks Sender

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"gatehouse/internal/notification/models"
	"gatehouse/internal/notification/queue/mocks"
)

type QueueSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	sender  *mocks.MockSender
	metrics *Metrics
	logger  *slog.Logger
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sender = mocks.NewMockSender(s.ctrl)
	s.metrics = NewMetricsWithRegistry(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *QueueSuite) newQueue(opts ...Option) *Queue {
	opts = append([]Option{WithLogger(s.logger), WithMetrics(s.metrics)}, opts...)
	return New(s.sender, opts...)
}

func approved(to string) models.Message {
	return models.Message{Kind: models.KindRegistrationApproved, To: to, Subject: "Welcome"}
}

func (s *QueueSuite) TestDeliversQueuedMessages() {
	var wg sync.WaitGroup
	wg.Add(2)
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Message) error { wg.Done(); return nil }).
		Times(2)

	q := s.newQueue(WithWorkers(2))
	s.Require().NoError(q.Enqueue(context.Background(), approved("a@x.com")))
	s.Require().NoError(q.Enqueue(context.Background(), approved("b@x.com")))

	wg.Wait()
	s.Require().NoError(q.Close(context.Background()))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.Sent.WithLabelValues(string(models.KindRegistrationApproved), "ok")))
}

func (s *QueueSuite) TestSendFailureIsSwallowed() {
	done := make(chan struct{})
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Message) error {
			close(done)
			return errors.New("relay unavailable")
		})

	q := s.newQueue()
	s.Require().NoError(q.Enqueue(context.Background(), approved("a@x.com")))
	<-done
	s.Require().NoError(q.Close(context.Background()))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Sent.WithLabelValues(string(models.KindRegistrationApproved), "error")))
}

func (s *QueueSuite) TestFullQueueDrops() {
	started := make(chan struct{})
	release := make(chan struct{})
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Message) error {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
			return nil
		}).
		Times(2)

	q := s.newQueue(WithWorkers(1), WithQueueSize(1))
	s.Require().NoError(q.Enqueue(context.Background(), approved("first@x.com")))
	<-started
	s.Require().NoError(q.Enqueue(context.Background(), approved("second@x.com")))

	err := q.Enqueue(context.Background(), approved("third@x.com"))
	s.ErrorIs(err, ErrQueueFull)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Dropped.WithLabelValues(string(models.KindRegistrationApproved))))

	close(release)
	s.Require().NoError(q.Close(context.Background()))
}

func (s *QueueSuite) TestEnqueueAfterClose() {
	q := s.newQueue()
	s.Require().NoError(q.Close(context.Background()))
	s.Require().NoError(q.Close(context.Background()), "second close is a no-op")

	s.ErrorIs(q.Enqueue(context.Background(), approved("a@x.com")), ErrClosed)
}

func (s *QueueSuite) TestCloseHonoursDeadline() {
	release := make(chan struct{})
	started := make(chan struct{})
	s.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Message) error {
			close(started)
			<-release
			return nil
		})

	q := s.newQueue(WithWorkers(1))
	s.Require().NoError(q.Enqueue(context.Background(), approved("a@x.com")))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s.ErrorIs(q.Close(ctx), context.DeadlineExceeded)
	close(release)
}
