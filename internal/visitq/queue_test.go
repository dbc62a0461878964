package visitq

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/smartlink/internal/clientinfo"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// processorFunc адаптер функции к интерфейсу Processor.
type processorFunc func(ctx context.Context, job Job) error

func (f processorFunc) Process(ctx context.Context, job Job) error {
	return f(ctx, job)
}

// collectSink потокобезопасный сток для проверок в тестах.
type collectSink struct {
	mu        sync.Mutex
	discarded []Job
	done      chan struct{}
}

func newCollectSink() *collectSink {
	return &collectSink{done: make(chan struct{}, 1)}
}

func (s *collectSink) Discard(job Job, _ error) {
	s.mu.Lock()
	s.discarded = append(s.discarded, job)
	s.mu.Unlock()
	select {
	case s.done <- struct{}{}:
	default:
	}
}

func (s *collectSink) jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.discarded...)
}

func TestQueue_ProcessesJob(t *testing.T) {
	processed := make(chan Job, 1)
	queue := NewQueue(processorFunc(func(_ context.Context, job Job) error {
		processed <- job
		return nil
	}), 8, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)

	job := Job{MappingID: 7, FinalURL: "https://example.com/x", Client: clientinfo.ClientInfo{IPAddress: "1.2.3.4"}}
	require.True(t, queue.Enqueue(job))

	select {
	case got := <-processed:
		assert.Equal(t, uint(7), got.MappingID)
		assert.Equal(t, "https://example.com/x", got.FinalURL)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}
}

func TestQueue_RetriesThenSucceeds(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})

	queue := NewQueue(processorFunc(func(_ context.Context, _ Job) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return errors.New("storage hiccup")
		}
		close(done)
		return nil
	}), 8, 1, testLogger(), WithBackoff(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)

	require.True(t, queue.Enqueue(Job{MappingID: 1}))

	select {
	case <-done:
		mu.Lock()
		assert.Equal(t, 2, attempts)
		mu.Unlock()
	case <-time.After(2 * time.Second):
		t.Fatal("job was not retried")
	}
}

func TestQueue_DeadLetterAfterMaxAttempts(t *testing.T) {
	sink := newCollectSink()
	queue := NewQueue(processorFunc(func(_ context.Context, _ Job) error {
		return errors.New("permanent failure")
	}), 8, 1, testLogger(),
		WithBackoff(time.Millisecond),
		WithMaxAttempts(3),
		WithDeadLetterSink(sink),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)

	require.True(t, queue.Enqueue(Job{MappingID: 1}))

	select {
	case <-sink.done:
		discarded := sink.jobs()
		require.Len(t, discarded, 1)
		assert.Equal(t, 3, discarded[0].Attempt)
	case <-time.After(2 * time.Second):
		t.Fatal("job never reached the dead letter sink")
	}
}

func TestQueue_EnqueueFullQueue(t *testing.T) {
	// воркеры не запущены, очередь на одну задачу
	queue := NewQueue(processorFunc(func(context.Context, Job) error { return nil }), 1, 1, testLogger())

	assert.True(t, queue.Enqueue(Job{MappingID: 1}))
	assert.False(t, queue.Enqueue(Job{MappingID: 2}))
}

func TestQueue_WaitReturnsAfterCancel(t *testing.T) {
	queue := NewQueue(processorFunc(func(context.Context, Job) error { return nil }), 8, 4, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	queue.Start(ctx)
	cancel()

	finished := make(chan struct{})
	go func() {
		queue.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after context cancellation")
	}
}
