package visitq

import (
	"context"
	"sync"
	"time"

	"github.com/fsdevblog/smartlink/internal/clientinfo"

	"github.com/sirupsen/logrus"
)

// Параметры повторов по умолчанию: фиксированная пауза 60 секунд,
// не больше трех попыток на задачу.
const (
	DefaultBackoff     = 60 * time.Second
	DefaultMaxAttempts = 3
)

// Job типизированная задача записи визита.
type Job struct {
	MappingID uint
	Client    clientinfo.ClientInfo
	FinalURL  string
	Attempt   int
}

// Processor обрабатывает одну задачу.
type Processor interface {
	Process(ctx context.Context, job Job) error
}

// DeadLetterSink принимает задачи, исчерпавшие попытки. Сюда же попадают
// задачи, которые не удалось поставить на повтор из-за переполнения очереди.
type DeadLetterSink interface {
	Discard(job Job, err error)
}

// logSink сток по умолчанию: пишет потерянную задачу в операционный лог.
type logSink struct {
	logger *logrus.Entry
}

func (l *logSink) Discard(job Job, err error) {
	l.logger.WithError(err).WithFields(logrus.Fields{
		"mappingID": job.MappingID,
		"finalURL":  job.FinalURL,
		"attempt":   job.Attempt,
	}).Error("visit job discarded after retries")
}

// Queue очередь записи визитов: продюсер кладет задачи не блокируясь,
// отдельные воркеры разбирают их с семантикой at-least-once. Провал
// обработки ставит задачу на повтор с фиксированной паузой; после
// исчерпания попыток задача уходит в DeadLetterSink.
type Queue struct {
	jobs        chan Job
	processor   Processor
	sink        DeadLetterSink
	backoff     time.Duration
	maxAttempts int
	workers     int
	logger      *logrus.Entry

	wg sync.WaitGroup
}

// Option настройка очереди.
type Option func(*Queue)

// WithBackoff переопределяет паузу между повторами (в тестах - миллисекунды).
func WithBackoff(d time.Duration) Option {
	return func(q *Queue) { q.backoff = d }
}

// WithMaxAttempts переопределяет лимит попыток.
func WithMaxAttempts(n int) Option {
	return func(q *Queue) { q.maxAttempts = n }
}

// WithDeadLetterSink переопределяет сток потерянных задач.
func WithDeadLetterSink(sink DeadLetterSink) Option {
	return func(q *Queue) { q.sink = sink }
}

func NewQueue(processor Processor, size, workers int, logger *logrus.Logger, opts ...Option) *Queue {
	if size <= 0 {
		size = 1024
	}
	if workers <= 0 {
		workers = 1
	}

	entry := logger.WithField("module", "visitq")
	q := &Queue{
		jobs:        make(chan Job, size),
		processor:   processor,
		sink:        &logSink{logger: entry},
		backoff:     DefaultBackoff,
		maxAttempts: DefaultMaxAttempts,
		workers:     workers,
		logger:      entry,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue кладет задачу в очередь не блокируясь. Возвращает false при
// переполнении - вызывающая сторона лишь логирует потерю, редирект
// не должен от этого страдать.
func (q *Queue) Enqueue(job Job) bool {
	select {
	case q.jobs <- job:
		return true
	default:
		return false
	}
}

// Start запускает воркеры. Возврат из всех воркеров происходит после
// отмены контекста.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
}

// Wait блокируется до завершения всех воркеров.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.process(ctx, job)
		}
	}
}

func (q *Queue) process(ctx context.Context, job Job) {
	err := q.processor.Process(ctx, job)
	if err == nil {
		return
	}

	job.Attempt++
	if job.Attempt >= q.maxAttempts {
		q.sink.Discard(job, err)
		return
	}

	q.logger.WithError(err).Warnf("visit job for mapping %d failed, retry %d/%d in %s",
		job.MappingID, job.Attempt, q.maxAttempts-1, q.backoff)

	// повтор планируется таймером, воркер не спит и продолжает разбирать очередь
	retryJob := job
	time.AfterFunc(q.backoff, func() {
		if !q.Enqueue(retryJob) {
			q.sink.Discard(retryJob, err)
		}
	})
}
