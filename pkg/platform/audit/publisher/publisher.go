// Package publisher fans audit events out to a Store, either inline or through a
// bounded background queue.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	audit "samiti/pkg/platform/audit"
	"samiti/pkg/requestcontext"
)

const (
	defaultAppendTimeout = 5 * time.Second
	defaultCloseTimeout  = 10 * time.Second
)

var (
	// ErrBufferFull is returned by Emit in async mode when the queue is saturated.
	ErrBufferFull = errors.New("audit buffer full")
	// ErrCloseTimeout is returned by Close when the queue did not drain in time.
	ErrCloseTimeout = errors.New("audit queue did not drain before close timeout")
)

// FailureCounter records dropped events; satisfied by the platform metrics.
type FailureCounter interface {
	IncrementAuditPublishFailed(action string)
}

// Publisher enriches events with request metadata and hands them to a Store.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics FailureCounter

	queue         chan audit.Event
	appendTimeout time.Duration
	closeTimeout  time.Duration
	wg            sync.WaitGroup
	once          sync.Once
	closeErr      error
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the failure counter.
func WithMetrics(m FailureCounter) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithAsyncBuffer moves Store writes to a background worker with a queue of the
// given size. Emit never blocks in this mode.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.queue = make(chan audit.Event, size)
		}
	}
}

// WithAppendTimeout bounds each background Store write.
func WithAppendTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.appendTimeout = d
		}
	}
}

// WithCloseTimeout bounds how long Close waits for the queue to drain.
func WithCloseTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.closeTimeout = d
		}
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:         store,
		logger:        slog.Default(),
		appendTimeout: defaultAppendTimeout,
		closeTimeout:  defaultCloseTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.queue != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit fills timestamp, category and request metadata, then writes or enqueues the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event = enrich(ctx, event)

	if p.queue == nil {
		if err := p.store.Append(ctx, event); err != nil {
			p.fail(ctx, event, err)
			return err
		}
		return nil
	}

	select {
	case p.queue <- event:
		return nil
	default:
		p.fail(ctx, event, ErrBufferFull)
		return ErrBufferFull
	}
}

// Close stops accepting events and waits up to the close timeout for the
// queue to drain. Events still queued after that are abandoned.
func (p *Publisher) Close() error {
	p.once.Do(func() {
		if p.queue == nil {
			return
		}
		close(p.queue)
		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(p.closeTimeout):
			p.closeErr = fmt.Errorf("%w: %d events pending", ErrCloseTimeout, len(p.queue))
		}
	})
	return p.closeErr
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.queue {
		p.appendQueued(event)
	}
}

// appendQueued writes one event with its own deadline; the request context is
// gone by the time the worker gets to it.
func (p *Publisher) appendQueued(event audit.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), p.appendTimeout)
	defer cancel()
	if err := p.store.Append(ctx, event); err != nil {
		p.fail(ctx, event, err)
	}
}

func (p *Publisher) fail(ctx context.Context, event audit.Event, err error) {
	p.logger.WarnContext(ctx, "audit publish failed",
		"action", event.Action,
		"error", err,
		"request_id", event.RequestID,
	)
	if p.metrics != nil {
		p.metrics.IncrementAuditPublishFailed(event.Action)
	}
}

func enrich(ctx context.Context, event audit.Event) audit.Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.TraceID == "" {
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			event.TraceID = sc.TraceID().String()
		}
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = audit.SummarizeUserAgent(requestcontext.UserAgent(ctx))
	}
	return event
}
