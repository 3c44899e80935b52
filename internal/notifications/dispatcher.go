package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/metrics"
)

const defaultSendTimeout = 30 * time.Second

// Notifier queues transactional email without blocking the caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// Dispatcher renders messages synchronously and delivers them on background
// goroutines. Failures are logged and counted, never returned.
type Dispatcher struct {
	renderer *Renderer
	sender   Sender
	metrics  *metrics.EmailMetrics
	logg     *logger.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

type DispatcherParams struct {
	Sender      Sender
	Metrics     *metrics.EmailMetrics
	Logger      *logger.Logger
	SendTimeout time.Duration
}

func NewDispatcher(params DispatcherParams) (*Dispatcher, error) {
	if params.Sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	timeout := params.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Dispatcher{
		renderer: renderer,
		sender:   params.Sender,
		metrics:  params.Metrics,
		logg:     params.Logger,
		timeout:  timeout,
	}, nil
}

func (d *Dispatcher) Notify(ctx context.Context, msg Message) {
	logCtx := d.logg.WithFields(ctx, map[string]any{"template": string(msg.Kind), "to": msg.To})

	email, err := d.renderer.Render(msg)
	if err != nil {
		d.metrics.IncFailed(string(msg.Kind))
		d.logg.Error(logCtx, "email.render_failed", err)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(logCtx), d.timeout)
		defer cancel()

		if err := d.sender.Send(sendCtx, email); err != nil {
			d.metrics.IncFailed(string(email.Kind))
			d.logg.Error(sendCtx, "email.failed", err)
			return
		}
		d.metrics.IncSent(string(email.Kind))
		d.logg.Info(sendCtx, "email.sent")
	}()
}

// Drain waits for in-flight sends or until ctx is done.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("draining email sends: %w", ctx.Err())
	}
}

// Discard is a Notifier that drops every message.
type Discard struct{}

func (Discard) Notify(context.Context, Message) {}
