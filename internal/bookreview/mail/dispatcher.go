package mail

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrQueueFull = errors.New("mail: queue full")
	ErrStopped   = errors.New("mail: dispatcher stopped")
)

// DefaultQueueSize is used when NewDispatcher is given a non-positive size.
const DefaultQueueSize = 100

// Dispatcher delivers messages from a bounded queue on a background worker
// so request handlers never wait on SMTP.
type Dispatcher struct {
	Mailer      Mailer
	Logger      *slog.Logger
	SendTimeout time.Duration

	queue chan Message

	mu      sync.Mutex
	stopped bool

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewDispatcher(mailer Mailer, logger *slog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{
		Mailer:      mailer,
		Logger:      logger,
		SendTimeout: 30 * time.Second,
		queue:       make(chan Message, size),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Enqueue hands msg to the worker without blocking.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrStopped
	}
	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the worker.
func (d *Dispatcher) Start() {
	go d.run()
	d.Logger.Info("mail dispatcher started", "queue_size", cap(d.queue))
}

// Stop refuses new messages, delivers what is already queued and waits for
// the worker to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.stopCh)
	d.mu.Unlock()

	<-d.doneCh
	d.Logger.Info("mail dispatcher stopped")
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		case <-d.stopCh:
			for {
				select {
				case msg := <-d.queue:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.SendTimeout)
	defer cancel()

	if err := d.Mailer.Send(ctx, msg); err != nil {
		d.Logger.Error("failed to send email",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
		return
	}
	d.Logger.Debug("email sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
}
