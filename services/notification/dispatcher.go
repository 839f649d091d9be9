package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"staydesk/services/logger"
)

// Handler xử lý một sự kiện; lỗi sẽ được retry
type Handler interface {
	Name() string
	Handle(ctx context.Context, e Event) error
}

type DispatcherOptions struct {
	Workers   int
	QueueSize int
	Attempts  int
	Backoff   time.Duration
	Timeout   time.Duration
	Logger    logger.Logger
}

// Dispatcher đẩy sự kiện vào hàng đợi có giới hạn, N worker xử lý.
// Mỗi handler retry độc lập, lỗi của handler này không ảnh hưởng handler khác.
type Dispatcher struct {
	opts     DispatcherOptions
	queue    chan Event
	handlers []Handler
	log      logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	start  sync.Once
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &Dispatcher{
		opts:  opts,
		queue: make(chan Event, opts.QueueSize),
		log:   opts.Logger,
	}
}

// Register thêm handler, gọi trước Start
func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
}

func (d *Dispatcher) Start() {
	d.start.Do(func() {
		for i := 0; i < d.opts.Workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
		d.log.Info("notification dispatcher started with %d workers", d.opts.Workers)
	})
}

// Publish không block; hàng đợi đầy thì bỏ sự kiện và log
func (d *Dispatcher) Publish(e Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("dispatcher stopped, dropping %s", e.Kind())
		return false
	}
	select {
	case d.queue <- e:
		return true
	default:
		d.log.Warn("notification queue full, dropping %s for reservation %s", e.Kind(), reservationID(e))
		return false
	}
}

// Stop ngừng nhận sự kiện và chờ worker xử lý hết hàng đợi
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for e := range d.queue {
		for _, h := range d.handlers {
			d.deliver(h, e)
		}
	}
}

func (d *Dispatcher) deliver(h Handler, e Event) {
	for attempt := 1; attempt <= d.opts.Attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), d.opts.Timeout)
		err := safeHandle(ctx, h, e)
		cancel()
		if err == nil {
			return
		}
		d.log.Warn("%s: %s attempt %d/%d failed: %v", h.Name(), e.Kind(), attempt, d.opts.Attempts, err)
		if attempt < d.opts.Attempts {
			time.Sleep(d.opts.Backoff * time.Duration(attempt))
		}
	}
	d.log.Error("%s: giving up on %s for reservation %s", h.Name(), e.Kind(), reservationID(e))
}

func safeHandle(ctx context.Context, h Handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	return h.Handle(ctx, e)
}

type panicError struct{ value interface{} }

func (p panicError) Error() string { return fmt.Sprintf("handler panic: %v", p.value) }

func reservationID(e Event) string {
	if r := e.Subject(); r != nil {
		return r.ID
	}
	return ""
}
