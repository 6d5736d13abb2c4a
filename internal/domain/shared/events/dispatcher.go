package events

import (
	"fmt"
	"sync"

	"mainta/internal/shared/logger"
)

// Dispatcher routes published events to the handlers subscribed to their
// name. Delivery is asynchronous; publishing never blocks on handlers.
type Dispatcher struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	eventCh  chan DomainEvent
	wg       sync.WaitGroup
	logger   logger.Interface
}

// NewDispatcher creates a dispatcher with the given event channel depth.
func NewDispatcher(bufferSize int, log logger.Interface) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if log == nil {
		log = logger.NewLogger()
	}

	return &Dispatcher{
		handlers: make(map[string][]Handler),
		stopCh:   make(chan struct{}),
		eventCh:  make(chan DomainEvent, bufferSize),
		logger:   log,
	}
}

// Subscribe registers a handler for an event name. Registration is expected
// to happen during wiring, before Start.
func (d *Dispatcher) Subscribe(eventName string, handler Handler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
	return nil
}

// Publish enqueues a single event. A full channel drops the event with an
// error rather than blocking the publishing request.
func (d *Dispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return fmt.Errorf("event dispatcher is not running")
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event channel is full, dropping %s", event.EventName())
	}
}

// PublishAll enqueues the events in order, stopping at the first failure.
func (d *Dispatcher) PublishAll(events []DomainEvent) error {
	for _, event := range events {
		if err := d.Publish(event); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.EventName(), err)
		}
	}
	return nil
}

// Start launches the delivery goroutine.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}

	d.running = true
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run()
	}()

	return nil
}

// Stop drains queued events and waits for the delivery goroutine to exit.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("event dispatcher is not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *Dispatcher) run() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.dispatch(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.dispatch(event)
		}
	}
}

func (d *Dispatcher) dispatch(event DomainEvent) {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers[event.EventName()]))
	copy(handlers, d.handlers[event.EventName()])
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil {
			d.logger.Errorw("event handler failed",
				"event", event.EventName(),
				"aggregate_id", event.AggregateID(),
				"error", err,
			)
		}
	}
}
