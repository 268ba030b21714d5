package events

import (
	"context"
	"encoding/json"
	"pulse360/config"
	"pulse360/internal/database"
	"pulse360/internal/logger"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

type EventType string

const (
	EventImportProgress EventType = "import:progress"
	EventImportComplete EventType = "import:complete"
	EventImportError    EventType = "import:error"
)

const eventChannel = "pulse360:events"

// Event is the unit carried over the valkey pub/sub channel. Every API
// instance publishes to the shared channel and receives its own events back,
// so websocket clients see progress no matter which instance runs the import.
type Event struct {
	Type       EventType      `json:"type"`
	BatchToken string         `json:"batchToken,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

type Handler func(Event)

type EventBus struct {
	client   database.CacheClient
	config   config.Config
	log      logger.Logger
	mu       sync.RWMutex
	handlers []Handler
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(client database.CacheClient, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	bus := &EventBus{
		client: client,
		config: config,
		log:    logger.New("events"),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go bus.listen(ctx)

	return bus
}

func (b *EventBus) listen(ctx context.Context) {
	log := b.log.Function("listen")
	defer close(b.done)

	err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(eventChannel).Build(), func(msg valkey.PubSubMessage) {
		var event Event
		if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
			log.Warn("dropping malformed event", "error", err)
			return
		}

		b.mu.RLock()
		handlers := make([]Handler, len(b.handlers))
		copy(handlers, b.handlers)
		b.mu.RUnlock()

		for _, handler := range handlers {
			handler(event)
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription terminated", err)
	}
}

// Subscribe registers a handler for every event on the bus. Handlers run on
// the subscription goroutine and must not block.
func (b *EventBus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *EventBus) Publish(event Event) error {
	log := b.log.Function("Publish")

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "type", event.Type)
	}

	cmd := b.client.B().Publish().Channel(eventChannel).Message(string(payload)).Build()
	if err := b.client.Do(context.Background(), cmd).Error(); err != nil {
		return log.Err("failed to publish event", err, "type", event.Type)
	}

	return nil
}

func (b *EventBus) Close() error {
	b.cancel()
	<-b.done
	return nil
}
