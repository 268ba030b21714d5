package websockets

import (
	"pulse360/config"
	"pulse360/internal/database"
	"pulse360/internal/events"
	"pulse360/internal/logger"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Manager fans bus events out to connected websocket clients. Progress
// notifications from import runs go through the event bus rather than
// directly to sockets, so clients attached to any instance receive them.
type Manager struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
}

type wsMessage struct {
	Type       string         `json:"type"`
	BatchToken string         `json:"batchToken,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	manager := &Manager{
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("websockets"),
		clients:  make(map[*websocket.Conn]bool),
	}

	eventBus.Subscribe(manager.handleEvent)

	return manager, nil
}

// HandleWebSocket owns the connection for its lifetime. Inbound frames are
// read and discarded; the read loop exists to detect disconnects.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	m.register(c)
	defer func() {
		m.unregister(c)
		_ = c.Close()
	}()

	log.Debug("client connected", "remote", c.RemoteAddr().String())

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Debug("client disconnected", "remote", c.RemoteAddr().String())
			return
		}
	}
}

func (m *Manager) register(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c] = true
}

func (m *Manager) unregister(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, c)
}

func (m *Manager) handleEvent(event events.Event) {
	m.broadcast(wsMessage{
		Type:       string(event.Type),
		BatchToken: event.BatchToken,
		Data:       event.Data,
	})
}

func (m *Manager) broadcast(msg wsMessage) {
	log := m.log.Function("broadcast")

	m.mu.Lock()
	defer m.mu.Unlock()

	for conn := range m.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn("failed to write to client, dropping connection", "error", err)
			delete(m.clients, conn)
			_ = conn.Close()
		}
	}
}

func (m *Manager) publish(eventType events.EventType, batchToken string, data map[string]any) {
	if err := m.eventBus.Publish(events.Event{
		Type:       eventType,
		BatchToken: batchToken,
		Data:       data,
	}); err != nil {
		m.log.Er("failed to publish event", err, "type", eventType, "batchToken", batchToken)
	}
}

func (m *Manager) SendImportProgress(batchToken string, data map[string]any) {
	m.publish(events.EventImportProgress, batchToken, data)
}

func (m *Manager) SendImportComplete(batchToken string, result map[string]any) {
	m.publish(events.EventImportComplete, batchToken, result)
}

func (m *Manager) SendImportError(batchToken string, errorMsg string) {
	m.publish(events.EventImportError, batchToken, map[string]any{"error": errorMsg})
}
