package realtime

import (
	"sync"
)

// Hub tracks websocket connections and the change topics each one follows.
// A topic is a table name, optionally scoped per user ("suggestions:7").
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection         // connID -> connection
	topics      map[string]map[string]struct{} // topic -> set of connIDs
	connTopics  map[string]map[string]struct{} // connID -> set of topics
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		topics:      make(map[string]map[string]struct{}),
		connTopics:  make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection and subscribes it to the given topics.
func (h *Hub) Attach(conn *Connection, topics []string) {
	h.mu.Lock()
	h.connections[conn.ID] = conn
	h.connTopics[conn.ID] = make(map[string]struct{})
	for _, topic := range topics {
		set := h.topics[topic]
		if set == nil {
			set = make(map[string]struct{})
			h.topics[topic] = set
		}
		set[conn.ID] = struct{}{}
		h.connTopics[conn.ID][topic] = struct{}{}
	}
	h.mu.Unlock()

	conn.Start()
}

// Detach removes a connection from every topic it follows.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	for topic := range h.connTopics[conn.ID] {
		delete(h.topics[topic], conn.ID)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(h.connTopics, conn.ID)
	delete(h.connections, conn.ID)
	h.mu.Unlock()
}

// Broadcast delivers payload to every connection subscribed to topic.
// Slow connections are dropped by Send, not waited on.
func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.topics[topic]))
	for connID := range h.topics[topic] {
		if conn := h.connections[connID]; conn != nil {
			targets = append(targets, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		_ = conn.Send(payload)
	}
}

// SubscriberCount reports how many connections follow a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
