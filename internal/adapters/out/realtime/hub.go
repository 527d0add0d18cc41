// Package realtime pushes events to connected clients. Clients join named
// groups (one per order) and are also reachable through their user id.
package realtime

import (
	"context"
	"strconv"
	"sync"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/ports"
	"moving/internal/pkg/logger"

	"github.com/google/uuid"
)

// Message is what a client receives.
type Message struct {
	Type      string `json:"type"`
	Group     string `json:"group,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

const (
	TypeJoined = "joined"
	TypeLeft   = "left"
	TypeError  = "error"

	DefaultOutboxSize = 64
)

// Client is one open connection. Its outbox is buffered; when it is full new
// messages for this client are dropped.
type Client struct {
	id     string
	actor  kernel.Actor
	send   chan Message
	groups map[string]struct{}
	closed bool
}

func (c *Client) ID() string             { return c.id }
func (c *Client) Actor() kernel.Actor    { return c.actor }
func (c *Client) Outbox() <-chan Message { return c.send }

type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client
	groups     map[string]map[string]*Client
	registry   ConnectionRegistry
	outboxSize int
	log        logger.ILogger
}

func NewHub(registry ConnectionRegistry, outboxSize int, log logger.ILogger) *Hub {
	if outboxSize <= 0 {
		outboxSize = DefaultOutboxSize
	}
	return &Hub{
		clients:    make(map[string]*Client),
		groups:     make(map[string]map[string]*Client),
		registry:   registry,
		outboxSize: outboxSize,
		log:        log.With(logger.String("component", "realtime_hub")),
	}
}

// Register opens a client for actor and makes it reachable by user id.
func (h *Hub) Register(actor kernel.Actor) *Client {
	c := &Client{
		id:     uuid.NewString(),
		actor:  actor,
		send:   make(chan Message, h.outboxSize),
		groups: make(map[string]struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
	h.registry.Add(actor.UserID, c.id)
	return c
}

// Unregister removes the client from every group and closes its outbox.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}
	for group := range c.groups {
		h.leaveLocked(c, group)
	}
	delete(h.clients, c.id)
	h.registry.Remove(c.actor.UserID, c.id)
	c.closed = true
	close(c.send)
}

func (h *Hub) Join(c *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}
	members, ok := h.groups[group]
	if !ok {
		members = make(map[string]*Client)
		h.groups[group] = members
	}
	members[c.id] = c
	c.groups[group] = struct{}{}
}

func (h *Hub) Leave(c *Client, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, group)
}

func (h *Hub) leaveLocked(c *Client, group string) {
	delete(c.groups, group)
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, c.id)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

// Send queues msg for a single client.
func (h *Hub) Send(c *Client, msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.deliverLocked(c, msg)
}

// PublishToGroup returns how many members accepted the message.
func (h *Hub) PublishToGroup(group string, msg Message) int {
	msg.Group = group

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, c := range h.groups[group] {
		if h.deliverLocked(c, msg) {
			delivered++
		}
	}
	return delivered
}

// PublishToUser sends msg to every connection of userID.
func (h *Hub) PublishToUser(userID kernel.UUID, msg Message) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, id := range h.registry.Connections(userID) {
		if c, ok := h.clients[id]; ok && h.deliverLocked(c, msg) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) deliverLocked(c *Client, msg Message) bool {
	if c.closed {
		return false
	}
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	select {
	case c.send <- msg:
		return true
	default:
		h.log.Warning("outbox full, dropping message",
			logger.String("client_id", c.id),
			logger.String("type", msg.Type),
		)
		return false
	}
}

// Notify implements ports.Notifier. Order events go to the order's group,
// user events to the user's connections.
func (h *Hub) Notify(_ context.Context, event ports.Event) error {
	msg := Message{Type: event.Name, Data: event.Payload}

	switch {
	case event.IsOrderScoped():
		h.PublishToGroup(OrderGroup(event.OrderID), msg)
	case event.UserID != nil:
		h.PublishToUser(*event.UserID, msg)
	}
	return nil
}

// OrderGroup names the group of an order's subscribers.
func OrderGroup(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
