package realtime

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/ports"
	"moving/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(outbox int) *Hub {
	return NewHub(NewInMemoryRegistry(), outbox, logger.NewNop())
}

func actorWith(role kernel.Role) kernel.Actor {
	return kernel.Actor{UserID: kernel.NewUUID(), Role: role}
}

func drain(c *Client) []Message {
	var out []Message
	for {
		select {
		case msg, ok := <-c.Outbox():
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHub_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("should deliver an order event only to members of its group", func(t *testing.T) {
		hub := newTestHub(8)
		member := hub.Register(actorWith(kernel.RoleCustomer))
		outsider := hub.Register(actorWith(kernel.RoleCustomer))
		hub.Join(member, "42")

		err := hub.Notify(ctx, ports.Event{
			Name:    ports.EventLocationUpdate,
			OrderID: 42,
			Payload: map[string]any{"lat": 35.7, "lng": 51.4},
		})
		require.NoError(t, err)

		got := drain(member)
		require.Len(t, got, 1)
		assert.Equal(t, ports.EventLocationUpdate, got[0].Type)
		assert.Equal(t, "42", got[0].Group)
		assert.NotEmpty(t, got[0].Timestamp)
		assert.Empty(t, drain(outsider))
	})

	t.Run("should deliver a user event to every connection of that user", func(t *testing.T) {
		hub := newTestHub(8)
		driver := actorWith(kernel.RoleDriver)
		phone := hub.Register(driver)
		tablet := hub.Register(driver)
		other := hub.Register(actorWith(kernel.RoleDriver))

		err := hub.Notify(ctx, ports.Event{
			Name:   ports.EventDriverStatusChanged,
			UserID: &driver.UserID,
		})
		require.NoError(t, err)

		assert.Len(t, drain(phone), 1)
		assert.Len(t, drain(tablet), 1)
		assert.Empty(t, drain(other))
	})

	t.Run("should ignore events with neither order nor user", func(t *testing.T) {
		hub := newTestHub(8)
		c := hub.Register(actorWith(kernel.RoleAdmin))

		require.NoError(t, hub.Notify(ctx, ports.Event{Name: ports.EventOrderStatusChanged}))
		assert.Empty(t, drain(c))
	})
}

func TestHub_PublishToGroup(t *testing.T) {
	t.Run("should drop messages once the outbox is full", func(t *testing.T) {
		hub := newTestHub(2)
		c := hub.Register(actorWith(kernel.RoleCustomer))
		hub.Join(c, "7")

		delivered := 0
		for i := 0; i < 5; i++ {
			delivered += hub.PublishToGroup("7", Message{Type: ports.EventLocationUpdate})
		}

		assert.Equal(t, 2, delivered)
		assert.Len(t, drain(c), 2)
	})

	t.Run("should not reach a client after it leaves", func(t *testing.T) {
		hub := newTestHub(8)
		c := hub.Register(actorWith(kernel.RoleCustomer))
		hub.Join(c, "7")
		hub.Leave(c, "7")

		assert.Zero(t, hub.PublishToGroup("7", Message{Type: ports.EventLocationUpdate}))
	})
}

func TestHub_Unregister(t *testing.T) {
	t.Run("should close the outbox and forget the client", func(t *testing.T) {
		hub := newTestHub(8)
		a := actorWith(kernel.RoleCustomer)
		c := hub.Register(a)
		hub.Join(c, "1")

		hub.Unregister(c)
		hub.Unregister(c)

		_, open := <-c.Outbox()
		assert.False(t, open)
		assert.Zero(t, hub.ClientCount())
		assert.Zero(t, hub.PublishToGroup("1", Message{Type: "x"}))
		assert.Zero(t, hub.PublishToUser(a.UserID, Message{Type: "x"}))
	})
}

func TestInMemoryRegistry(t *testing.T) {
	t.Run("should track connections per user", func(t *testing.T) {
		r := NewInMemoryRegistry()
		u := kernel.NewUUID()

		r.Add(u, "a")
		r.Add(u, "b")
		r.Remove(u, "a")

		assert.Equal(t, []string{"b"}, r.Connections(u))

		r.Remove(u, "b")
		assert.Empty(t, r.Connections(u))
	})
}

func TestHub_Concurrency(t *testing.T) {
	const (
		users         = 8
		connsPerUser  = 6
		publishRounds = 50
	)

	t.Run("should keep every live connection reachable while others come and go", func(t *testing.T) {
		hub := newTestHub(publishRounds * 4)
		actors := make([]kernel.Actor, users)
		for i := range actors {
			actors[i] = actorWith(kernel.RoleCustomer)
		}

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			stayers = make(map[kernel.UUID][]*Client)
		)
		for i, actor := range actors {
			group := OrderGroup(int64(i + 1))
			for n := 0; n < connsPerUser; n++ {
				wg.Add(1)
				go func(actor kernel.Actor, stay bool) {
					defer wg.Done()
					c := hub.Register(actor)
					hub.Join(c, group)
					if stay {
						mu.Lock()
						stayers[actor.UserID] = append(stayers[actor.UserID], c)
						mu.Unlock()
						return
					}
					hub.PublishToUser(actor.UserID, Message{Type: "ping"})
					hub.Unregister(c)
				}(actor, n%2 == 0)
			}
			wg.Add(1)
			go func(actor kernel.Actor) {
				defer wg.Done()
				for r := 0; r < publishRounds; r++ {
					hub.PublishToUser(actor.UserID, Message{Type: "ping"})
					hub.PublishToGroup(group, Message{Type: "pong"})
				}
			}(actor)
		}
		wg.Wait()

		require.Equal(t, users*connsPerUser/2, hub.ClientCount())
		for _, actor := range actors {
			kept := stayers[actor.UserID]
			require.Len(t, kept, connsPerUser/2)

			ids := make([]string, 0, len(kept))
			for _, c := range kept {
				ids = append(ids, c.ID())
			}
			assert.ElementsMatch(t, ids, hub.registry.Connections(actor.UserID))
			assert.Equal(t, len(kept), hub.PublishToUser(actor.UserID, Message{Type: "final"}))
		}
	})

	t.Run("should leave no stale entries once everyone disconnects", func(t *testing.T) {
		registry := NewInMemoryRegistry()
		hub := NewHub(registry, 4, logger.NewNop())
		actor := actorWith(kernel.RoleDriver)

		var wg sync.WaitGroup
		for n := 0; n < users*connsPerUser; n++ {
			wg.Add(2)
			go func(n int) {
				defer wg.Done()
				c := hub.Register(actor)
				hub.Join(c, OrderGroup(int64(n%3)))
				hub.Send(c, Message{Type: "hello"})
				hub.Unregister(c)
			}(n)
			go func() {
				defer wg.Done()
				hub.PublishToUser(actor.UserID, Message{Type: "ping"})
				hub.PublishToGroup(OrderGroup(1), Message{Type: "pong"})
			}()
		}
		wg.Wait()

		assert.Zero(t, hub.ClientCount())
		assert.Empty(t, registry.Connections(actor.UserID))
		assert.Zero(t, hub.PublishToUser(actor.UserID, Message{Type: "ping"}))
		hub.mu.RLock()
		assert.Empty(t, hub.groups)
		hub.mu.RUnlock()
	})
}

func TestInMemoryRegistry_Concurrency(t *testing.T) {
	t.Run("should converge to the connections that were not removed", func(t *testing.T) {
		r := NewInMemoryRegistry()
		u := kernel.NewUUID()
		const total = 200

		var wg sync.WaitGroup
		for i := 0; i < total; i++ {
			wg.Add(1)
			go func(id string, remove bool) {
				defer wg.Done()
				r.Add(u, id)
				_ = r.Connections(u)
				if remove {
					r.Remove(u, id)
				}
			}(fmt.Sprintf("conn-%d", i), i%4 != 0)
		}
		wg.Wait()

		var want []string
		for i := 0; i < total; i += 4 {
			want = append(want, fmt.Sprintf("conn-%d", i))
		}
		assert.ElementsMatch(t, want, r.Connections(u))
	})
}
