package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Inbound message types.
const (
	ClientJoin     = "join"
	ClientLeave    = "leave"
	ClientLocation = "location"
)

// ClientMessage is what a client sends.
type ClientMessage struct {
	Type  string  `json:"type"`
	Group string  `json:"group"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Gatekeeper decides which groups a client may join and relays driver
// positions.
type Gatekeeper interface {
	AuthorizeJoin(ctx context.Context, actor kernel.Actor, group string) error
	PublishLocation(ctx context.Context, actor kernel.Actor, group string, lat, lng float64) error
}

var ErrUnknownMessageType = errors.New("unknown message type")

// Serve pumps messages between conn and client until either side closes.
// It blocks and unregisters the client on return.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, client *Client, gate Gatekeeper) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(conn, client)
	}()

	h.readPump(ctx, conn, client, gate)
	h.Unregister(client)
	<-done
}

func (h *Hub) readPump(ctx context.Context, conn *websocket.Conn, client *Client, gate Gatekeeper) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warning("websocket closed unexpectedly",
					logger.String("client_id", client.id),
					logger.Error(err),
				)
			}
			return
		}

		var msg ClientMessage
		if err = json.Unmarshal(raw, &msg); err != nil {
			h.reject(client, "", err)
			continue
		}
		if err = h.dispatch(ctx, client, gate, msg); err != nil {
			h.reject(client, msg.Group, err)
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, client *Client, gate Gatekeeper, msg ClientMessage) error {
	switch msg.Type {
	case ClientJoin:
		if err := gate.AuthorizeJoin(ctx, client.actor, msg.Group); err != nil {
			return err
		}
		h.Join(client, msg.Group)
		h.Send(client, Message{Type: TypeJoined, Group: msg.Group})
	case ClientLeave:
		h.Leave(client, msg.Group)
		h.Send(client, Message{Type: TypeLeft, Group: msg.Group})
	case ClientLocation:
		return gate.PublishLocation(ctx, client.actor, msg.Group, msg.Lat, msg.Lng)
	default:
		return ErrUnknownMessageType
	}
	return nil
}

func (h *Hub) reject(client *Client, group string, err error) {
	h.Send(client, Message{
		Type:  TypeError,
		Group: group,
		Data:  map[string]string{"message": err.Error()},
	})
}

func (h *Hub) writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("websocket write failed",
					logger.String("client_id", client.id),
					logger.Error(err),
				)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
