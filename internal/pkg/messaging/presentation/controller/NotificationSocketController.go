package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"conversations/internal/infrastructure/realtime"
	"conversations/internal/pkg/identity/presentation/middleware"
	"conversations/internal/pkg/messaging/notify"
)

// NotificationSocketController handles the websocket endpoint that pushes
// refresh notifications to browsers. Each connection subscribes to the
// broadcast channel and runs its own relevance filter; only events
// matching what the client currently has open are forwarded, with the
// wire shape {"conversation_id": <integer>}.
type NotificationSocketController struct {
	broker *realtime.Broker
}

func NewNotificationSocketController(broker *realtime.Broker) *NotificationSocketController {
	return &NotificationSocketController{broker: broker}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when serving cross-site.
		return true
	},
}

// inboundFrame is a client navigation event updating the filter state.
type inboundFrame struct {
	Type            string  `json:"type"`
	ConversationID  int64   `json:"conversation_id,omitempty"`
	ConversationIDs []int64 `json:"conversation_ids,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type string `json:"type"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *NotificationSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		conn.Start()
		defer conn.Close(websocket.CloseNormalClosure, "session closed")

		sub := ctl.broker.Subscribe()
		defer sub.Close()

		filter := notify.NewFilter()
		go forwardRelevant(conn, sub, filter)

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected"}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "view":
				if frame.ConversationID == 0 {
					replyError(conn, "bad_request", "conversation_id is required")
					continue
				}
				filter.SetViewing(frame.ConversationID)
			case "list":
				filter.SetVisible(frame.ConversationIDs)
			case "idle":
				filter.Clear()
			default:
				replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

// forwardRelevant pumps broadcast events through the filter into the
// connection until either side goes away. A failed Send means the
// client is gone or too slow; both end delivery for this subscriber
// only.
func forwardRelevant(conn *realtime.Connection, sub *realtime.Subscription, filter *notify.Filter) {
	for {
		select {
		case <-sub.Done():
			return
		case ev := <-sub.C:
			if !filter.Relevant(ev) {
				continue
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := conn.Send(payload); err != nil {
				return
			}
		}
	}
}

func replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{
		Type:  "error",
		Code:  code,
		Error: message,
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
