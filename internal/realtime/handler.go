package realtime

import (
	"fmt"
	"net/http"
	"strings"

	"wizard-writing-study/auth"
	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades clients onto the change feed.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Subscribe handles GET /ws?token=...&topics=suggestions:1,documents:1.
// Wizard tokens may follow any topic; writer tokens only their own rows.
func (h *Handler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	parsedToken, err := auth.VerifyJWT(token)
	if err != nil {
		errors.HandleError(c, errors.ErrUnauthorized(err).WithMessage("Invalid token!"))
		return
	}

	topicsParam := c.Query("topics")
	if topicsParam == "" {
		errors.HandleError(c, errors.ErrInvalidInput(nil).WithMessage("topics query param is required"))
		return
	}
	topics := strings.Split(topicsParam, ",")

	if _, err := auth.WizardFromToken(parsedToken); err != nil {
		// writer token: restrict to the writer's own row filters
		userID, _, err := auth.WriterFromToken(parsedToken)
		if err != nil {
			errors.HandleError(c, errors.ErrUnauthorized(err).WithMessage("Invalid token!"))
			return
		}
		for _, topic := range topics {
			if !writerMayFollow(topic, userID) {
				errors.HandleError(c, errors.ErrForbidden(nil).WithMessage("Topic not allowed for this session"))
				return
			}
		}
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		return
	}

	conn := NewConnection(ws)
	h.hub.Attach(conn, topics)

	// inbound messages are ignored; the read loop only detects disconnect
	go func() {
		defer func() {
			h.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "bye")
		}()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func writerMayFollow(topic string, userID uint64) bool {
	suffix := fmt.Sprintf(":%d", userID)
	return (strings.HasPrefix(topic, "suggestions") || strings.HasPrefix(topic, "documents")) &&
		strings.HasSuffix(topic, suffix)
}
