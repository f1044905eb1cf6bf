package snapshot

import (
	"net/http"

	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type RecordRequest struct {
	FullText *string `json:"full_text" binding:"required"`
}

// Record stores one timer-driven writing snapshot for the logged-in writer
func (h *Handler) Record(c *gin.Context) {
	var form RecordRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrUnprocessableEntity(err))
		return
	}

	userID := c.GetUint64("user_id")
	sessionID := c.GetString("session_id")

	snapshot, err := h.service.Record(userID, sessionID, *form.FullText)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}
