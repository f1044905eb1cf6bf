package document

import (
	"net/http"
	"strconv"

	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ShowMyDocument returns the logged-in writer's document
func (h *Handler) ShowMyDocument(c *gin.Context) {
	userID := c.GetUint64("user_id")

	doc, err := h.service.EnsureForUser(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

type SaveRequest struct {
	Content *string `json:"content" binding:"required"`
}

// Save persists the writer's debounced keystroke save
func (h *Handler) Save(c *gin.Context) {
	docID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return
	}

	var form SaveRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrUnprocessableEntity(err))
		return
	}

	userID := c.GetUint64("user_id")

	if err := h.service.Save(docID, userID, *form.Content); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ShowUserDocument lets the operator read a selected writer's document
func (h *Handler) ShowUserDocument(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return
	}

	doc, err := h.service.GetByUser(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, doc)
}
