package suggestion

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

// List returns the writer's full suggestion list plus the active slot
func (h *Handler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")

	refresh, err := h.service.ListForUser(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh)
}

// ShowActive returns the suggestion in the primary action slot, 204 when the
// slot is empty
func (h *Handler) ShowActive(c *gin.Context) {
	userID := c.GetUint64("user_id")

	refresh, err := h.service.ListForUser(userID)
	if err != nil {
		c.Error(err)
		return
	}

	if refresh.Active == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, refresh.Active)
}

func (h *Handler) suggestionID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return 0, false
	}
	return id, true
}

func (h *Handler) Accept(c *gin.Context) {
	id, ok := h.suggestionID(c)
	if !ok {
		return
	}

	refresh, err := h.service.Accept(c.GetUint64("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh)
}

type PartialAcceptRequest struct {
	Content string `json:"content" binding:"required"`
}

// PartialAccept resolves a suggestion with writer-edited text
func (h *Handler) PartialAccept(c *gin.Context) {
	id, ok := h.suggestionID(c)
	if !ok {
		return
	}

	var form PartialAcceptRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrUnprocessableEntity(err))
		return
	}

	refresh, err := h.service.PartialAccept(c.GetUint64("user_id"), id, form.Content)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.suggestionID(c)
	if !ok {
		return
	}

	refresh, err := h.service.Reject(c.GetUint64("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh)
}

func (h *Handler) Like(c *gin.Context) {
	id, ok := h.suggestionID(c)
	if !ok {
		return
	}

	refresh, err := h.service.Like(c.GetUint64("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh)
}

func (h *Handler) Apply(c *gin.Context) {
	id, ok := h.suggestionID(c)
	if !ok {
		return
	}

	refresh, err := h.service.Apply(c.GetUint64("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh)
}

// ListForUser lets the operator read the suggestions already sent to a writer
func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return
	}

	refresh, err := h.service.ListForUser(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, refresh.Suggestions)
}

type SendRequest struct {
	Content      string  `json:"content" binding:"required"`
	UserID       uint64  `json:"user_id" binding:"required"`
	Type         string  `json:"type" binding:"required,oneof=append comment"`
	Position     *int    `json:"position"`
	EndPosition  *int    `json:"end_position"`
	SelectedText *string `json:"selected_text"`
}

// Send inserts a suggestion from the operator panel
func (h *Handler) Send(c *gin.Context) {
	var form SendRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrUnprocessableEntity(err))
		return
	}

	wizardSessionID := c.GetString("wizard_session_id")

	sg := &Suggestion{
		Content:         form.Content,
		UserID:          form.UserID,
		WizardSessionID: wizardSessionID,
		Type:            form.Type,
		Position:        form.Position,
		EndPosition:     form.EndPosition,
		SelectedText:    form.SelectedText,
	}

	if err := h.service.Send(sg); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, sg)
}
