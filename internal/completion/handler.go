package completion

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

type SuggestRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Suggest handles POST /suggestion: continuation drafting for the operator
// panel. Upstream failure surfaces as a generic 500.
func (h *Handler) Suggest(c *gin.Context) {
	var form SuggestRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrInvalidInput(err).WithMessage("Prompt is required"))
		return
	}

	result, err := h.service.Suggest(c.Request.Context(), form.Prompt)
	if err != nil {
		c.Error(errors.ErrInternalServer(err).WithMessage("Failed to get suggestion"))
		return
	}

	c.JSON(http.StatusOK, result)
}

type CommentRequest struct {
	Content      string `json:"content"`
	SelectedText string `json:"selected_text"`
	// legacy clients send the document text as prompt
	Prompt string `json:"prompt"`
}

// CommentSuggest handles POST /comment-suggestion: a reader-reaction draft
// for a selected span.
func (h *Handler) CommentSuggest(c *gin.Context) {
	var form CommentRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return
	}

	content := form.Content
	if content == "" {
		content = form.Prompt
	}
	if content == "" || form.SelectedText == "" {
		c.Error(errors.ErrInvalidInput(nil).WithMessage("Content and selected text are required"))
		return
	}

	result, err := h.service.CommentFeedback(c.Request.Context(), content, form.SelectedText)
	if err != nil {
		c.Error(errors.ErrInternalServer(err).WithMessage("Failed to get comment suggestion"))
		return
	}

	c.JSON(http.StatusOK, result)
}
