package user

import (
	"net/http"

	"wizard-writing-study/auth"
	"wizard-writing-study/internal/document"
	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
)

// DocumentProvider lazily creates the writer's document at login
type DocumentProvider interface {
	EnsureForUser(userID uint64) (*document.Document, error)
}

// Handler handles HTTP requests for users
type Handler struct {
	service   Service
	documents DocumentProvider
}

// NewHandler creates a new user handler
func NewHandler(service Service, documents DocumentProvider) *Handler {
	return &Handler{service: service, documents: documents}
}

// FormLogin represents login form data
type FormLogin struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// Login handles writer login. Unknown names register a new participant;
// either way a fresh session token is issued and the user's document is
// lazily created.
func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrUnprocessableEntity(err))
		return
	}

	u, created, err := h.service.LoginOrRegister(form.Name)
	if err != nil {
		c.Error(err)
		return
	}

	doc, err := h.documents.EnsureForUser(u.ID)
	if err != nil {
		c.Error(err)
		return
	}

	accessToken, err := auth.GenerateWriterToken(u.ID, u.SessionID)
	if err != nil {
		c.Error(errors.ErrInternalServer(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{
		"access_token": accessToken,
		"user":         u,
		"document":     doc,
	})
}

// ListUsers returns the participant list for the login dropdown
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		c.Error(err)
		return
	}

	result := make([]PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.ToPublicUser())
	}

	c.JSON(http.StatusOK, result)
}

// ListUsersFull returns full user rows for the operator panel
func (h *Handler) ListUsersFull(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}
