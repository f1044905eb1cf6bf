package wizard

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"wizard-writing-study/auth"
	"wizard-writing-study/internal/config"
	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Handler authenticates operators into the control panel
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type FormLogin struct {
	AccessKey string `json:"access_key" binding:"required"`
}

// Login exchanges the shared operator access key for a wizard token. The
// configured key may be a bcrypt hash or, for development setups, the plain
// key itself.
func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrUnprocessableEntity(err))
		return
	}

	if !keyMatches(config.AppConfig.WizardAccessKey, form.AccessKey) {
		c.Error(errors.ErrUnauthorized(nil).WithMessage("Wrong access key"))
		return
	}

	wizardSessionID := "wizard-" + uuid.NewString()

	token, err := auth.GenerateWizardToken(wizardSessionID)
	if err != nil {
		c.Error(errors.ErrInternalServer(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":      token,
		"wizard_session_id": wizardSessionID,
	})
}

func keyMatches(configured, presented string) bool {
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(presented)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}
