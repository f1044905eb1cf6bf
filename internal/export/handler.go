package export

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"wizard-writing-study/internal/errors"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// UserDetailCSV streams one participant's detail export
func (h *Handler) UserDetailCSV(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return
	}

	content, filename, err := h.service.UserDetailCSV(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// SummaryCSV streams the all-users overview export
func (h *Handler) SummaryCSV(c *gin.Context) {
	content, err := h.service.SummaryCSV()
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="study-summary.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}

// Archive streams a ZIP of per-user exports for the selected participants
func (h *Handler) Archive(c *gin.Context) {
	idsParam := c.Query("user_ids")
	if idsParam == "" {
		c.Error(errors.ErrInvalidInput(nil).WithMessage("user_ids query param is required"))
		return
	}

	var userIDs []uint64
	for _, raw := range strings.Split(idsParam, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			c.Error(errors.ErrInvalidInput(err).WithMessage("user_ids must be a comma-separated list of ids"))
			return
		}
		userIDs = append(userIDs, id)
	}

	archive, err := h.service.Archive(userIDs)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="study-export.zip"`)
	c.Data(http.StatusOK, "application/zip", archive)
}
