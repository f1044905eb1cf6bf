package export

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wizard-writing-study/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) UserDetailCSV(userID uint64) (string, string, error) {
	args := m.Called(userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockExportService) SummaryCSV() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockExportService) Archive(userIDs []uint64) ([]byte, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func setupExportRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/wizard/export/users/:id/detail.csv", handler.UserDetailCSV)
	router.GET("/wizard/export/summary.csv", handler.SummaryCSV)
	router.GET("/wizard/export/archive.zip", handler.Archive)
	return router
}

func TestHandlerUserDetailCSV(t *testing.T) {
	service := new(MockExportService)
	router := setupExportRouter(service)

	service.On("UserDetailCSV", uint64(7)).
		Return(utf8BOM+`"user_id"`, "user-alice-details-2025-03-15.csv", nil)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/wizard/export/users/7/detail.csv", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "user-alice-details-2025-03-15.csv")
	assert.True(t, strings.HasPrefix(recorder.Body.String(), utf8BOM))
}

func TestHandlerUserDetailCSV_BadID(t *testing.T) {
	service := new(MockExportService)
	router := setupExportRouter(service)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/wizard/export/users/zzz/detail.csv", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	service.AssertNotCalled(t, "UserDetailCSV", mock.Anything)
}

func TestHandlerArchive(t *testing.T) {
	service := new(MockExportService)
	router := setupExportRouter(service)

	service.On("Archive", []uint64{7, 8}).Return([]byte("PK\x03\x04"), nil)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/wizard/export/archive.zip?user_ids=7,8", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/zip", recorder.Header().Get("Content-Type"))
	service.AssertExpectations(t)
}

func TestHandlerArchive_MissingIDs(t *testing.T) {
	service := new(MockExportService)
	router := setupExportRouter(service)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/wizard/export/archive.zip", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	service.AssertNotCalled(t, "Archive", mock.Anything)
}
