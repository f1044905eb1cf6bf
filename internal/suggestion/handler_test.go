package suggestion

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appError "wizard-writing-study/internal/errors"
	"wizard-writing-study/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Send(s *Suggestion) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockService) ListForUser(userID uint64) (*Refresh, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refresh), args.Error(1)
}

func (m *MockService) Accept(userID uint64, suggestionID uint64) (*Refresh, error) {
	args := m.Called(userID, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refresh), args.Error(1)
}

func (m *MockService) PartialAccept(userID uint64, suggestionID uint64, partialText string) (*Refresh, error) {
	args := m.Called(userID, suggestionID, partialText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refresh), args.Error(1)
}

func (m *MockService) Reject(userID uint64, suggestionID uint64) (*Refresh, error) {
	args := m.Called(userID, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refresh), args.Error(1)
}

func (m *MockService) Like(userID uint64, suggestionID uint64) (*Refresh, error) {
	args := m.Called(userID, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refresh), args.Error(1)
}

func (m *MockService) Apply(userID uint64, suggestionID uint64) (*Refresh, error) {
	args := m.Called(userID, suggestionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refresh), args.Error(1)
}

// fakeWriterAuth stands in for the JWT middleware and pins the writer identity
func fakeWriterAuth(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("session_id", "user-test")
		c.Next()
	}
}

func fakeWizardAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("wizard_session_id", "wizard-test")
		c.Next()
	}
}

func setupRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service)

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	writer := router.Group("/", fakeWriterAuth(7))
	writer.GET("/suggestions", handler.List)
	writer.GET("/suggestions/active", handler.ShowActive)
	writer.POST("/suggestions/:id/accept", handler.Accept)
	writer.POST("/suggestions/:id/partial-accept", handler.PartialAccept)
	writer.POST("/suggestions/:id/reject", handler.Reject)
	writer.POST("/suggestions/:id/like", handler.Like)
	writer.POST("/suggestions/:id/apply", handler.Apply)

	wizard := router.Group("/wizard", fakeWizardAuth())
	wizard.POST("/suggestions", handler.Send)
	wizard.GET("/users/:id/suggestions", handler.ListForUser)

	return router
}

func TestHandlerList(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("ListForUser", uint64(7)).Return(&Refresh{
		Suggestions: []Suggestion{{ID: 1, UserID: 7, Type: TypeAppend, Content: " more"}},
		Active:      &Suggestion{ID: 1, UserID: 7, Type: TypeAppend, Content: " more"},
	}, nil)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/suggestions", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body Refresh
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Suggestions, 1)
	require.NotNil(t, body.Active)
	assert.Equal(t, uint64(1), body.Active.ID)
}

func TestHandlerShowActive_EmptySlot(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("ListForUser", uint64(7)).Return(&Refresh{Suggestions: []Suggestion{}}, nil)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/suggestions/active", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestHandlerAccept(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("Accept", uint64(7), uint64(3)).Return(&Refresh{Suggestions: []Suggestion{}}, nil)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/suggestions/3/accept", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestHandlerAccept_BadID(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/suggestions/not-a-number/accept", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	service.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestHandlerPartialAccept(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("PartialAccept", uint64(7), uint64(3), " there was a king.").
		Return(&Refresh{Suggestions: []Suggestion{}}, nil)

	payload, _ := json.Marshal(gin.H{"content": " there was a king."})
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/suggestions/3/partial-accept", bytes.NewBuffer(payload))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestHandlerPartialAccept_MissingContent(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/suggestions/3/partial-accept", bytes.NewBufferString(`{}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	service.AssertNotCalled(t, "PartialAccept", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlerReject_Conflict(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("Reject", uint64(7), uint64(3)).
		Return(nil, appError.ErrConflict(nil).WithMessage("Suggestion already resolved"))

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/suggestions/3/reject", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "already resolved")
}

func TestHandlerSend(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("Send", mock.MatchedBy(func(sg *Suggestion) bool {
		return sg.UserID == 7 &&
			sg.Type == TypeComment &&
			sg.WizardSessionID == "wizard-test" &&
			sg.Position != nil && *sg.Position == 4
	})).Return(nil)

	payload, _ := json.Marshal(gin.H{
		"content":       "ocean ",
		"user_id":       7,
		"type":          "comment",
		"position":      4,
		"end_position":  8,
		"selected_text": "sky ",
	})
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/wizard/suggestions", bytes.NewBuffer(payload))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	service.AssertExpectations(t)
}

func TestHandlerSend_UnknownType(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	payload, _ := json.Marshal(gin.H{"content": "x", "user_id": 7, "type": "rewrite"})
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodPost, "/wizard/suggestions", bytes.NewBuffer(payload))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	service.AssertNotCalled(t, "Send", mock.Anything)
}

func TestHandlerListForUser(t *testing.T) {
	service := new(MockService)
	router := setupRouter(service)

	service.On("ListForUser", uint64(7)).Return(&Refresh{
		Suggestions: []Suggestion{{ID: 1, UserID: 7, Type: TypeComment, Content: "nice"}},
	}, nil)

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/wizard/users/7/suggestions", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body []Suggestion
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}
