package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"userdeck/internal/adapter/gin/middleware"
	domain "userdeck/internal/domain/user"
	"userdeck/internal/ui"
	pkgerrors "userdeck/pkg/errors"
)

const (
	testCookie    = "userdeck_session"
	testSessionID = "7f9c2ba4-e88f-41c7-9e54-3f6b6d6e2c11"
)

// MockUsecase is a mock implementation of user.Usecase
type MockUsecase struct {
	mock.Mock
}

func (m *MockUsecase) Mount(ctx context.Context, sessionID string) (domain.State, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockUsecase) Refresh(ctx context.Context, sessionID string) (domain.State, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockUsecase) CreateUser(ctx context.Context, sessionID string, d domain.NewUserDraft) (domain.State, error) {
	args := m.Called(ctx, sessionID, d)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockUsecase) UpdateUser(ctx context.Context, sessionID, label string, d domain.UpdateUserDraft) (domain.State, error) {
	args := m.Called(ctx, sessionID, label, d)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockUsecase) DeleteUser(ctx context.Context, sessionID string, id int64) (domain.State, error) {
	args := m.Called(ctx, sessionID, id)
	return args.Get(0).(domain.State), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *UIHandler, *MockUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUsecase)
	handler := NewUIHandler(mockUsecase, ui.BackendName, zaptest.NewLogger(t))

	renderer, err := ui.NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(renderer.Template())
	r.Use(middleware.Session(middleware.SessionConfig{CookieName: testCookie, MaxAge: 3600}))
	return r, handler, mockUsecase
}

func newRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: testCookie, Value: testSessionID})
	return req
}

func TestPage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/", handler.Page)

		st := domain.State{Loaded: true}.WithList([]domain.User{{ID: 1, Name: "Ann", Email: "ann@x.com"}})
		mockUsecase.On("Mount", mock.Anything, testSessionID).Return(st, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<title>Users</title>")
		assert.Contains(t, w.Body.String(), "ann@x.com")
		assert.Contains(t, w.Body.String(), "bg-emerald-800")
		mockUsecase.AssertExpectations(t)
	})

	t.Run("StoreError", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.GET("/", handler.Page)

		mockUsecase.On("Mount", mock.Anything, testSessionID).Return(domain.State{}, errors.New("redis down"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mockUsecase.AssertExpectations(t)
	})
}

func TestRefresh(t *testing.T) {
	r, handler, mockUsecase := setupTest(t)
	r.POST("/refresh", handler.Refresh)

	mockUsecase.On("Refresh", mock.Anything, testSessionID).Return(domain.State{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodPost, "/refresh", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	mockUsecase.AssertExpectations(t)
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		draft := domain.NewUserDraft{Name: "Al", Email: "al@x.com"}
		mockUsecase.On("CreateUser", mock.Anything, testSessionID, draft).Return(domain.State{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodPost, "/users", url.Values{"name": {"Al"}, "email": {"al@x.com"}}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		mockUsecase.AssertExpectations(t)
	})

	t.Run("EmptyFieldsAreSubmitted", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users", handler.CreateUser)

		mockUsecase.On("CreateUser", mock.Anything, testSessionID, domain.NewUserDraft{}).Return(domain.State{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodPost, "/users", url.Values{"name": {""}, "email": {""}}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		mockUsecase.AssertExpectations(t)
	})
}

func TestUpdateUser(t *testing.T) {
	r, handler, mockUsecase := setupTest(t)
	r.POST("/users/update", handler.UpdateUser)

	draft := domain.UpdateUserDraft{ID: "3", Name: "Cy", Email: "cy@x.com"}
	mockUsecase.On("UpdateUser", mock.Anything, testSessionID, "calm", draft).Return(domain.State{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodPost, "/users/update", url.Values{
		"id":    {"3"},
		"name":  {"Cy"},
		"email": {"cy@x.com"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	mockUsecase.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users/:id/delete", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, testSessionID, int64(2)).Return(domain.State{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodPost, "/users/2/delete", url.Values{}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("InvalidID", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users/:id/delete", handler.DeleteUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodPost, "/users/abc/delete", url.Values{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User ID must be a valid number", w.Body.String())
		mockUsecase.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StoreError", func(t *testing.T) {
		r, handler, mockUsecase := setupTest(t)
		r.POST("/users/:id/delete", handler.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, testSessionID, int64(2)).Return(domain.State{}, pkgerrors.NewInternalError("save session", errors.New("db down")))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest(http.MethodPost, "/users/2/delete", url.Values{}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestCreateUser_BindError(t *testing.T) {
	r, handler, mockUsecase := setupTest(t)
	r.POST("/users", handler.CreateUser)

	req := newRequest(http.MethodPost, "/users", nil)
	req.Body = http.NoBody
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUsecase.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}
