package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/policy"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func intPtr(i int) *int { return &i }

// --- MOCK SERVICE ---

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, actor policy.Actor, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) GetByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID int64, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, reviewID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID int64) error {
	args := m.Called(ctx, actor, titleID, reviewID)
	return args.Error(0)
}

// --- SETUP ---

// mockActorMiddleware stands in for OptionalAuth: an empty role means the
// request stays anonymous.
func mockActorMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set("actor", policy.Actor{
				ID:            "test-user-id",
				Username:      "testuser",
				Role:          role,
				Authenticated: true,
			})
		}
		c.Next()
	}
}

func setupReviewRouter(mockService *MockReviewService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	h := handler.NewReviewHandler(mockService)

	rg := r.Group("/api/v1")
	rg.Use(mockActorMiddleware(role))
	h.RegisterRoutes(rg)
	return r
}

// --- TESTS ---

func TestReviewHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		expected := &dto.ReviewResponse{ID: 42, Text: "solid", Score: 8, Author: "testuser"}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(a policy.Actor) bool {
			return a.ID == "test-user-id" && a.Authenticated
		}), int64(5), dto.CreateReviewDTO{Text: "solid", Score: intPtr(8)}).Return(expected, nil).Once()

		body, _ := json.Marshal(gin.H{"text": "solid", "score": 8})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/5/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.ReviewResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, int64(42), response.ID)
		assert.Equal(t, "testuser", response.Author)
		mockService.AssertExpectations(t)
	})

	t.Run("Anonymous", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "")

		body, _ := json.Marshal(gin.H{"text": "solid", "score": 8})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/5/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SecondReviewConflicts", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		mockService.On("Create", mock.Anything, mock.Anything, int64(5), mock.Anything).
			Return(nil, service.ErrConflict).Once()

		body, _ := json.Marshal(gin.H{"text": "again", "score": 9})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/5/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("TitleNotFound", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		mockService.On("Create", mock.Anything, mock.Anything, int64(99), mock.Anything).
			Return(nil, service.ErrNotFound).Once()

		body, _ := json.Marshal(gin.H{"text": "x", "score": 5})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/99/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingScore", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleUser)

		body, _ := json.Marshal(gin.H{"text": "no score"})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/titles/5/reviews", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReviewHandler_List(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, "")

	page := dto.NewPaginated([]dto.ReviewResponse{
		{ID: 1, Text: "great", Score: 9, Author: "alice"},
		{ID: 2, Text: "fine", Score: 6, Author: "bob"},
	}, 2, 1, 20)
	mockService.On("GetByTitle", mock.Anything, int64(5), 1, 20).Return(page, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/5/reviews", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	item := data[0].(map[string]interface{})
	assert.Equal(t, "alice", item["author"])
	mockService.AssertExpectations(t)
}

func TestReviewHandler_Get_BadPathID(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, "")

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/titles/abc/reviews/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewHandler_Update_ForbiddenForStranger(t *testing.T) {
	mockService := new(MockReviewService)
	r := setupReviewRouter(mockService, models.RoleUser)

	mockService.On("Update", mock.Anything, mock.Anything, int64(5), int64(42), mock.Anything).
		Return(nil, service.ErrForbidden).Once()

	body, _ := json.Marshal(gin.H{"text": "not mine"})
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/titles/5/reviews/42", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewHandler_Delete(t *testing.T) {
	t.Run("Moderator", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, models.RoleModerator)

		mockService.On("Delete", mock.Anything, mock.MatchedBy(func(a policy.Actor) bool {
			return a.Role == models.RoleModerator
		}), int64(5), int64(42)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/titles/5/reviews/42", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Anonymous", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "")

		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/titles/5/reviews/42", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
