package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/service"
)

// MockFavoriteService is a mock implementation of FavoriteService
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Add(ctx context.Context, userID uuid.UUID, in service.AddFavoriteInput) (*model.Favorite, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Favorite), args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID uuid.UUID, name string, link *string) error {
	args := m.Called(ctx, userID, name, link)
	return args.Error(0)
}

func (m *MockFavoriteService) List(ctx context.Context, userID uuid.UUID) ([]*model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Favorite), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestFavoriteHandler_ListFavorites(t *testing.T) {
	userID := uuid.New()
	surveyID := uuid.New()

	tests := []struct {
		name           string
		setup          func(*MockFavoriteService)
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "favorites newest first",
			setup: func(svc *MockFavoriteService) {
				svc.On("List", mock.Anything, userID).Return([]*model.Favorite{
					model.NewFavorite(userID, &surveyID, model.Activity{Name: "Pottery class", Link: "https://example.com/pottery"}),
					model.NewFavorite(userID, nil, model.Activity{Name: "Hike"}),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "no favorites is an empty list",
			setup: func(svc *MockFavoriteService) {
				svc.On("List", mock.Anything, userID).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "store error",
			setup: func(svc *MockFavoriteService) {
				svc.On("List", mock.Anything, userID).Return(nil, &service.StoreError{Op: "list favorites", Err: errors.New("timeout")})
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockFavoriteService{}
			tt.setup(mockService)

			handler := NewFavoriteHandler(mockService)
			router := setupRouter(t)
			router.GET("/favorites", authenticated(userID, handler.ListFavorites))

			req := httptest.NewRequest("GET", "/favorites", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var out struct {
					Data []FavoriteView `json:"data"`
				}
				require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out))
				assert.Len(t, out.Data, tt.expectedCount)
				assert.NotNil(t, out.Data)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestFavoriteHandler_AddFavorite(t *testing.T) {
	userID := uuid.New()
	surveyID := uuid.New()
	activity := model.Activity{Name: "Sunset hike", CostRange: model.CostFree, Link: "https://www.alltrails.com/"}

	tests := []struct {
		name           string
		body           string
		setup          func(*MockFavoriteService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "saved with survey",
			body: `{"surveyId":"` + surveyID.String() + `","activity":{"name":"Sunset hike","costRange":"Free","link":"https://www.alltrails.com/"}}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Add", mock.Anything, userID, service.AddFavoriteInput{SurveyID: &surveyID, Activity: activity}).
					Return(model.NewFavorite(userID, &surveyID, activity), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing activity name",
			body: `{"activity":{"description":"no name"}}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Add", mock.Anything, userID, mock.Anything).Return(nil, service.ErrInvalidActivity)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid activity payload",
		},
		{
			name:           "malformed body",
			body:           `{"activity":`,
			setup:          func(*MockFavoriteService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid activity payload",
		},
		{
			name: "survey not owned",
			body: `{"surveyId":"` + surveyID.String() + `","activity":{"name":"Sunset hike"}}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Add", mock.Anything, userID, mock.Anything).Return(nil, service.ErrSurveyNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "store error",
			body: `{"activity":{"name":"Sunset hike"}}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Add", mock.Anything, userID, mock.Anything).
					Return(nil, &service.StoreError{Op: "save favorite", Err: errors.New("duplicate key value")})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "duplicate key value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockFavoriteService{}
			tt.setup(mockService)

			handler := NewFavoriteHandler(mockService)
			router := setupRouter(t)
			router.POST("/favorites", authenticated(userID, handler.AddFavorite))

			req := httptest.NewRequest("POST", "/favorites", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeResponse(t, w).Error)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestFavoriteHandler_RemoveFavorite(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		query          string
		setup          func(*MockFavoriteService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "by name and link",
			body: `{"activityName":"Hike","activityLink":"https://example.com"}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Remove", mock.Anything, userID, "Hike", strPtr("https://example.com")).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "without link targets the null-link favorite",
			body: `{"activityName":"Hike"}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Remove", mock.Anything, userID, "Hike", (*string)(nil)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "query parameters",
			query: "?activityName=Hike",
			setup: func(svc *MockFavoriteService) {
				svc.On("Remove", mock.Anything, userID, "Hike", (*string)(nil)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing name",
			body: `{"activityLink":"https://example.com"}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Remove", mock.Anything, userID, "", mock.Anything).Return(service.ErrInvalidActivity)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing activityName",
		},
		{
			name: "store error",
			body: `{"activityName":"Hike"}`,
			setup: func(svc *MockFavoriteService) {
				svc.On("Remove", mock.Anything, userID, "Hike", mock.Anything).
					Return(&service.StoreError{Op: "remove favorite", Err: errors.New("connection reset")})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockFavoriteService{}
			tt.setup(mockService)

			handler := NewFavoriteHandler(mockService)
			router := setupRouter(t)
			router.DELETE("/favorites", authenticated(userID, handler.RemoveFavorite))

			req := httptest.NewRequest("DELETE", "/favorites"+tt.query, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeResponse(t, w).Error)
			}
			mockService.AssertExpectations(t)
		})
	}
}
