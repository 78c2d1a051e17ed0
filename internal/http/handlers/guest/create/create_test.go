package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/guestlist-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/guestlist-backend/internal/models"
	"github.com/magabrotheeeer/guestlist-backend/internal/storage/repository"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, addedBy *string, req models.CreateGuestRequest) (*models.Guest, error) {
	args := m.Called(ctx, addedBy, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guest), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const userUID = "3f6a9e70-11ab-4f6e-8a7e-6a07c4a7b001"

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное добавление гостя",
			requestBody: models.CreateGuestRequest{
				LastName:   "Sweynsson",
				FirstName:  "Canute",
				OtherNames: []string{"Cnut the Great"},
				MaxPlusses: 2,
			},
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*string"), mock.AnythingOfType("models.CreateGuestRequest")).
					Return(&models.Guest{
						ID:         "6f1c8b2e-4c52-4f19-9d20-5a1df1f0a111",
						LastName:   "Sweynsson",
						FirstName:  "Canute",
						OtherNames: []string{"Cnut the Great"},
						MaxPlusses: 2,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"lastName":"Sweynsson"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			userUID:        userUID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "отсутствуют обязательные поля",
			requestBody: models.CreateGuestRequest{
				OtherNames: []string{"Nameless"},
			},
			userUID:        userUID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field LastName is a required field, field FirstName is a required field`,
		},
		{
			name: "гость без авторизации при выключенной аутентификации",
			requestBody: models.CreateGuestRequest{
				LastName:  "Godwinson",
				FirstName: "Harold",
			},
			userUID: "",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, (*string)(nil), mock.AnythingOfType("models.CreateGuestRequest")).
					Return(&models.Guest{
						ID:        "9b0d3c44-8e6d-4a27-b1a0-2fd4a44f9e22",
						LastName:  "Godwinson",
						FirstName: "Harold",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"lastName":"Godwinson"`,
		},
		{
			name: "ошибка сервиса",
			requestBody: models.CreateGuestRequest{
				LastName:  "Sweynsson",
				FirstName: "Canute",
			},
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*string"), mock.AnythingOfType("models.CreateGuestRequest")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create guest"}`,
		},
		{
			name: "email уже занят",
			requestBody: models.CreateGuestRequest{
				LastName:  "Sweynsson",
				FirstName: "Canute",
			},
			userUID: userUID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*string"), mock.AnythingOfType("models.CreateGuestRequest")).
					Return(nil, repository.ErrEmailTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"email already in use"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/guests", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
