package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/api/middleware"
	"github.com/spotly/meeting-api/internal/api/shared"
	"github.com/spotly/meeting-api/internal/mocks"
	"github.com/spotly/meeting-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantStatus  int
		wantMessage string
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: "Authorization header required"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMessage: "Invalid authorization format"},
		{name: "no token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: "Invalid authorization format"},
		{name: "expired", header: "Bearer old", validateErr: auth.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantMessage: "Token expired"},
		{name: "invalid", header: "Bearer bad", validateErr: auth.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantMessage: "Invalid token"},
		{name: "not yet valid", header: "Bearer early", validateErr: auth.ErrTokenNotYetValid, wantStatus: http.StatusUnauthorized, wantMessage: "Invalid token"},
		{name: "unexpected failure", header: "Bearer x", validateErr: errors.New("key store offline"), wantStatus: http.StatusInternalServerError, wantMessage: "Authentication error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
					if tt.validateErr != nil {
						return nil, tt.validateErr
					}
					assert.Equal(t, "good-token", token)
					return &auth.Claims{UserID: userID}, nil
				},
			}

			var seen uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = shared.GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/meetings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, seen)
				return
			}

			var body shared.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, uuid.Nil, seen)
		})
	}
}
