package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/courtside/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func sign(t *testing.T, secret []byte, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func protected() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := GetUserRoleFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(role))
	})
	return Authenticate(testSecret)(Authorize(string(models.RoleAdmin))(ok))
}

func TestAuthenticateAndAuthorize(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "admin token",
			header:     "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": future}),
			wantStatus: http.StatusOK,
		},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{
			name:       "expired",
			header:     "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": past}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + sign(t, []byte("other"), jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": future}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown role",
			header:     "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "player", "exp": future}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no role",
			header:     "Bearer " + sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"exp": future}),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/players", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "admin", rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestAuthorize_RoleNotAllowed(t *testing.T) {
	h := Authenticate(testSecret)(Authorize("superuser")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
