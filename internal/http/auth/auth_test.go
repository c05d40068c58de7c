package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/http/auth"
)

var secret = []byte("test-secret")

func TestIssueAndParse(t *testing.T) {
	token, err := auth.IssueToken(secret, "alice", time.Hour)
	require.NoError(t, err)

	subject, err := auth.ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	_, err = auth.ParseToken([]byte("other"), token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.IssueToken(secret, "alice", -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(secret, token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	valid, err := auth.IssueToken(secret, "alice", time.Hour)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := auth.Subject(r.Context())
		_, _ = w.Write([]byte(subject))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "Valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "LowercaseScheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			auth.Middleware(secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
