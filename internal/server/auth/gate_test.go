package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("gate-secret")

func newTestGate() *Gate {
	return NewGate(testSecret, logging.Nop(), metrics.New(prometheus.NewRegistry()))
}

func whoami(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		id, ok := IdentityFrom(r.Context())
		require.True(t, ok, "identity must be attached before the handler runs")
		_, _ = w.Write([]byte(id.Username))
	})
}

func TestGateRequire(t *testing.T) {
	valid, err := IssueToken(Identity{SubjectID: "id-1", Username: "alice"}, testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantBody   string
		wantCalled bool
	}{
		{
			name:       "valid cookie",
			cookie:     &http.Cookie{Name: common.SessionCookieName, Value: valid},
			wantStatus: http.StatusOK,
			wantBody:   "alice",
			wantCalled: true,
		},
		{
			name:       "no cookie",
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"msg":"No token, authorization denied"}`,
		},
		{
			name:       "empty cookie",
			cookie:     &http.Cookie{Name: common.SessionCookieName, Value: ""},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"msg":"No token, authorization denied"}`,
		},
		{
			name:       "garbage cookie",
			cookie:     &http.Cookie{Name: common.SessionCookieName, Value: "garbage"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"msg":"Token is not valid"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := newTestGate().Require(whoami(t, &called))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestGateRequire_ExpiredTokenIs401(t *testing.T) {
	expired, err := IssueToken(Identity{SubjectID: "id-1", Username: "alice"}, testSecret, -time.Minute)
	require.NoError(t, err)

	called := false
	h := newTestGate().Require(whoami(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: expired})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"msg":"Token is not valid"}`, rec.Body.String())
	assert.False(t, called)
}
