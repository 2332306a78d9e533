package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSessionCookie(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		wantSecure bool
		wantSite   http.SameSite
	}{
		{name: "development", production: false, wantSecure: false, wantSite: http.SameSiteLaxMode},
		{name: "production", production: true, wantSecure: true, wantSite: http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SetSessionCookie(rec, "T1", time.Hour, tt.production)

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			c := cookies[0]

			assert.Equal(t, "tokenlogin", c.Name)
			assert.Equal(t, "T1", c.Value)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, tt.wantSecure, c.Secure)
			assert.Equal(t, tt.wantSite, c.SameSite)
			assert.Equal(t, 3600, c.MaxAge)
		})
	}
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tokenlogin", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.True(t, cookies[0].HttpOnly)
}
