package auth

import (
	"net/http"
	"time"

	"github.com/outfitai/outfitai/internal/common"
)

func sameSite(production bool) http.SameSite {
	if production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// SetSessionCookie stores token in the tokenlogin cookie. In production the
// cookie is Secure and SameSite=None so cross-origin app clients receive it.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite(production),
	})
}

// ClearSessionCookie expires the tokenlogin cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, production bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   production,
		SameSite: sameSite(production),
	})
}
