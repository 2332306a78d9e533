package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/metrics"
)

// Fixed 401 messages.
const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// Gate guards identity-scoped routes. Mount it once on a router group.
type Gate struct {
	secret  []byte
	log     logging.Logger
	metrics *metrics.Metrics
}

func NewGate(secret []byte, log logging.Logger, m *metrics.Metrics) *Gate {
	return &Gate{secret: secret, log: log.With("module", "auth_gate"), metrics: m}
}

// Require rejects requests without a valid session cookie and otherwise
// calls next with the identity attached to the request context.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw string
		if c, err := r.Cookie(common.SessionCookieName); err == nil {
			raw = c.Value
		}

		id, err := VerifyAndExtract(raw, g.secret)
		if err != nil {
			reason, msg := "invalid_token", MsgInvalidToken
			if errors.Is(err, ErrNoToken) {
				reason, msg = "no_token", MsgNoToken
			}
			g.metrics.AuthRejections.WithLabelValues(reason).Inc()
			g.log.Warn(r.Context(), "request rejected", "remote", r.RemoteAddr, "path", r.URL.Path, "reason", reason)
			writeUnauthorized(w, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
