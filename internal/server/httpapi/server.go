// Package httpapi exposes the REST surface and mounts the realtime socket
// behind the session gate.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/auth"
	"github.com/outfitai/outfitai/internal/server/metrics"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	TokenTTL() time.Duration
}

type WardrobeService interface {
	Add(ctx context.Context, userID string, in services.NewClothing) (*models.ClothingItem, error)
	List(ctx context.Context, userID, category string) ([]*models.ClothingItem, error)
	Remove(ctx context.Context, userID, id string) error
}

type OutfitService interface {
	Suggest(ctx context.Context, userID, occasion string) ([]string, error)
	Chat(ctx context.Context, message string) (string, error)
}

type ListingService interface {
	Create(ctx context.Context, sellerID string, in services.NewListing) (*models.Listing, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	ListAvailable(ctx context.Context) ([]*models.Listing, error)
	ListMine(ctx context.Context, sellerID string) ([]*models.Listing, error)
	MarkSold(ctx context.Context, sellerID, id string) error
	Delete(ctx context.Context, sellerID, id string) error
}

type MessageService interface {
	History(ctx context.Context, username, partner string) ([]*models.Message, error)
	Conversations(ctx context.Context, username string) ([]*models.Conversation, error)
}

// Presence is the slice of presence.Router the REST surface uses.
type Presence interface {
	Relay(ctx context.Context, sender, recipient, body string) (*models.Message, bool, error)
	Online() []string
}

type ShareService interface {
	Create(ctx context.Context, userID, clothes string) (*models.ShareLink, string, error)
	Resolve(ctx context.Context, code string) (*services.SharedOutfit, error)
}

// Deps bundles everything the HTTP server routes to.
type Deps struct {
	Users    UserService
	Wardrobe WardrobeService
	Outfits  OutfitService
	Listings ListingService
	Messages MessageService
	Presence Presence
	Share    ShareService

	Gate     *auth.Gate
	Realtime http.Handler

	AllowedOrigins []string
	Production     bool

	Logger   logging.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

type HTTPServer struct {
	deps   Deps
	logger logging.Logger
	srv    *http.Server
}

func NewHTTPServer(addr string, d Deps) *HTTPServer {
	s := &HTTPServer{deps: d, logger: d.Logger.With("module", "http_server")}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the chi router. Every identity-scoped route lives in the
// gated group.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.deps.AllowedOrigins))
	r.Use(tracing)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/s/{code}", s.resolveShare)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.deps.Gate.Require)

		if s.deps.Realtime != nil {
			r.Handle("/ws", s.deps.Realtime)
		}

		r.Get("/api/auth/me", s.me)

		r.Route("/api/wardrobe", func(r chi.Router) {
			r.Post("/", s.addClothing)
			r.Get("/", s.listClothing)
			r.Delete("/{id}", s.removeClothing)
		})

		r.Post("/api/outfits/suggest", s.suggestOutfits)
		r.Post("/api/chat", s.chat)

		r.Route("/api/listings", func(r chi.Router) {
			r.Post("/", s.createListing)
			r.Get("/", s.listListings)
			r.Get("/mine", s.myListings)
			r.Get("/{id}", s.getListing)
			r.Post("/{id}/sold", s.markListingSold)
			r.Delete("/{id}", s.deleteListing)
		})

		r.Post("/api/messages", s.sendMessage)
		r.Get("/api/messages/{username}", s.history)
		r.Get("/api/conversations", s.conversations)
		r.Get("/api/presence", s.online)

		r.Post("/api/share", s.createShare)
	})

	return r
}

// Serve accepts connections on ln until Shutdown.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Stopping HTTP server...")
	return s.srv.Shutdown(ctx)
}
