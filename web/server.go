// Package web is the JSON API over the ordering core: menu, cart, checkout
// wizard and order placement. Sessions ride an opaque cookie.
package web

import (
	"net/http"

	"crispy-corner/config"
	"crispy-corner/logger"
	"crispy-corner/metrics"
	"crispy-corner/services"
	"crispy-corner/upload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const sessionCookie = "cc_session"

type Server struct {
	cfg      *config.Config
	catalog  *services.Catalog
	sessions *services.SessionRegistry
	routes   services.RouteFinder
	uploads  *upload.Client
	metrics  *metrics.Registry
	log      *logger.Logger
}

func NewServer(
	cfg *config.Config,
	catalog *services.Catalog,
	sessions *services.SessionRegistry,
	routes services.RouteFinder,
	uploads *upload.Client,
	reg *metrics.Registry,
	log *logger.Logger,
) *Server {
	return &Server{
		cfg:      cfg,
		catalog:  catalog,
		sessions: sessions,
		routes:   routes,
		uploads:  uploads,
		metrics:  reg,
		log:      log,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/menu", s.handleMenu)
	r.Get("/categories", s.handleCategories)

	r.Get("/cart", s.handleGetCart)
	r.Post("/cart/items/{id}", s.handleAddItem)
	r.Delete("/cart/items/{id}", s.handleRemoveItem)
	r.Delete("/cart", s.handleClearCart)

	r.Get("/checkout", s.handleGetCheckout)
	r.Post("/checkout/details", s.handleDetails)
	r.Post("/checkout/back", s.handleBack)
	r.Post("/checkout/location", s.handleSetLocation)
	r.Post("/checkout/location/lock", s.handleLockLocation)
	r.Post("/checkout/location/unlock", s.handleUnlockLocation)
	r.Post("/checkout/location/resolve", s.handleResolveLocation)
	r.Post("/checkout/payment", s.handlePayment)
	r.Post("/checkout/payment/proof", s.handleUploadProof)

	r.Post("/orders", s.handlePlaceOrder)

	return r
}

// session finds or creates the caller's session, issuing the cookie on first
// touch.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *services.Session {
	var key string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		key = c.Value
	} else {
		key = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	sess := s.sessions.Get(key)
	s.metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	return sess
}
