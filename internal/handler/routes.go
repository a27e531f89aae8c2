package handler

import (
	"net/http"

	"github.com/Thatkidtk/packtrack-pro/internal/service"
)

// Rate limits matching the original deployment: 5 auth attempts and 100 API
// requests per client per 15-minute window.
const rateWindow = 15 * 60 // seconds

// RegisterRoutes sets up all HTTP routes on the given mux. Bulk routes are
// registered as exact patterns so they take precedence over the {id} routes.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, sessions *service.SessionService, items *service.ItemService, cookieSecure bool) {
	authLimiter := service.NewTokenBucket(5.0/rateWindow, 5)
	apiLimiter := service.NewTokenBucket(100.0/rateWindow, 100)

	authHandler := NewAuthHandler(auth, sessions, cookieSecure)
	itemHandler := NewItemHandler(items)

	mux.HandleFunc("GET /api/health", HandleHealth)

	mux.Handle("POST /api/auth/register", RateLimit(authLimiter, http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", RateLimit(authLimiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(sessions, http.HandlerFunc(authHandler.HandleMe)))

	protected := func(h http.HandlerFunc) http.Handler {
		return RateLimit(apiLimiter, RequireAuth(sessions, h))
	}

	mux.Handle("GET /api/items", protected(itemHandler.HandleList))
	mux.Handle("POST /api/items", protected(itemHandler.HandleCreate))
	mux.Handle("POST /api/items/bulk", protected(itemHandler.HandleBulkCreate))
	mux.Handle("DELETE /api/items/bulk", protected(itemHandler.HandleBulkDelete))
	mux.Handle("PUT /api/items/{id}", protected(itemHandler.HandleUpdate))
	mux.Handle("DELETE /api/items/{id}", protected(itemHandler.HandleDelete))

	// JSON 404 for anything else under /api.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
}
