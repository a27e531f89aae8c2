package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Thatkidtk/packtrack-pro/internal/domain"
	"github.com/Thatkidtk/packtrack-pro/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	sessions     *service.SessionService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookieSecure: cookieSecure}
}

// HandleRegister processes a JSON registration request. The new user is
// logged in immediately: the response carries a fresh session cookie.
// POST /api/auth/register
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"success":true,"user":{...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		slog.Error("create session after register", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserDTO(user),
	})
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"success":true,"user":{...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		slog.Error("create session after login", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserDTO(user),
	})
}

// HandleLogout destroys the server-side session and clears the cookie.
// Safe to call without a valid session.
// POST /api/auth/logout
// Response: {"success":true}
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			slog.Error("destroy session", "error", err)
			writeError(w, http.StatusInternalServerError, "Could not log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user":{...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": identityDTO(identity),
	})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	token, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours, matches the session TTL
	})
	return nil
}
