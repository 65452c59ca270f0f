package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakhi-4096/alx-backend-user-data/internal/auth"
	"github.com/sakhi-4096/alx-backend-user-data/internal/http/respond"
	"github.com/sakhi-4096/alx-backend-user-data/internal/models/dto"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler owns the user, session and password reset endpoints.
type AuthHandler struct {
	auth   *auth.Service
	cookie CookieConfig
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session_id"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthHandler{auth: svc, cookie: cookie, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleWelcome)
	mux.HandleFunc("POST /users", h.handleUsers)
	mux.HandleFunc("POST /sessions", h.handleLogin)
	mux.HandleFunc("DELETE /sessions", h.handleLogout)
	mux.HandleFunc("GET /profile", h.handleProfile)
	mux.HandleFunc("POST /reset_password", h.handleResetRequest)
	mux.HandleFunc("PUT /reset_password", h.handleResetConfirm)
}

func (h *AuthHandler) handleWelcome(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusOK, "Bienvenue")
}

func (h *AuthHandler) handleUsers(w http.ResponseWriter, r *http.Request) {
	email, password := formValue(r, "email"), r.FormValue("password")
	if email == "" || password == "" {
		respond.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.auth.Register(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAlreadyExists):
			respond.Message(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, auth.ErrPasswordTooLong):
			respond.Message(w, http.StatusBadRequest, "password is too long")
		default:
			h.internalError(w, r, "register user", err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.UserMessage{Email: user.Email, Message: "User created"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	email, password := formValue(r, "email"), r.FormValue("password")
	if !h.auth.ValidLogin(r.Context(), email, password) {
		respond.Error(w, http.StatusUnauthorized)
		return
	}

	sessionID, err := h.auth.CreateSession(r.Context(), email)
	if err != nil {
		h.internalError(w, r, "create session", err)
		return
	}
	if sessionID == "" {
		respond.Error(w, http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionID, 0))
	respond.JSON(w, http.StatusOK, dto.UserMessage{Email: email, Message: "Logged in"})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUserBySession(r.Context(), h.sessionID(r))
	if err != nil {
		h.internalError(w, r, "lookup session", err)
		return
	}
	if user == nil {
		respond.Error(w, http.StatusForbidden)
		return
	}

	if err := h.auth.DestroySession(r.Context(), user.ID); err != nil {
		h.internalError(w, r, "destroy session", err)
		return
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUserBySession(r.Context(), h.sessionID(r))
	if err != nil {
		h.internalError(w, r, "lookup session", err)
		return
	}
	if user == nil {
		respond.Error(w, http.StatusForbidden)
		return
	}

	respond.JSON(w, http.StatusOK, dto.Profile{Email: user.Email})
}

func (h *AuthHandler) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	email := formValue(r, "email")

	token, err := h.auth.RequestPasswordReset(r.Context(), email)
	if err != nil {
		if errors.Is(err, auth.ErrNoSuchUser) {
			respond.Error(w, http.StatusForbidden)
			return
		}
		h.internalError(w, r, "request password reset", err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.ResetToken{Email: email, ResetToken: token})
}

func (h *AuthHandler) handleResetConfirm(w http.ResponseWriter, r *http.Request) {
	email := formValue(r, "email")
	token := formValue(r, "reset_token")
	newPassword := r.FormValue("new_password")
	if newPassword == "" {
		respond.Message(w, http.StatusBadRequest, "new_password is required")
		return
	}

	if err := h.auth.ConfirmPasswordReset(r.Context(), token, newPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			respond.Error(w, http.StatusForbidden)
		case errors.Is(err, auth.ErrPasswordTooLong):
			respond.Message(w, http.StatusBadRequest, "password is too long")
		default:
			h.internalError(w, r, "confirm password reset", err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.UserMessage{Email: email, Message: "Password updated"})
}

func (h *AuthHandler) internalError(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.logger.ErrorContext(r.Context(), action+" failed", "error", err, "path", r.URL.Path)
	respond.Error(w, http.StatusInternalServerError)
}

func (h *AuthHandler) sessionID(r *http.Request) string {
	c, err := r.Cookie(h.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
