package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/finlight/dashboard-be/internal/auth"
	"github.com/finlight/dashboard-be/internal/http/respond"
	"github.com/finlight/dashboard-be/internal/models/dto"
)

// AuthHandler owns the login, signup, and logout endpoints. The session
// cookie is set here, and only after a token has been fully issued, so an
// aborted request never commits a partial session.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/signup", h.handleSignup)
	mux.HandleFunc("/logout", h.handleLogout)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, claims, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	cookies := auth.NewHTTPCookies(w, r)
	cookies.Set(auth.SessionCookieName, token, claims.ExpiresAt.Sub(claims.IssuedAt))
	respond.JSON(w, http.StatusOK, "login successful", dto.SessionResponse{
		User:      user,
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, claims, token, err := h.svc.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	cookies := auth.NewHTTPCookies(w, r)
	cookies.Set(auth.SessionCookieName, token, claims.ExpiresAt.Sub(claims.IssuedAt))
	respond.JSON(w, http.StatusCreated, "account created", dto.SessionResponse{
		User:      user,
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.svc.Logout(auth.NewHTTPCookies(w, r))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// writeAuthError maps the closed auth error union onto HTTP responses. The
// switch is exhaustive over auth.Kind.
func writeAuthError(w http.ResponseWriter, err error) {
	var fields map[string]string
	var ae *auth.Error
	if errors.As(err, &ae) {
		fields = ae.Fields
	}

	switch auth.KindOf(err) {
	case auth.KindValidation:
		respond.FieldErrors(w, http.StatusBadRequest, "invalid input", fields)
	case auth.KindAuthentication:
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
	case auth.KindConflict:
		respond.FieldErrors(w, http.StatusConflict, "account already exists", fields)
	case auth.KindInfrastructure:
		log.Printf("auth infrastructure error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
