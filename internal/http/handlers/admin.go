package handlers

import (
	"log"
	"net/http"

	"github.com/finlight/dashboard-be/internal/http/respond"
	"github.com/finlight/dashboard-be/internal/storage"
)

// AdminHandler serves the admin-only user listing. The session middleware
// guarantees an ADMIN role before these run.
type AdminHandler struct {
	store storage.UserStore
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(store storage.UserStore) *AdminHandler {
	return &AdminHandler{store: store}
}

// Register attaches admin routes to the mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/admin/users", h.handleListUsers)
}

func (h *AdminHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", users)
}
