package handlers

import (
	"log"
	"net/http"

	"github.com/finlight/dashboard-be/internal/http/respond"
	"github.com/finlight/dashboard-be/internal/storage"
)

const latestInvoiceLimit = 5

// DashboardHandler serves the read models behind the protected pages. Access
// control happens in the session middleware before these run.
type DashboardHandler struct {
	store storage.DashboardStore
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(store storage.DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Register attaches dashboard routes to the mux.
func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/dashboard/summary", h.handleSummary)
	mux.HandleFunc("/dashboard/customers", h.handleCustomers)
	mux.HandleFunc("/dashboard/invoices", h.handleInvoices)
	mux.HandleFunc("/dashboard/revenue", h.handleRevenue)
}

func (h *DashboardHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	summary, err := h.store.Summary(r.Context())
	if err != nil {
		log.Printf("dashboard summary: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", summary)
}

func (h *DashboardHandler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		log.Printf("list customers: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load customers")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", customers)
}

func (h *DashboardHandler) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	invoices, err := h.store.LatestInvoices(r.Context(), latestInvoiceLimit)
	if err != nil {
		log.Printf("latest invoices: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load invoices")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", invoices)
}

func (h *DashboardHandler) handleRevenue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	revenue, err := h.store.MonthlyRevenue(r.Context())
	if err != nil {
		log.Printf("monthly revenue: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load revenue")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", revenue)
}
