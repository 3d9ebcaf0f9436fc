package models

import "time"

// Customer is a dashboard read model; mutation lives with the rendering
// layer's CRUD forms, not here.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Invoice amounts are stored in cents.
type Invoice struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	AmountCents  int64     `json:"amount_cents"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

// MonthlyRevenue is one bar of the revenue chart.
type MonthlyRevenue struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue_cents"`
}

// DashboardSummary backs the overview cards.
type DashboardSummary struct {
	CustomerCount     int64 `json:"customer_count"`
	InvoiceCount      int64 `json:"invoice_count"`
	PaidTotalCents    int64 `json:"paid_total_cents"`
	PendingTotalCents int64 `json:"pending_total_cents"`
}
