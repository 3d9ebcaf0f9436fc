package storage

import (
	"context"
	"errors"

	"github.com/finlight/dashboard-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations the auth flows need. The
// relational schema behind it is owned by the store.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// DashboardStore serves the read models behind the protected pages.
type DashboardStore interface {
	Summary(ctx context.Context) (models.DashboardSummary, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	LatestInvoices(ctx context.Context, limit int) ([]models.Invoice, error)
	MonthlyRevenue(ctx context.Context) ([]models.MonthlyRevenue, error)
}
