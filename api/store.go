package api

import (
	"context"

	"github.com/akarpov/finlog/db"
	"github.com/akarpov/finlog/models"
)

// Store is the persistence surface the handlers need. *db.Storage is the
// production implementation.
type Store interface {
	CreateUser(ctx context.Context, u models.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*db.Credentials, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, f db.TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

var _ Store = (*db.Storage)(nil)
