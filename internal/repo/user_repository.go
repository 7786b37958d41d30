package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// UserRepository stores users keyed by their lowercased email.
type UserRepository interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, email string) error
}
