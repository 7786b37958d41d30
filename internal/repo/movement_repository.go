package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// MovementRepository is the append-only log of stock changes.
type MovementRepository interface {
	Log(ctx context.Context, m models.Movement) error
	GetBySKU(ctx context.Context, sku string, mf MovementFilter) ([]models.Movement, int, error)
}
