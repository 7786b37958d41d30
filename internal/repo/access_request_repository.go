package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

type AccessRequestRepository interface {
	// Create assigns the id and timestamps. A second request for the same
	// email fails with ErrDuplicatedValueUnique.
	Create(ctx context.Context, req models.AccessRequest) (models.AccessRequest, error)
	GetAll(ctx context.Context) ([]models.AccessRequest, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) (models.AccessRequest, error)
}
