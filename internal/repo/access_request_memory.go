package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

type InMemoryAccessRequestRepository struct {
	mu       sync.RWMutex
	requests []models.AccessRequest
}

func NewInMemoryAccessRequestRepository() *InMemoryAccessRequestRepository {
	return &InMemoryAccessRequestRepository{requests: []models.AccessRequest{}}
}

func (r *InMemoryAccessRequestRepository) Create(_ context.Context, req models.AccessRequest) (models.AccessRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.requests, func(x models.AccessRequest) bool { return x.Email == req.Email }) {
		return models.AccessRequest{}, ErrDuplicatedValueUnique
	}
	now := time.Now().UTC()
	req.ID = uuid.NewString()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests = append(r.requests, req)
	return req, nil
}

func (r *InMemoryAccessRequestRepository) GetAll(_ context.Context) ([]models.AccessRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.requests), nil
}

func (r *InMemoryAccessRequestRepository) UpdateStatus(_ context.Context, id string, status models.RequestStatus) (models.AccessRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.requests, func(x models.AccessRequest) bool { return x.ID == id })
	if i < 0 {
		return models.AccessRequest{}, ErrRequestNotFound
	}
	r.requests[i].Status = status
	r.requests[i].UpdatedAt = time.Now().UTC()
	return r.requests[i], nil
}
