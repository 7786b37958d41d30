package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: []models.User{},
	}
}

func (r *InMemoryUserRepository) indexOf(email string) int {
	return slices.IndexFunc(r.users, func(u models.User) bool { return u.Email == email })
}

func (r *InMemoryUserRepository) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(u.Email) >= 0 {
		return models.User{}, ErrDuplicatedValueUnique
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(email); i >= 0 {
		return r.users[i], nil
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.users), nil
}

func (r *InMemoryUserRepository) Update(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(u.Email)
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	existing := r.users[i]
	existing.Name = u.Name
	existing.Role = u.Role
	if u.PasswordHash != "" {
		existing.PasswordHash = u.PasswordHash
	}
	existing.UpdatedAt = time.Now().UTC()
	r.users[i] = existing
	return existing, nil
}

func (r *InMemoryUserRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return ErrUserNotFound
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}
