package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

const requestColumns = `id, business_name, industry, email, phone, description, status, created_at, updated_at`

func scanRequest(row rowScanner) (models.AccessRequest, error) {
	var a models.AccessRequest
	err := row.Scan(&a.ID, &a.BusinessName, &a.Industry, &a.Email, &a.Phone, &a.Description, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

type PostgresAccessRequestRepository struct {
	db *sql.DB
}

func NewPostgresAccessRequestRepository(db *sql.DB) *PostgresAccessRequestRepository {
	return &PostgresAccessRequestRepository{db: db}
}

func (r *PostgresAccessRequestRepository) Create(ctx context.Context, req models.AccessRequest) (models.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `INSERT INTO access_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING ` + requestColumns
	created, err := scanRequest(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), req.BusinessName, req.Industry, req.Email, req.Phone, req.Description, string(req.Status), time.Now().UTC()))
	if isUniqueViolation(err) {
		return models.AccessRequest{}, ErrDuplicatedValueUnique
	}
	return created, err
}

func (r *PostgresAccessRequestRepository) GetAll(ctx context.Context) ([]models.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+requestColumns+` FROM access_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []models.AccessRequest{}
	for rows.Next() {
		a, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, a)
	}
	return requests, rows.Err()
}

func (r *PostgresAccessRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) (models.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `UPDATE access_requests SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + requestColumns
	a, err := scanRequest(r.db.QueryRowContext(ctx, query, string(status), time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccessRequest{}, ErrRequestNotFound
	}
	return a, err
}
