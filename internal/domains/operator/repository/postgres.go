package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmapos-backend/internal/domains/operator/model"
)

// OperatorRepository defines operator data access
type OperatorRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.Operator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operator, error)
}

type postgresOperatorRepository struct {
	db *pgxpool.Pool
}

// NewPostgresOperatorRepository creates a new PostgreSQL operator repository
func NewPostgresOperatorRepository(db *pgxpool.Pool) OperatorRepository {
	return &postgresOperatorRepository{db: db}
}

const operatorColumns = `id, username, password_hash, full_name, role, is_active, created_at, updated_at`

func scanOperator(row pgx.Row) (*model.Operator, error) {
	var op model.Operator
	err := row.Scan(&op.ID, &op.Username, &op.PasswordHash, &op.FullName, &op.Role, &op.IsActive, &op.CreatedAt, &op.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *postgresOperatorRepository) FindByUsername(ctx context.Context, username string) (*model.Operator, error) {
	query := fmt.Sprintf(`SELECT %s FROM operators WHERE username = $1`, operatorColumns)

	op, err := scanOperator(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("failed to find operator by username: %w", err)
	}
	return op, nil
}

func (r *postgresOperatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Operator, error) {
	query := fmt.Sprintf(`SELECT %s FROM operators WHERE id = $1`, operatorColumns)

	op, err := scanOperator(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("failed to find operator by id: %w", err)
	}
	return op, nil
}
