package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmapos-backend/internal/domains/catalog/model"
)

const itemColumns = `id, name, sku, price, category, stock, brand, is_active, created_at, updated_at`

// PostgresRepository implements RepositoryInterface with PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance
func NewPostgresRepository(db *pgxpool.Pool) RepositoryInterface {
	return &PostgresRepository{db: db}
}

func scanItem(row pgx.Row) (*model.Item, error) {
	var i model.Item
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SKU,
		&i.Price,
		&i.Category,
		&i.Stock,
		&i.Brand,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// GetByID finds an item by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE id = $1`, itemColumns)

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}

	return item, nil
}

// GetByIDs fetches multiple items in one round trip. Missing ids are skipped.
func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM items WHERE id = ANY($1)`, itemColumns)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get items by ids: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// GetBySKU finds an item by SKU.
func (r *PostgresRepository) GetBySKU(ctx context.Context, sku string) (*model.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE sku = $1`, itemColumns)

	item, err := scanItem(r.db.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item by sku: %w", err)
	}

	return item, nil
}

// List returns items matching the filter with a total count.
func (r *PostgresRepository) List(ctx context.Context, filter *model.ListItemsFilter) ([]model.Item, int, error) {
	where := `WHERE is_active = TRUE`
	args := []interface{}{}
	argn := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d)`, argn, argn)
		args = append(args, "%"+filter.Search+"%")
		argn++
	}
	if filter.Category != "" {
		where += fmt.Sprintf(` AND category = $%d`, argn)
		args = append(args, filter.Category)
		argn++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM items ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT %s FROM items %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		itemColumns, where, argn, argn+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}

	return items, total, rows.Err()
}

// Create inserts a new item.
func (r *PostgresRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (id, name, sku, price, category, stock, brand, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Price, item.Category,
		item.Stock, item.Brand, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateSKU
		}
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

// Update overwrites an existing item.
func (r *PostgresRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET name = $2, sku = $3, price = $4, category = $5, stock = $6,
		    brand = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	item.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		item.ID, item.Name, item.SKU, item.Price, item.Category,
		item.Stock, item.Brand, item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateSKU
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

// Deactivate soft-deletes an item.
func (r *PostgresRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE items SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

// DecrementStockWithTx reduces stock inside the checkout transaction.
// GREATEST keeps stock from going negative when oversold.
func (r *PostgresRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, qty int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE items SET stock = GREATEST(0, stock - $2), updated_at = NOW() WHERE id = $1`,
		itemID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}
