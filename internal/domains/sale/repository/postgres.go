package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmapos-backend/internal/domains/sale/model"
)

type postgresSaleRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSaleRepository creates a new PostgreSQL sale repository
func NewPostgresSaleRepository(db *pgxpool.Pool) SaleRepository {
	return &postgresSaleRepository{db: db}
}

func (r *postgresSaleRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, sale *model.Transaction) error {
	var snapshot []byte
	if sale.CouponSnapshot != nil {
		data, err := json.Marshal(sale.CouponSnapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal coupon snapshot: %w", err)
		}
		snapshot = data
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO sales (
			id, subtotal, discount, total, coupon_code, coupon_snapshot,
			payment_method, operator_id, branch, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sale.ID, sale.Subtotal, sale.Discount, sale.Total, sale.CouponCode, snapshot,
		sale.PaymentMethod, sale.OperatorID, sale.Branch, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	for _, line := range sale.Lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO sale_lines (sale_id, item_id, name, sku, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, line.ItemID, line.Name, line.SKU, line.Quantity, line.UnitPrice, line.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale line: %w", err)
		}
	}

	return nil
}

func (r *postgresSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, subtotal, discount, total, coupon_code, coupon_snapshot,
			payment_method, operator_id, branch, created_at
		FROM sales WHERE id = $1`, id)

	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}

	if err := r.attachLines(ctx, []*model.Transaction{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *postgresSaleRepository) List(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, int64, error) {
	where, args := rangeClause(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, subtotal, discount, total, coupon_code, coupon_snapshot,
			payment_method, operator_id, branch, created_at
		FROM sales %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	sales, err := r.querySales(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *postgresSaleRepository) ListInRange(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, error) {
	where, args := rangeClause(filter)
	query := `
		SELECT id, subtotal, discount, total, coupon_code, coupon_snapshot,
			payment_method, operator_id, branch, created_at
		FROM sales ` + where + ` ORDER BY created_at ASC`

	return r.querySales(ctx, query, args...)
}

func rangeClause(filter model.ListSalesFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return where, args
}

func (r *postgresSaleRepository) querySales(ctx context.Context, query string, args ...interface{}) ([]model.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]*model.Transaction, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}

	if err := r.attachLines(ctx, sales); err != nil {
		return nil, err
	}

	result := make([]model.Transaction, 0, len(sales))
	for _, s := range sales {
		result = append(result, *s)
	}
	return result, nil
}

func scanSale(row pgx.Row) (*model.Transaction, error) {
	var sale model.Transaction
	var snapshot []byte

	err := row.Scan(
		&sale.ID, &sale.Subtotal, &sale.Discount, &sale.Total, &sale.CouponCode, &snapshot,
		&sale.PaymentMethod, &sale.OperatorID, &sale.Branch, &sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(snapshot) > 0 {
		var cs model.CouponSnapshot
		if err := json.Unmarshal(snapshot, &cs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal coupon snapshot: %w", err)
		}
		sale.CouponSnapshot = &cs
	}
	return &sale, nil
}

func (r *postgresSaleRepository) attachLines(ctx context.Context, sales []*model.Transaction) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(sales))
	byID := make(map[uuid.UUID]*model.Transaction, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
		byID[s.ID] = s
		s.Lines = []model.SaleLine{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT sale_id, item_id, name, sku, quantity, unit_price, line_total
		FROM sale_lines WHERE sale_id = ANY($1) ORDER BY sale_id`, ids)
	if err != nil {
		return fmt.Errorf("failed to load sale lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saleID uuid.UUID
		var line model.SaleLine
		if err := rows.Scan(&saleID, &line.ItemID, &line.Name, &line.SKU, &line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return fmt.Errorf("failed to scan sale line: %w", err)
		}
		if sale, ok := byID[saleID]; ok {
			sale.Lines = append(sale.Lines, line)
		}
	}
	return rows.Err()
}
