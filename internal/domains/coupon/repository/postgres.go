package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmapos-backend/internal/domains/coupon/model"
)

type postgresCouponRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCouponRepository creates a new PostgreSQL coupon repository
func NewPostgresCouponRepository(db *pgxpool.Pool) CouponRepository {
	return &postgresCouponRepository{db: db}
}

const couponColumns = `id, code, description, discount_type, value, min_purchase_amount,
		start_date, end_date, active, is_combinable, usage_limit, usage_count, redeemed,
		vendor_name, compensation_type, partnership_vendor_percent, partnership_mep_percent,
		applicable_item_ids, required_item_ids, buy_quantity, get_quantity,
		created_at, updated_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.Value, &c.MinPurchaseAmount,
		&c.StartDate, &c.EndDate, &c.Active, &c.IsCombinable, &c.UsageLimit, &c.UsageCount, &c.Redeemed,
		&c.VendorName, &c.CompensationType, &c.PartnershipVendorPercent, &c.PartnershipMEPPercent,
		&c.ApplicableItemIDs, &c.RequiredItemIDs, &c.BuyQuantity, &c.GetQuantity,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons WHERE id = $1`, couponColumns)

	coupon, err := scanCoupon(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon by id: %w", err)
	}
	return coupon, nil
}

func (r *postgresCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM coupons WHERE LOWER(code) = LOWER($1)`, couponColumns)

	coupon, err := scanCoupon(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon by code: %w", err)
	}
	return coupon, nil
}

func (r *postgresCouponRepository) List(ctx context.Context, filter model.ListCouponsFilter) ([]model.Coupon, int64, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Active != nil {
		where += fmt.Sprintf(" AND active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Vendor != "" {
		where += fmt.Sprintf(" AND vendor_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Vendor+"%")
		argIdx++
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM coupons %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM coupons %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		couponColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := make([]model.Coupon, 0)
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate coupons: %w", err)
	}

	return coupons, total, nil
}

func (r *postgresCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (
			id, code, description, discount_type, value, min_purchase_amount,
			start_date, end_date, active, is_combinable, usage_limit, usage_count, redeemed,
			vendor_name, compensation_type, partnership_vendor_percent, partnership_mep_percent,
			applicable_item_ids, required_item_ids, buy_quantity, get_quantity,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)`

	_, err := r.db.Exec(ctx, query,
		coupon.ID, coupon.Code, coupon.Description, coupon.DiscountType, coupon.Value, coupon.MinPurchaseAmount,
		coupon.StartDate, coupon.EndDate, coupon.Active, coupon.IsCombinable, coupon.UsageLimit, coupon.UsageCount, coupon.Redeemed,
		coupon.VendorName, coupon.CompensationType, coupon.PartnershipVendorPercent, coupon.PartnershipMEPPercent,
		coupon.ApplicableItemIDs, coupon.RequiredItemIDs, coupon.BuyQuantity, coupon.GetQuantity,
		coupon.CreatedAt, coupon.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *postgresCouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons SET
			description = $2, discount_type = $3, value = $4, min_purchase_amount = $5,
			start_date = $6, end_date = $7, active = $8, is_combinable = $9, usage_limit = $10,
			vendor_name = $11, compensation_type = $12,
			partnership_vendor_percent = $13, partnership_mep_percent = $14,
			applicable_item_ids = $15, required_item_ids = $16,
			buy_quantity = $17, get_quantity = $18,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		coupon.ID, coupon.Description, coupon.DiscountType, coupon.Value, coupon.MinPurchaseAmount,
		coupon.StartDate, coupon.EndDate, coupon.Active, coupon.IsCombinable, coupon.UsageLimit,
		coupon.VendorName, coupon.CompensationType,
		coupon.PartnershipVendorPercent, coupon.PartnershipMEPPercent,
		coupon.ApplicableItemIDs, coupon.RequiredItemIDs,
		coupon.BuyQuantity, coupon.GetQuantity,
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresCouponRepository) UpdateStatus(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE coupons SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update coupon status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresCouponRepository) ResetRedemption(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE coupons SET redeemed = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to reset coupon redemption: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresCouponRepository) RecordRedemptionWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	// The redeemed guard makes the UPDATE the serialization point for
	// single-use coupons: when two terminals race, the second one matches
	// no row and its checkout transaction rolls back.
	query := `
		UPDATE coupons SET
			usage_count = usage_count + 1,
			redeemed = CASE WHEN usage_limit = 'SINGLE' THEN TRUE ELSE redeemed END,
			updated_at = NOW()
		WHERE id = $1
		  AND (usage_limit <> 'SINGLE' OR redeemed = FALSE)`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to record coupon redemption: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponRedeemed
	}
	return nil
}

func (r *postgresCouponRepository) CheckCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM coupons WHERE LOWER(code) = LOWER($1))`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}
	return exists, nil
}
