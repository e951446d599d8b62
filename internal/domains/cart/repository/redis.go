package repository

import (
	"context"
	"fmt"
	"time"

	"pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/pkg/cache"
)

// CartRepository stores in-progress register carts
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type redisCartRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisCartRepository creates a cart repository backed by redis. Carts
// expire after ttl of inactivity; saving refreshes the window.
func NewRedisCartRepository(c cache.Cache, ttl time.Duration) CartRepository {
	return &redisCartRepository{cache: c, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("pos:cart:%s", sessionID)
}

func (r *redisCartRepository) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	var cart model.Cart
	found, err := r.cache.Get(ctx, cartKey(sessionID), &cart)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		return nil, model.ErrCartNotFound
	}
	return &cart, nil
}

func (r *redisCartRepository) Save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now()
	if err := r.cache.Set(ctx, cartKey(cart.SessionID), cart, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *redisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
