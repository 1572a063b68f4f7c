// Package store defines the persistence contract both backends implement.
//
// The relational implementation lives in store/gormstore, the key-value one
// in store/boltstore. Callers must not depend on backend specifics: scan
// ordering is unspecified (sort explicitly when order matters) and secondary
// lookups may be full scans.
//
// Conventions shared by every implementation:
//   - Create assigns a UUID when the id is empty and stamps
//     CreatedAt/UpdatedAt.
//   - Save persists the full record, re-stamps UpdatedAt, and fails with
//     apperr.NotFound when the record does not exist.
//   - Lookups that find nothing fail with apperr.NotFound.
//   - Backend failures are wrapped with apperr.Database.
package store

import (
	"context"

	"github.com/TeamPaintbrush/thejerktracker/entity"
)

type Store interface {
	Users() UserStore
	Restaurants() RestaurantStore
	Orders() OrderStore
	Close() error
}

type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Save(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	CountByRestaurant(ctx context.Context, restaurantID string) (int, error)
}

type RestaurantStore interface {
	Create(ctx context.Context, r *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	GetByEmail(ctx context.Context, email string) (*entity.Restaurant, error)
	GetAll(ctx context.Context) ([]entity.Restaurant, error)
	Save(ctx context.Context, r *entity.Restaurant) error
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	// Create writes the order and its items together. A duplicate order
	// number fails with apperr.Conflict on every backend.
	Create(ctx context.Context, o *entity.Order) error
	// GetByID loads the order including its items.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	GetByRestaurant(ctx context.Context, restaurantID string) ([]entity.Order, error)
	// Save persists the order's own fields; items are managed via
	// ReplaceItems.
	Save(ctx context.Context, o *entity.Order) error
	// UpdateStatusGuarded persists o only if the stored record still has
	// status from (compare-and-swap). Returns false when another writer got
	// there first; callers surface that as a conflict.
	UpdateStatusGuarded(ctx context.Context, o *entity.Order, from entity.OrderStatus) (bool, error)
	// ReplaceItems swaps the order's item set wholesale.
	ReplaceItems(ctx context.Context, orderID string, items []entity.OrderItem) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByRestaurant(ctx context.Context, restaurantID string) (int, error)
}
