// Package memstore is an in-memory Store used by tests. It mirrors the
// behavior contract of the real adapters: unordered scans, UUID assignment,
// timestamp stamping, NotFound on missing records.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

type Store struct {
	mu          sync.Mutex
	users       map[string]entity.User
	restaurants map[string]entity.Restaurant
	orders      map[string]entity.Order
	items       map[string]entity.OrderItem

	// CreateOrderErr, when set, makes order creation fail. Lets tests
	// exercise partial-failure paths.
	CreateOrderErr error
}

func New() *Store {
	return &Store{
		users:       map[string]entity.User{},
		restaurants: map[string]entity.Restaurant{},
		orders:      map[string]entity.Order{},
		items:       map[string]entity.OrderItem{},
	}
}

func (s *Store) Users() store.UserStore             { return &userStore{s} }
func (s *Store) Restaurants() store.RestaurantStore { return &restaurantStore{s} }
func (s *Store) Orders() store.OrderStore           { return &orderStore{s} }
func (s *Store) Close() error                       { return nil }

// ---- users ----

type userStore struct{ s *Store }

func (u *userStore) Create(ctx context.Context, user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	u.s.users[user.ID] = *user
	return nil
}

func (u *userStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if usr, ok := u.s.users[id]; ok {
		return &usr, nil
	}
	return nil, apperr.NotFound.New("user %s not found", id)
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, usr := range u.s.users {
		if usr.Email == email {
			found := usr
			return &found, nil
		}
	}
	return nil, apperr.NotFound.New("user with email %s not found", email)
}

func (u *userStore) GetAll(ctx context.Context) ([]entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	out := make([]entity.User, 0, len(u.s.users))
	for _, usr := range u.s.users {
		out = append(out, usr)
	}
	return out, nil
}

func (u *userStore) Save(ctx context.Context, user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	existing, ok := u.s.users[user.ID]
	if !ok {
		return apperr.NotFound.New("user %s not found", user.ID)
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	u.s.users[user.ID] = *user
	return nil
}

func (u *userStore) Delete(ctx context.Context, id string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return apperr.NotFound.New("user %s not found", id)
	}
	delete(u.s.users, id)
	return nil
}

func (u *userStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	count := 0
	for _, usr := range u.s.users {
		if usr.RestaurantID != nil && *usr.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

// ---- restaurants ----

type restaurantStore struct{ s *Store }

func (r *restaurantStore) Create(ctx context.Context, rest *entity.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rest.ID == "" {
		rest.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rest.CreatedAt = now
	rest.UpdatedAt = now
	r.s.restaurants[rest.ID] = *rest
	return nil
}

func (r *restaurantStore) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rest, ok := r.s.restaurants[id]; ok {
		return &rest, nil
	}
	return nil, apperr.NotFound.New("restaurant %s not found", id)
}

func (r *restaurantStore) GetByEmail(ctx context.Context, email string) (*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rest := range r.s.restaurants {
		if rest.Email == email {
			found := rest
			return &found, nil
		}
	}
	return nil, apperr.NotFound.New("restaurant with email %s not found", email)
}

func (r *restaurantStore) GetAll(ctx context.Context) ([]entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Restaurant, 0, len(r.s.restaurants))
	for _, rest := range r.s.restaurants {
		out = append(out, rest)
	}
	return out, nil
}

func (r *restaurantStore) Save(ctx context.Context, rest *entity.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.restaurants[rest.ID]
	if !ok {
		return apperr.NotFound.New("restaurant %s not found", rest.ID)
	}
	rest.CreatedAt = existing.CreatedAt
	rest.UpdatedAt = time.Now().UTC()
	r.s.restaurants[rest.ID] = *rest
	return nil
}

func (r *restaurantStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.restaurants[id]; !ok {
		return apperr.NotFound.New("restaurant %s not found", id)
	}
	delete(r.s.restaurants, id)
	return nil
}

// ---- orders ----

type orderStore struct{ s *Store }

func (o *orderStore) Create(ctx context.Context, order *entity.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if o.s.CreateOrderErr != nil {
		return o.s.CreateOrderErr
	}
	for _, existing := range o.s.orders {
		if existing.OrderNumber == order.OrderNumber {
			return apperr.Conflict.New("order number %s already exists", order.OrderNumber)
		}
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.NewString()
		}
		order.Items[i].OrderID = order.ID
		o.s.items[order.Items[i].ID] = order.Items[i]
	}
	stored := *order
	stored.Items = nil
	o.s.orders[order.ID] = stored
	return nil
}

func (o *orderStore) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	order, ok := o.s.orders[id]
	if !ok {
		return nil, apperr.NotFound.New("order %s not found", id)
	}
	order.Items = o.itemsForLocked(id)
	return &order, nil
}

func (o *orderStore) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	for _, order := range o.s.orders {
		if order.OrderNumber == orderNumber {
			order.Items = o.itemsForLocked(order.ID)
			return &order, nil
		}
	}
	return nil, apperr.NotFound.New("order %s not found", orderNumber)
}

func (o *orderStore) GetAll(ctx context.Context) ([]entity.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	out := make([]entity.Order, 0, len(o.s.orders))
	for _, order := range o.s.orders {
		out = append(out, order)
	}
	return out, nil
}

func (o *orderStore) GetByRestaurant(ctx context.Context, restaurantID string) ([]entity.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	var out []entity.Order
	for _, order := range o.s.orders {
		if order.RestaurantID == restaurantID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (o *orderStore) Save(ctx context.Context, order *entity.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	existing, ok := o.s.orders[order.ID]
	if !ok {
		return apperr.NotFound.New("order %s not found", order.ID)
	}
	order.CreatedAt = existing.CreatedAt
	order.UpdatedAt = time.Now().UTC()
	stored := *order
	stored.Items = nil
	o.s.orders[order.ID] = stored
	return nil
}

func (o *orderStore) UpdateStatusGuarded(ctx context.Context, order *entity.Order, from entity.OrderStatus) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	existing, ok := o.s.orders[order.ID]
	if !ok || existing.Status != from {
		return false, nil
	}
	order.CreatedAt = existing.CreatedAt
	stored := *order
	stored.Items = nil
	o.s.orders[order.ID] = stored
	return true, nil
}

func (o *orderStore) ReplaceItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	for id, it := range o.s.items {
		if it.OrderID == orderID {
			delete(o.s.items, id)
		}
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].OrderID = orderID
		o.s.items[items[i].ID] = items[i]
	}
	return nil
}

func (o *orderStore) Delete(ctx context.Context, id string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if _, ok := o.s.orders[id]; !ok {
		return apperr.NotFound.New("order %s not found", id)
	}
	for itemID, it := range o.s.items {
		if it.OrderID == id {
			delete(o.s.items, itemID)
		}
	}
	delete(o.s.orders, id)
	return nil
}

func (o *orderStore) Count(ctx context.Context) (int, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	return len(o.s.orders), nil
}

func (o *orderStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	count := 0
	for _, order := range o.s.orders {
		if order.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (o *orderStore) itemsForLocked(orderID string) []entity.OrderItem {
	var items []entity.OrderItem
	for _, it := range o.s.items {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items
}
