package boltstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

type orderStore struct {
	db *bolt.DB
}

// putOrder stores the order record itself; items live in their own bucket so
// the two never get out of sync with partial encodes.
func putOrder(tx *bolt.Tx, o *entity.Order) error {
	stripped := *o
	stripped.Items = nil
	return put(tx, ordersBucket, o.ID, &stripped)
}

func loadItems(tx *bolt.Tx, orderID string) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := scan(tx, orderItemsBucket, func(it entity.OrderItem) error {
		if it.OrderID == orderID {
			items = append(items, it)
		}
		return nil
	})
	return items, err
}

func deleteItems(tx *bolt.Tx, orderID string) error {
	var stale [][]byte
	err := tx.Bucket(orderItemsBucket).ForEach(func(k, data []byte) error {
		var it entity.OrderItem
		if err := json.Unmarshal(data, &it); err != nil {
			return err
		}
		if it.OrderID == orderID {
			key := make([]byte, len(k))
			copy(key, k)
			stale = append(stale, key)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, key := range stale {
		if err := tx.Bucket(orderItemsBucket).Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderStore) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = now
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		// writers are serialized, so the scan-then-put is race-free; this
		// mirrors the unique index the relational backend enforces
		var dup bool
		err := scan(tx, ordersBucket, func(existing entity.Order) error {
			if existing.OrderNumber == o.OrderNumber {
				dup = true
			}
			return nil
		})
		if err != nil {
			return err
		}
		if dup {
			return apperr.Conflict.New("order number %s already exists", o.OrderNumber)
		}
		if err := putOrder(tx, o); err != nil {
			return err
		}
		for i := range o.Items {
			if o.Items[i].ID == "" {
				o.Items[i].ID = uuid.NewString()
			}
			o.Items[i].OrderID = o.ID
			if err := put(tx, orderItemsBucket, o.Items[i].ID, &o.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if apperr.Conflict.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = get(tx, ordersBucket, id, &o)
		if err != nil || !found {
			return err
		}
		o.Items, err = loadItems(tx, id)
		return err
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	if !found {
		return nil, apperr.NotFound.New("order %s not found", id)
	}
	return &o, nil
}

func (s *orderStore) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var match *entity.Order
	err := s.db.View(func(tx *bolt.Tx) error {
		err := scan(tx, ordersBucket, func(o entity.Order) error {
			if match == nil && o.OrderNumber == orderNumber {
				match = &o
			}
			return nil
		})
		if err != nil || match == nil {
			return err
		}
		match.Items, err = loadItems(tx, match.ID)
		return err
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	if match == nil {
		return nil, apperr.NotFound.New("order %s not found", orderNumber)
	}
	return match, nil
}

func (s *orderStore) GetAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, ordersBucket, func(o entity.Order) error {
			orders = append(orders, o)
			return nil
		})
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	return orders, nil
}

func (s *orderStore) GetByRestaurant(ctx context.Context, restaurantID string) ([]entity.Order, error) {
	var orders []entity.Order
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, ordersBucket, func(o entity.Order) error {
			if o.RestaurantID == restaurantID {
				orders = append(orders, o)
			}
			return nil
		})
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	return orders, nil
}

func (s *orderStore) Save(ctx context.Context, o *entity.Order) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		var existing entity.Order
		found, err := get(tx, ordersBucket, o.ID, &existing)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound.New("order %s not found", o.ID)
		}
		o.CreatedAt = existing.CreatedAt
		o.UpdatedAt = time.Now().UTC()
		return putOrder(tx, o)
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}

// UpdateStatusGuarded writes o only while the stored record still carries
// the expected previous status. Bolt serializes writers, so the read and the
// overwrite are atomic here.
func (s *orderStore) UpdateStatusGuarded(ctx context.Context, o *entity.Order, from entity.OrderStatus) (bool, error) {
	swapped := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		var existing entity.Order
		found, err := get(tx, ordersBucket, o.ID, &existing)
		if err != nil {
			return err
		}
		if !found || existing.Status != from {
			return nil
		}
		o.CreatedAt = existing.CreatedAt
		if err := putOrder(tx, o); err != nil {
			return err
		}
		swapped = true
		return nil
	})
	if err != nil {
		return false, apperr.Database.Wrap(err)
	}
	return swapped, nil
}

func (s *orderStore) ReplaceItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := deleteItems(tx, orderID); err != nil {
			return err
		}
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = uuid.NewString()
			}
			items[i].OrderID = orderID
			if err := put(tx, orderItemsBucket, items[i].ID, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return apperr.Database.Wrap(err)
}

func (s *orderStore) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(ordersBucket).Get([]byte(id)) == nil {
			return apperr.NotFound.New("order %s not found", id)
		}
		if err := deleteItems(tx, id); err != nil {
			return err
		}
		return tx.Bucket(ordersBucket).Delete([]byte(id))
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}

func (s *orderStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(ordersBucket).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, apperr.Database.Wrap(err)
	}
	return count, nil
}

func (s *orderStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, ordersBucket, func(o entity.Order) error {
			if o.RestaurantID == restaurantID {
				count++
			}
			return nil
		})
	})
	if err != nil {
		return 0, apperr.Database.Wrap(err)
	}
	return count, nil
}
