package gormstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

type orderStore struct {
	db *gorm.DB
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
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}

	// order and items in one transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}
		if len(o.Items) > 0 {
			if err := tx.Create(&o.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrapErr(err)
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &o, nil
}

func (s *orderStore) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var o entity.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&o, "order_number = ?", orderNumber).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &o, nil
}

func (s *orderStore) GetAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := s.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, wrapErr(err)
	}
	return orders, nil
}

func (s *orderStore) GetByRestaurant(ctx context.Context, restaurantID string) ([]entity.Order, error) {
	var orders []entity.Order
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Find(&orders).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return orders, nil
}

func (s *orderStore) Save(ctx context.Context, o *entity.Order) error {
	o.UpdatedAt = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", o.ID).
		Select("*").Omit("Items", "id", "created_at").
		Updates(o)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound.New("order %s not found", o.ID)
	}
	return nil
}

// UpdateStatusGuarded is the compare-and-swap write for status transitions:
// the row is only updated while it still carries the expected previous
// status, so concurrent transitions cannot silently overwrite each other.
func (s *orderStore) UpdateStatusGuarded(ctx context.Context, o *entity.Order, from entity.OrderStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", o.ID, string(from)).
		Select("*").Omit("Items", "id", "created_at").
		Updates(o)
	if res.Error != nil {
		return false, wrapErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *orderStore) ReplaceItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
			return err
		}
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = uuid.NewString()
			}
			items[i].OrderID = orderID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrapErr(err)
}

func (s *orderStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound.New("order %s not found", id)
		}
		return nil
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return wrapErr(err)
}

func (s *orderStore) Count(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Order{}).Count(&count).Error
	return int(count), wrapErr(err)
}

func (s *orderStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Order{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error
	return int(count), wrapErr(err)
}
