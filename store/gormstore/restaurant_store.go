package gormstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

type restaurantStore struct {
	db *gorm.DB
}

func (s *restaurantStore) Create(ctx context.Context, r *entity.Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return wrapErr(s.db.WithContext(ctx).Create(r).Error)
}

func (s *restaurantStore) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	var r entity.Restaurant
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &r, nil
}

func (s *restaurantStore) GetByEmail(ctx context.Context, email string) (*entity.Restaurant, error) {
	var r entity.Restaurant
	if err := s.db.WithContext(ctx).First(&r, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &r, nil
}

func (s *restaurantStore) GetAll(ctx context.Context) ([]entity.Restaurant, error) {
	var restaurants []entity.Restaurant
	if err := s.db.WithContext(ctx).Find(&restaurants).Error; err != nil {
		return nil, wrapErr(err)
	}
	return restaurants, nil
}

func (s *restaurantStore) Save(ctx context.Context, r *entity.Restaurant) error {
	r.UpdatedAt = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("id = ?", r.ID).
		Select("*").Omit("id", "created_at").
		Updates(r)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound.New("restaurant %s not found", r.ID)
	}
	return nil
}

func (s *restaurantStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&entity.Restaurant{}, "id = ?", id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound.New("restaurant %s not found", id)
	}
	return nil
}
