package gormstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return wrapErr(s.db.WithContext(ctx).Create(u).Error)
}

func (s *userStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &u, nil
}

func (s *userStore) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (s *userStore) Save(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", u.ID).
		Select("*").Omit("id", "created_at").
		Updates(u)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound.New("user %s not found", u.ID)
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound.New("user %s not found", id)
	}
	return nil
}

func (s *userStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.User{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error
	return int(count), wrapErr(err)
}
