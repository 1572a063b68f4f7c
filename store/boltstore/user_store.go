package boltstore

import (
	"context"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

type userStore struct {
	db *bolt.DB
}

func (s *userStore) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	err := s.db.Update(func(tx *bolt.Tx) error {
		return put(tx, usersBucket, u.ID, u)
	})
	return apperr.Database.Wrap(err)
}

func (s *userStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = get(tx, usersBucket, id, &u)
		return err
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	if !found {
		return nil, apperr.NotFound.New("user %s not found", id)
	}
	return &u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var match *entity.User
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, usersBucket, func(u entity.User) error {
			if match == nil && u.Email == email {
				match = &u
			}
			return nil
		})
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	if match == nil {
		return nil, apperr.NotFound.New("user with email %s not found", email)
	}
	return match, nil
}

func (s *userStore) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, usersBucket, func(u entity.User) error {
			users = append(users, u)
			return nil
		})
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	return users, nil
}

func (s *userStore) Save(ctx context.Context, u *entity.User) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		var existing entity.User
		found, err := get(tx, usersBucket, u.ID, &existing)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound.New("user %s not found", u.ID)
		}
		u.CreatedAt = existing.CreatedAt
		u.UpdatedAt = time.Now().UTC()
		return put(tx, usersBucket, u.ID, u)
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(usersBucket).Get([]byte(id)) == nil {
			return apperr.NotFound.New("user %s not found", id)
		}
		return tx.Bucket(usersBucket).Delete([]byte(id))
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}

func (s *userStore) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	count := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, usersBucket, func(u entity.User) error {
			if u.RestaurantID != nil && *u.RestaurantID == restaurantID {
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
