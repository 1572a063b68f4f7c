package boltstore

import (
	"context"
	"time"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

type restaurantStore struct {
	db *bolt.DB
}

func (s *restaurantStore) Create(ctx context.Context, r *entity.Restaurant) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	err := s.db.Update(func(tx *bolt.Tx) error {
		return put(tx, restaurantsBucket, r.ID, r)
	})
	return apperr.Database.Wrap(err)
}

func (s *restaurantStore) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	var r entity.Restaurant
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = get(tx, restaurantsBucket, id, &r)
		return err
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	if !found {
		return nil, apperr.NotFound.New("restaurant %s not found", id)
	}
	return &r, nil
}

func (s *restaurantStore) GetByEmail(ctx context.Context, email string) (*entity.Restaurant, error) {
	var match *entity.Restaurant
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, restaurantsBucket, func(r entity.Restaurant) error {
			if match == nil && r.Email == email {
				match = &r
			}
			return nil
		})
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	if match == nil {
		return nil, apperr.NotFound.New("restaurant with email %s not found", email)
	}
	return match, nil
}

func (s *restaurantStore) GetAll(ctx context.Context) ([]entity.Restaurant, error) {
	var restaurants []entity.Restaurant
	err := s.db.View(func(tx *bolt.Tx) error {
		return scan(tx, restaurantsBucket, func(r entity.Restaurant) error {
			restaurants = append(restaurants, r)
			return nil
		})
	})
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}
	return restaurants, nil
}

func (s *restaurantStore) Save(ctx context.Context, r *entity.Restaurant) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		var existing entity.Restaurant
		found, err := get(tx, restaurantsBucket, r.ID, &existing)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound.New("restaurant %s not found", r.ID)
		}
		r.CreatedAt = existing.CreatedAt
		r.UpdatedAt = time.Now().UTC()
		return put(tx, restaurantsBucket, r.ID, r)
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}

func (s *restaurantStore) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(restaurantsBucket).Get([]byte(id)) == nil {
			return apperr.NotFound.New("restaurant %s not found", id)
		}
		return tx.Bucket(restaurantsBucket).Delete([]byte(id))
	})
	if apperr.NotFound.Has(err) {
		return err
	}
	return apperr.Database.Wrap(err)
}
