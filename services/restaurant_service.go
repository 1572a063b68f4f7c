package services

import (
	"context"
	"strings"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

type RestaurantService struct {
	store store.Store
}

func NewRestaurantService(st store.Store) *RestaurantService {
	return &RestaurantService{store: st}
}

type RestaurantCreate struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	ZipCode     string
	Website     string
	Description string
}

type RestaurantUpdate struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Website     *string
	Description *string
}

func (s *RestaurantService) List(ctx context.Context) ([]entity.Restaurant, error) {
	return s.store.Restaurants().GetAll(ctx)
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*entity.Restaurant, error) {
	return s.store.Restaurants().GetByID(ctx, id)
}

// Create is admin-only.
func (s *RestaurantService) Create(ctx context.Context, caller Caller, in RestaurantCreate) (*entity.Restaurant, error) {
	if !caller.IsAdmin() {
		return nil, apperr.Authorization.New("admin access required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.store.Restaurants().GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict.New("restaurant email already in use")
	} else if !apperr.NotFound.Has(err) {
		return nil, err
	}

	restaurant := &entity.Restaurant{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Phone:       in.Phone,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		ZipCode:     in.ZipCode,
		Website:     in.Website,
		Description: in.Description,
	}
	if err := s.store.Restaurants().Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Update is allowed for admins and for staff scoped to this restaurant.
func (s *RestaurantService) Update(ctx context.Context, caller Caller, id string, in RestaurantUpdate) (*entity.Restaurant, error) {
	if err := caller.checkRestaurantScope(id); err != nil {
		return nil, err
	}

	restaurant, err := s.store.Restaurants().GetByID(ctx, id)
	if err != nil {
		return nil, caller.hideExistence(err)
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != restaurant.Email {
			if _, err := s.store.Restaurants().GetByEmail(ctx, email); err == nil {
				return nil, apperr.Conflict.New("restaurant email already in use")
			} else if !apperr.NotFound.Has(err) {
				return nil, err
			}
			restaurant.Email = email
		}
	}
	if in.Name != nil {
		restaurant.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		restaurant.Phone = *in.Phone
	}
	if in.Address != nil {
		restaurant.Address = *in.Address
	}
	if in.City != nil {
		restaurant.City = *in.City
	}
	if in.State != nil {
		restaurant.State = *in.State
	}
	if in.ZipCode != nil {
		restaurant.ZipCode = *in.ZipCode
	}
	if in.Website != nil {
		restaurant.Website = *in.Website
	}
	if in.Description != nil {
		restaurant.Description = *in.Description
	}

	if err := s.store.Restaurants().Save(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Delete is admin-only and refused while the restaurant still owns orders or
// users. The guard lives here because the key-value backend has no foreign
// keys to enforce it.
func (s *RestaurantService) Delete(ctx context.Context, caller Caller, id string) error {
	if !caller.IsAdmin() {
		return apperr.Authorization.New("admin access required")
	}

	if _, err := s.store.Restaurants().GetByID(ctx, id); err != nil {
		return err
	}

	orderCount, err := s.store.Orders().CountByRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return apperr.Conflict.New("restaurant still has %d orders", orderCount)
	}

	userCount, err := s.store.Users().CountByRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if userCount > 0 {
		return apperr.Conflict.New("restaurant still has %d users", userCount)
	}

	return s.store.Restaurants().Delete(ctx, id)
}
