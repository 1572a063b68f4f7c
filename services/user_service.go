package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

type UserCreate struct {
	Email        string
	Name         string
	Password     string
	Role         string
	RestaurantID *string
}

type UserUpdate struct {
	Email        *string
	Name         *string
	Password     *string
	Role         *string
	RestaurantID *string
}

// List is admin-only.
func (s *UserService) List(ctx context.Context, caller Caller) ([]entity.User, error) {
	if !caller.IsAdmin() {
		return nil, apperr.Authorization.New("admin access required")
	}
	return s.store.Users().GetAll(ctx)
}

// Create is admin-only.
func (s *UserService) Create(ctx context.Context, caller Caller, in UserCreate) (*entity.User, error) {
	if !caller.IsAdmin() {
		return nil, apperr.Authorization.New("admin access required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict.New("email already in use")
	} else if !apperr.NotFound.Has(err) {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleAdmin && role != entity.RoleStaff {
		return nil, apperr.Validation.New("unknown role %q", role)
	}

	if in.RestaurantID != nil {
		if _, err := s.store.Restaurants().GetByID(ctx, *in.RestaurantID); err != nil {
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Database.Wrap(err)
	}

	user := &entity.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Password:     string(hashed),
		Role:         role,
		RestaurantID: in.RestaurantID,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get allows admins and the account owner.
func (s *UserService) Get(ctx context.Context, caller Caller, id string) (*entity.User, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, apperr.Authorization.New("you can only view your own account")
	}
	return s.store.Users().GetByID(ctx, id)
}

// Update allows admins and the account owner; only admins may change roles
// or restaurant assignment.
func (s *UserService) Update(ctx context.Context, caller Caller, id string, in UserUpdate) (*entity.User, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, apperr.Authorization.New("you can only update your own account")
	}

	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
				return nil, apperr.Conflict.New("email already in use")
			} else if !apperr.NotFound.Has(err) {
				return nil, err
			}
			user.Email = email
		}
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Database.Wrap(err)
		}
		user.Password = string(hashed)
	}
	if in.Role != nil {
		if !caller.IsAdmin() {
			return nil, apperr.Authorization.New("only admins can change roles")
		}
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleStaff {
			return nil, apperr.Validation.New("unknown role %q", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.RestaurantID != nil {
		if !caller.IsAdmin() {
			return nil, apperr.Authorization.New("only admins can change restaurant assignment")
		}
		if _, err := s.store.Restaurants().GetByID(ctx, *in.RestaurantID); err != nil {
			return nil, err
		}
		user.RestaurantID = in.RestaurantID
	}

	if err := s.store.Users().Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete is admin-only, and admins can never delete themselves.
func (s *UserService) Delete(ctx context.Context, caller Caller, id string) error {
	if !caller.IsAdmin() {
		return apperr.Authorization.New("admin access required")
	}
	if caller.UserID == id {
		return apperr.Validation.New("cannot delete your own account")
	}
	return s.store.Users().Delete(ctx, id)
}
