package services

import (
	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
)

// Caller is the authenticated identity resolved by the auth middleware.
type Caller struct {
	UserID       string
	Role         string
	RestaurantID *string
}

func (c Caller) IsAdmin() bool { return c.Role == entity.RoleAdmin }

// scopeErr is the uniform answer for anything outside the caller's
// restaurant. Non-admin scoping failures never reveal whether the target
// exists, so a missing record and a foreign record look identical.
func scopeErr() error {
	return apperr.Authorization.New("access denied: record is outside your restaurant")
}

// checkRestaurantScope admits admins unconditionally and non-admins only for
// their own restaurant.
func (c Caller) checkRestaurantScope(restaurantID string) error {
	if c.IsAdmin() {
		return nil
	}
	if c.RestaurantID == nil || *c.RestaurantID != restaurantID {
		return scopeErr()
	}
	return nil
}

// hideExistence converts a not-found into the scoping failure for non-admin
// callers, so probing ids cannot distinguish "missing" from "not yours".
func (c Caller) hideExistence(err error) error {
	if err == nil || c.IsAdmin() {
		return err
	}
	if apperr.NotFound.Has(err) {
		return scopeErr()
	}
	return err
}
