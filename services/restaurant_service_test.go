package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store/memstore"
)

func TestRestaurantCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewRestaurantService(memstore.New())
	admin := Caller{UserID: "a", Role: entity.RoleAdmin}

	_, err := svc.Create(ctx, Caller{UserID: "s", Role: entity.RoleStaff}, RestaurantCreate{Name: "X", Email: "x@example.com"})
	assert.True(t, apperr.Authorization.Has(err))

	r, err := svc.Create(ctx, admin, RestaurantCreate{Name: " The Spot ", Email: "Spot@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "The Spot", r.Name)
	assert.Equal(t, "spot@example.com", r.Email)

	_, err = svc.Create(ctx, admin, RestaurantCreate{Name: "Dup", Email: "spot@example.com"})
	assert.True(t, apperr.Conflict.Has(err))
}

func TestRestaurantUpdateScoping(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := NewRestaurantService(st)
	admin := Caller{UserID: "a", Role: entity.RoleAdmin}

	r, err := svc.Create(ctx, admin, RestaurantCreate{Name: "Mine", Email: "mine@example.com"})
	require.NoError(t, err)

	owner := Caller{UserID: "s", Role: entity.RoleStaff, RestaurantID: &r.ID}
	phone := "555-1234"
	updated, err := svc.Update(ctx, owner, r.ID, RestaurantUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-1234", updated.Phone)

	// staff of another restaurant is refused, and a missing id answers the same
	otherID := "other-restaurant"
	foreign := Caller{UserID: "f", Role: entity.RoleStaff, RestaurantID: &otherID}
	_, foreignErr := svc.Update(ctx, foreign, r.ID, RestaurantUpdate{Phone: &phone})
	_, missingErr := svc.Update(ctx, foreign, "no-such-id", RestaurantUpdate{Phone: &phone})
	assert.True(t, apperr.Authorization.Has(foreignErr))
	assert.True(t, apperr.Authorization.Has(missingErr))
	assert.Equal(t, foreignErr.Error(), missingErr.Error())
}

func TestRestaurantDeleteGuards(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := NewRestaurantService(st)
	admin := Caller{UserID: "a", Role: entity.RoleAdmin}

	r, err := svc.Create(ctx, admin, RestaurantCreate{Name: "Busy", Email: "busy@example.com"})
	require.NoError(t, err)

	require.NoError(t, st.Orders().Create(ctx, &entity.Order{
		OrderNumber:  "GUARD-1",
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: r.ID,
	}))

	err = svc.Delete(ctx, admin, r.ID)
	require.Error(t, err)
	assert.True(t, apperr.Conflict.Has(err), "orders block deletion")

	require.NoError(t, st.Orders().Delete(ctx, mustOrderID(t, st, "GUARD-1")))

	rid := r.ID
	require.NoError(t, st.Users().Create(ctx, &entity.User{Email: "emp@example.com", Role: entity.RoleStaff, RestaurantID: &rid}))
	err = svc.Delete(ctx, admin, r.ID)
	assert.True(t, apperr.Conflict.Has(err), "users block deletion")

	u, err := st.Users().GetByEmail(ctx, "emp@example.com")
	require.NoError(t, err)
	require.NoError(t, st.Users().Delete(ctx, u.ID))

	require.NoError(t, svc.Delete(ctx, admin, r.ID))
	_, err = svc.Get(ctx, r.ID)
	assert.True(t, apperr.NotFound.Has(err))
}

func mustOrderID(t *testing.T, st *memstore.Store, orderNumber string) string {
	t.Helper()
	o, err := st.Orders().GetByOrderNumber(context.Background(), orderNumber)
	require.NoError(t, err)
	return o.ID
}
