// Package storetest is a behavioral conformance suite run against every
// Store implementation, so the backends stay interchangeable.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

// Run executes the full suite against st.
func Run(t *testing.T, st store.Store) {
	t.Run("UserRoundTrip", func(t *testing.T) { testUserRoundTrip(t, st) })
	t.Run("RestaurantLookups", func(t *testing.T) { testRestaurantLookups(t, st) })
	t.Run("OrderRoundTrip", func(t *testing.T) { testOrderRoundTrip(t, st) })
	t.Run("OrderDuplicateNumber", func(t *testing.T) { testOrderDuplicateNumber(t, st) })
	t.Run("OrderStatusCAS", func(t *testing.T) { testOrderStatusCAS(t, st) })
	t.Run("ReplaceItems", func(t *testing.T) { testReplaceItems(t, st) })
	t.Run("Counts", func(t *testing.T) { testCounts(t, st) })
	t.Run("MissingRecords", func(t *testing.T) { testMissingRecords(t, st) })
}

func restaurantFixture(email string) *entity.Restaurant {
	return &entity.Restaurant{Name: "Suite Cafe", Email: email, City: "Testville"}
}

func testUserRoundTrip(t *testing.T, st store.Store) {
	ctx := context.Background()

	u := &entity.User{Email: "suite-user@example.com", Name: "Suite User", Password: "x", Role: entity.RoleStaff}
	require.NoError(t, st.Users().Create(ctx, u))
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.Role, got.Role)

	byEmail, err := st.Users().GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	got.Name = "Renamed"
	require.NoError(t, st.Users().Save(ctx, got))
	again, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.False(t, again.UpdatedAt.Before(again.CreatedAt))

	require.NoError(t, st.Users().Delete(ctx, u.ID))
	_, err = st.Users().GetByID(ctx, u.ID)
	assert.True(t, apperr.NotFound.Has(err))
}

func testRestaurantLookups(t *testing.T, st store.Store) {
	ctx := context.Background()

	r := restaurantFixture("suite-rest@example.com")
	require.NoError(t, st.Restaurants().Create(ctx, r))

	byEmail, err := st.Restaurants().GetByEmail(ctx, r.Email)
	require.NoError(t, err)
	assert.Equal(t, r.ID, byEmail.ID)

	byEmail.Phone = "555-0000"
	require.NoError(t, st.Restaurants().Save(ctx, byEmail))
	got, err := st.Restaurants().GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0000", got.Phone)

	require.NoError(t, st.Restaurants().Delete(ctx, r.ID))
}

func testOrderRoundTrip(t *testing.T, st store.Store) {
	ctx := context.Background()

	r := restaurantFixture("suite-orders@example.com")
	require.NoError(t, st.Restaurants().Create(ctx, r))

	o := &entity.Order{
		OrderNumber:  "SUITE-100",
		CustomerName: "Jane",
		TotalAmount:  12.5,
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: r.ID,
		Items: []entity.OrderItem{
			{Name: "Jerk Chicken", Quantity: 2, Price: 5},
			{Name: "Festival", Quantity: 1, Price: 2.5},
		},
	}
	require.NoError(t, st.Orders().Create(ctx, o))
	require.NotEmpty(t, o.ID)

	// round-trip equality modulo server-assigned fields
	got, err := st.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "SUITE-100", got.OrderNumber)
	assert.Equal(t, "Jane", got.CustomerName)
	assert.Equal(t, 12.5, got.TotalAmount)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Len(t, got.Items, 2)
	for _, it := range got.Items {
		assert.Equal(t, o.ID, it.OrderID)
	}

	byNumber, err := st.Orders().GetByOrderNumber(ctx, "SUITE-100")
	require.NoError(t, err)
	assert.Equal(t, o.ID, byNumber.ID)

	scoped, err := st.Orders().GetByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, scoped, 1)

	require.NoError(t, st.Orders().Delete(ctx, o.ID))
	_, err = st.Orders().GetByID(ctx, o.ID)
	assert.True(t, apperr.NotFound.Has(err))
	require.NoError(t, st.Restaurants().Delete(ctx, r.ID))
}

func testOrderDuplicateNumber(t *testing.T, st store.Store) {
	ctx := context.Background()

	r := restaurantFixture("suite-dup@example.com")
	require.NoError(t, st.Restaurants().Create(ctx, r))
	o := &entity.Order{
		OrderNumber:  "SUITE-DUP-1",
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: r.ID,
	}
	require.NoError(t, st.Orders().Create(ctx, o))

	// every backend refuses a second order with the same number
	dup := &entity.Order{
		OrderNumber:  "SUITE-DUP-1",
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: r.ID,
	}
	err := st.Orders().Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperr.Conflict.Has(err))

	require.NoError(t, st.Orders().Delete(ctx, o.ID))
	require.NoError(t, st.Restaurants().Delete(ctx, r.ID))
}

func testOrderStatusCAS(t *testing.T, st store.Store) {
	ctx := context.Background()

	r := restaurantFixture("suite-cas@example.com")
	require.NoError(t, st.Restaurants().Create(ctx, r))
	o := &entity.Order{
		OrderNumber:  "SUITE-CAS-1",
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: r.ID,
	}
	require.NoError(t, st.Orders().Create(ctx, o))

	o.Status = entity.StatusInProgress
	swapped, err := st.Orders().UpdateStatusGuarded(ctx, o, entity.StatusPending)
	require.NoError(t, err)
	assert.True(t, swapped)

	// a second writer that read PENDING loses the race
	stale := *o
	stale.Status = entity.StatusCancelled
	swapped, err = st.Orders().UpdateStatusGuarded(ctx, &stale, entity.StatusPending)
	require.NoError(t, err)
	assert.False(t, swapped)

	got, err := st.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, got.Status)

	require.NoError(t, st.Orders().Delete(ctx, o.ID))
	require.NoError(t, st.Restaurants().Delete(ctx, r.ID))
}

func testReplaceItems(t *testing.T, st store.Store) {
	ctx := context.Background()

	r := restaurantFixture("suite-items@example.com")
	require.NoError(t, st.Restaurants().Create(ctx, r))
	o := &entity.Order{
		OrderNumber:  "SUITE-ITEMS-1",
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: r.ID,
		Items:        []entity.OrderItem{{Name: "Old Item", Quantity: 1, Price: 1}},
	}
	require.NoError(t, st.Orders().Create(ctx, o))

	// wholesale replacement, not a diff
	require.NoError(t, st.Orders().ReplaceItems(ctx, o.ID, []entity.OrderItem{
		{Name: "New A", Quantity: 1, Price: 2},
		{Name: "New B", Quantity: 3, Price: 4},
	}))

	got, err := st.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	names := []string{got.Items[0].Name, got.Items[1].Name}
	assert.ElementsMatch(t, []string{"New A", "New B"}, names)

	require.NoError(t, st.Orders().Delete(ctx, o.ID))
	require.NoError(t, st.Restaurants().Delete(ctx, r.ID))
}

func testCounts(t *testing.T, st store.Store) {
	ctx := context.Background()

	r := restaurantFixture("suite-counts@example.com")
	require.NoError(t, st.Restaurants().Create(ctx, r))

	before, err := st.Orders().Count(ctx)
	require.NoError(t, err)

	for _, n := range []string{"SUITE-CNT-1", "SUITE-CNT-2"} {
		require.NoError(t, st.Orders().Create(ctx, &entity.Order{
			OrderNumber:  n,
			Status:       entity.StatusPending,
			OrderType:    entity.OrderTypeTakeout,
			RestaurantID: r.ID,
		}))
	}

	total, err := st.Orders().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+2, total)

	scoped, err := st.Orders().CountByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, scoped)

	rid := r.ID
	u := &entity.User{Email: "suite-counts-user@example.com", Role: entity.RoleStaff, RestaurantID: &rid}
	require.NoError(t, st.Users().Create(ctx, u))
	users, err := st.Users().CountByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, users)
}

func testMissingRecords(t *testing.T, st store.Store) {
	ctx := context.Background()

	_, err := st.Orders().GetByID(ctx, "no-such-id")
	assert.True(t, apperr.NotFound.Has(err))
	_, err = st.Users().GetByEmail(ctx, "nobody@example.com")
	assert.True(t, apperr.NotFound.Has(err))

	assert.True(t, apperr.NotFound.Has(st.Orders().Delete(ctx, "no-such-id")))
	assert.True(t, apperr.NotFound.Has(st.Users().Save(ctx, &entity.User{ID: "no-such-id"})))
	assert.True(t, apperr.NotFound.Has(st.Restaurants().Save(ctx, &entity.Restaurant{ID: "no-such-id"})))
}
