package migration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store/legacy"
	"github.com/TeamPaintbrush/thejerktracker/store/memstore"
)

func legacyOrder(number, status string) legacy.Order {
	return legacy.Order{
		ID:           "legacy-" + number,
		OrderNumber:  number,
		CustomerName: "Cust " + number,
		Status:       status,
		CreatedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newTestEngine(t *testing.T, st *memstore.Store, src legacy.Source) *Engine {
	return NewEngine(st, src, t.TempDir(), zaptest.NewLogger(t))
}

func TestMigrateMovesAllOrders(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(
		legacyOrder("A-1", "Pending"),
		legacyOrder("A-2", "Preparing"),
		legacyOrder("A-3", "Picked Up"),
	)
	e := newTestEngine(t, st, src)

	result, err := e.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.MigratedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.Errors)
	assert.Equal(t, StateDone, e.CurrentState())

	// every order landed under the default restaurant with a canonical status
	orders, err := st.Orders().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.Equal(t, "default-restaurant", o.RestaurantID)
		assert.True(t, o.Status.IsValid())
	}

	r, err := st.Restaurants().GetByID(ctx, "default-restaurant")
	require.NoError(t, err)
	assert.Equal(t, "TheJERKTracker Restaurant", r.Name)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(legacyOrder("B-1", "Pending"), legacyOrder("B-2", "Ready"))
	e := newTestEngine(t, st, src)

	first, err := e.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.MigratedCount)

	second, err := e.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.MigratedCount)
	assert.Equal(t, 2, second.SkippedCount)

	count, err := st.Orders().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMigrateSkipsExistingNumbers(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	require.NoError(t, st.Orders().Create(ctx, &entity.Order{
		OrderNumber:  "C-1",
		Status:       entity.StatusPending,
		OrderType:    entity.OrderTypeTakeout,
		RestaurantID: "r1",
	}))

	src := legacy.NewMemSource(legacyOrder("C-1", "Pending"), legacyOrder("C-2", "Pending"))
	e := newTestEngine(t, st, src)

	result, err := e.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MigratedCount)
	assert.Equal(t, 1, result.SkippedCount)
}

func TestMigrateAbortsWhenBackupFails(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(legacyOrder("D-1", "Pending"))

	// a plain file where the backup directory should be makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	e := NewEngine(st, src, blocker, zaptest.NewLogger(t))

	_, err := e.Migrate(ctx)
	require.Error(t, err)
	assert.Equal(t, StateFailed, e.CurrentState())

	// nothing was written server-side
	count, cerr := st.Orders().Count(ctx)
	require.NoError(t, cerr)
	assert.Equal(t, 0, count)
	_, rerr := st.Restaurants().GetByID(ctx, "default-restaurant")
	assert.True(t, apperr.NotFound.Has(rerr))
}

func TestMigrateIsolatesPerOrderFailures(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(legacyOrder("E-1", "Pending"), legacyOrder("E-2", "Pending"))
	e := newTestEngine(t, st, src)

	st.CreateOrderErr = apperr.Database.New("disk on fire")
	result, err := e.Migrate(ctx)
	require.NoError(t, err, "order-level failures do not fail the run")
	assert.Equal(t, 0, result.MigratedCount)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "E-1")
	assert.Equal(t, StateDone, e.CurrentState())
}

func TestBackupWritesSnapshot(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(legacyOrder("F-1", "Pending"), legacyOrder("F-2", "Ready"))
	dir := t.TempDir()
	e := NewEngine(st, src, dir, zaptest.NewLogger(t))

	path, err := e.Backup(ctx)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "jerktracker-backup-")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snapshot struct {
		OrderCount int            `json:"orderCount"`
		Orders     []legacy.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, 2, snapshot.OrderCount)
	assert.Len(t, snapshot.Orders, 2)
}

func TestClearTouchesOnlyLegacyData(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(legacyOrder("G-1", "Pending"))
	e := newTestEngine(t, st, src)

	_, err := e.Migrate(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Clear(ctx))

	remaining, err := src.Orders()
	require.NoError(t, err)
	assert.Empty(t, remaining)

	count, err := st.Orders().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "server-side orders survive Clear")
}

func TestStatusReflectsBothSides(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	src := legacy.NewMemSource(legacyOrder("H-1", "Pending"))
	e := newTestEngine(t, st, src)

	status, err := e.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.LegacyOrderCount)
	assert.Equal(t, 0, status.DatabaseOrderCount)
	assert.True(t, status.HasLegacyData)
	assert.False(t, status.MigrationComplete)

	_, err = e.Migrate(ctx)
	require.NoError(t, err)
	require.NoError(t, e.Clear(ctx))

	status, err = e.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, status.LegacyOrderCount)
	assert.Equal(t, 1, status.DatabaseOrderCount)
	assert.False(t, status.HasLegacyData)
	assert.True(t, status.MigrationComplete)
}

func TestConvertOrderDefaults(t *testing.T) {
	lo := legacy.Order{
		OrderNumber: "I-1",
		Status:      "Totally Unknown",
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	o := convertOrder(lo, "r1")

	assert.Equal(t, entity.StatusPending, o.Status, "unknown legacy status falls back to pending")
	assert.Equal(t, "Legacy Customer", o.CustomerName)
	assert.Equal(t, "000-000-0000", o.CustomerPhone)
	assert.Equal(t, entity.OrderTypeTakeout, o.OrderType)
	assert.Equal(t, lo.CreatedAt, o.CreatedAt)
	assert.Equal(t, lo.CreatedAt, o.UpdatedAt)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Order Item", o.Items[0].Name)
}

func TestConvertOrderTimestamps(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)
	ready := created.Add(20 * time.Minute)
	out := created.Add(30 * time.Minute)
	picked := created.Add(45 * time.Minute)

	lo := legacy.Order{
		OrderNumber:      "I-2",
		Status:           "Picked Up",
		CreatedAt:        created,
		ReadyAt:          &ready,
		OutForDeliveryAt: &out,
		PickedUpAt:       &picked,
	}
	o := convertOrder(lo, "r1")
	assert.Equal(t, &ready, o.EstimatedTime)
	assert.Equal(t, &picked, o.ActualTime)

	// without a pickup stamp, the delivery handoff counts as completion
	lo.PickedUpAt = nil
	o = convertOrder(lo, "r1")
	assert.Equal(t, &out, o.ActualTime)
}

func TestExtractItems(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		items := extractItems(`[{"name":"Jerk Pork","quantity":2,"price":11.5},{"item":"Rice","price":"3.25"}]`)
		require.Len(t, items, 2)
		assert.Equal(t, "Jerk Pork", items[0].Name)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, 11.5, items[0].Price)
		assert.Equal(t, "Rice", items[1].Name)
		assert.Equal(t, 1, items[1].Quantity)
		assert.Equal(t, 3.25, items[1].Price)
	})

	t.Run("free text", func(t *testing.T) {
		items := extractItems("2x jerk chicken, 1x festival")
		require.Len(t, items, 1)
		assert.Equal(t, "2x jerk chicken, 1x festival", items[0].Name)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 0.0, items[0].Price)
	})

	t.Run("empty", func(t *testing.T) {
		items := extractItems("")
		require.Len(t, items, 1)
		assert.Equal(t, "Order Item", items[0].Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		items := extractItems(`[{"name": broken`)
		require.Len(t, items, 1)
		assert.Equal(t, `[{"name": broken`, items[0].Name)
	})
}

func TestFileSourceMissingFile(t *testing.T) {
	src := legacy.NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
	orders, err := src.Orders()
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, src.Clear())
}

func TestFileSourceBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	src := legacy.NewFileSource(path)
	_, err := src.Orders()
	assert.True(t, apperr.Validation.Has(err))
}
