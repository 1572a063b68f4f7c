// Package migration moves legacy client-stored orders into the server-side
// store: backup first, dedup by order number, per-order fault isolation, and
// safe to re-run.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
	"github.com/TeamPaintbrush/thejerktracker/store/legacy"
)

// State tracks where a run currently is. It is process-level bookkeeping,
// not persisted.
type State string

const (
	StateIdle      State = "idle"
	StateBackingUp State = "backing_up"
	StateMigrating State = "migrating"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// Every legacy order is attached to this well-known restaurant, created only
// if it does not already exist.
var defaultRestaurant = entity.Restaurant{
	ID:      "default-restaurant",
	Name:    "TheJERKTracker Restaurant",
	Email:   "admin@thejerktracker.com",
	Phone:   "(555) 123-4567",
	Address: "123 Main Street",
	City:    "Anytown",
	State:   "NY",
	ZipCode: "12345",
}

type Result struct {
	MigratedCount int      `json:"migratedCount"`
	SkippedCount  int      `json:"skippedCount"`
	Errors        []string `json:"errors"`
}

type Status struct {
	LegacyOrderCount   int  `json:"legacyOrderCount"`
	DatabaseOrderCount int  `json:"databaseOrderCount"`
	HasLegacyData      bool `json:"hasLegacyData"`
	MigrationComplete  bool `json:"migrationComplete"`
}

type Engine struct {
	store     store.Store
	source    legacy.Source
	log       *zap.Logger
	backupDir string

	// serializes runs; two concurrent Migrate calls could otherwise both
	// decide the same order number is new
	mu    sync.Mutex
	state State
}

func NewEngine(st store.Store, source legacy.Source, backupDir string, log *zap.Logger) *Engine {
	return &Engine{
		store:     st,
		source:    source,
		log:       log,
		backupDir: backupDir,
		state:     StateIdle,
	}
}

// CurrentState returns the state of the most recent run.
func (e *Engine) CurrentState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Migrate runs the full pass. The backup must succeed before anything is
// written server-side; after that, a failure on one order is recorded and
// the rest keep going.
func (e *Engine) Migrate(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := &Result{Errors: []string{}}

	e.state = StateBackingUp
	legacyOrders, err := e.source.Orders()
	if err != nil {
		e.state = StateFailed
		return nil, err
	}
	if _, err := e.writeBackup(legacyOrders); err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.state = StateMigrating
	e.log.Info("starting legacy order migration", zap.Int("legacy_orders", len(legacyOrders)))

	if len(legacyOrders) == 0 {
		e.state = StateDone
		return result, nil
	}

	restaurant, err := e.ensureDefaultRestaurant(ctx)
	if err != nil {
		e.state = StateFailed
		return nil, err
	}

	existing, err := e.store.Orders().GetAll(ctx)
	if err != nil {
		e.state = StateFailed
		return nil, err
	}
	existingNumbers := make(map[string]bool, len(existing))
	for _, o := range existing {
		existingNumbers[o.OrderNumber] = true
	}

	for _, lo := range legacyOrders {
		if existingNumbers[lo.OrderNumber] {
			e.log.Info("skipping already migrated order", zap.String("order_number", lo.OrderNumber))
			result.SkippedCount++
			continue
		}

		order := convertOrder(lo, restaurant.ID)
		if err := e.store.Orders().Create(ctx, order); err != nil {
			msg := fmt.Sprintf("failed to migrate order %s: %v", lo.OrderNumber, err)
			e.log.Warn("order migration failed", zap.String("order_number", lo.OrderNumber), zap.Error(err))
			result.Errors = append(result.Errors, msg)
			continue
		}
		existingNumbers[lo.OrderNumber] = true
		result.MigratedCount++
	}

	e.state = StateDone
	e.log.Info("migration completed",
		zap.Int("migrated", result.MigratedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// Backup snapshots the legacy set to the backup directory and returns the
// file path.
func (e *Engine) Backup(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	legacyOrders, err := e.source.Orders()
	if err != nil {
		return "", err
	}
	return e.writeBackup(legacyOrders)
}

// Clear removes the legacy copy only, never server-side data. The operator
// is expected to run it after a successful migration.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source.Clear()
}

// Status reports both sides of the migration.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	legacyOrders, err := e.source.Orders()
	if err != nil {
		return nil, err
	}
	dbCount, err := e.store.Orders().Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{
		LegacyOrderCount:   len(legacyOrders),
		DatabaseOrderCount: dbCount,
		HasLegacyData:      len(legacyOrders) > 0,
		MigrationComplete:  len(legacyOrders) == 0 && dbCount > 0,
	}, nil
}

func (e *Engine) writeBackup(orders []legacy.Order) (string, error) {
	if err := os.MkdirAll(e.backupDir, 0o755); err != nil {
		return "", apperr.Database.New("cannot create backup directory: %v", err)
	}
	snapshot := map[string]any{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"orderCount": len(orders),
		"orders":     orders,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", apperr.Database.Wrap(err)
	}
	path := filepath.Join(e.backupDir, fmt.Sprintf("jerktracker-backup-%s.json", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.Database.New("cannot write backup file: %v", err)
	}
	e.log.Info("backup written", zap.String("path", path), zap.Int("orders", len(orders)))
	return path, nil
}

func (e *Engine) ensureDefaultRestaurant(ctx context.Context) (*entity.Restaurant, error) {
	r, err := e.store.Restaurants().GetByID(ctx, defaultRestaurant.ID)
	if err == nil {
		return r, nil
	}
	if !apperr.NotFound.Has(err) {
		return nil, err
	}
	created := defaultRestaurant
	if err := e.store.Restaurants().Create(ctx, &created); err != nil {
		return nil, err
	}
	e.log.Info("created default restaurant for migration", zap.String("id", created.ID))
	return &created, nil
}

// convertOrder derives the canonical server-side record from a legacy one.
func convertOrder(lo legacy.Order, restaurantID string) *entity.Order {
	status, ok := entity.StatusFromLegacy(lo.Status)
	if !ok {
		status = entity.StatusPending
	}

	items := extractItems(lo.OrderDetails)
	total := 0.0
	for _, it := range items {
		total += float64(it.Quantity) * it.Price
	}

	customerName := lo.CustomerName
	if customerName == "" {
		customerName = "Legacy Customer"
	}

	updatedAt := lo.CreatedAt
	if lo.UpdatedAt != nil {
		updatedAt = *lo.UpdatedAt
	}

	actualTime := lo.PickedUpAt
	if actualTime == nil {
		actualTime = lo.OutForDeliveryAt
	}

	return &entity.Order{
		OrderNumber:   lo.OrderNumber,
		CustomerName:  customerName,
		CustomerPhone: "000-000-0000", // legacy data has no phone
		CustomerEmail: lo.CustomerEmail,
		OrderDetails:  lo.OrderDetails,
		TotalAmount:   total,
		Status:        status,
		OrderType:     entity.OrderTypeTakeout,
		Notes:         lo.Notes,

		DriverName:      lo.DriverName,
		DeliveryCompany: lo.DeliveryCompany,

		EstimatedTime: lo.ReadyAt,
		ActualTime:    actualTime,

		RestaurantID: restaurantID,

		PreparingAt:      lo.PreparingAt,
		ReadyAt:          lo.ReadyAt,
		OutForDeliveryAt: lo.OutForDeliveryAt,
		PickedUpAt:       lo.PickedUpAt,
		CancelledAt:      lo.CancelledAt,

		CreatedAt: lo.CreatedAt,
		UpdatedAt: updatedAt,

		Items: items,
	}
}

// extractItems synthesizes structured items from the free-text order
// details. A JSON array is parsed; anything else becomes a single item with
// unknown pricing.
func extractItems(details string) []entity.OrderItem {
	if details == "" {
		return []entity.OrderItem{{Name: "Order Item", Quantity: 1, Price: 0}}
	}

	if details[0] == '[' {
		var raw []map[string]any
		if err := json.Unmarshal([]byte(details), &raw); err == nil {
			items := make([]entity.OrderItem, 0, len(raw))
			for _, entry := range raw {
				items = append(items, entity.OrderItem{
					Name:     stringField(entry, "name", "item", "Unknown Item"),
					Quantity: intField(entry, "quantity", 1),
					Price:    floatField(entry, "price", 0),
				})
			}
			if len(items) > 0 {
				return items
			}
		}
	}

	return []entity.OrderItem{{Name: details, Quantity: 1, Price: 0}}
}

func stringField(entry map[string]any, key, altKey, fallback string) string {
	if v, ok := entry[key].(string); ok && v != "" {
		return v
	}
	if v, ok := entry[altKey].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intField(entry map[string]any, key string, fallback int) int {
	switch v := entry[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func floatField(entry map[string]any, key string, fallback float64) float64 {
	switch v := entry[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
