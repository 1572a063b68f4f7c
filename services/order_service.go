package services

import (
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

type OrderService struct {
	store store.Store
	log   *zap.Logger
}

func NewOrderService(st store.Store, log *zap.Logger) *OrderService {
	return &OrderService{store: st, log: log}
}

type OrderItemInput struct {
	Name     string
	Quantity int
	Price    float64
	Notes    string
}

type OrderCreate struct {
	OrderNumber     string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	OrderDetails    string
	TotalAmount     float64
	OrderType       entity.OrderType
	Notes           string
	SpecialRequests string
	DeliveryAddress string
	RestaurantID    string
	Items           []OrderItemInput
}

type OrderUpdate struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerEmail   *string
	OrderDetails    *string
	TotalAmount     *float64
	OrderType       *entity.OrderType
	Notes           *string
	SpecialRequests *string
	DeliveryAddress *string
	Items           []OrderItemInput // nil means keep, non-nil replaces wholesale
}

type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// List returns the caller's visible orders, newest first. Admins may narrow
// to one restaurant with restaurantID; non-admins are always pinned to their
// own. Sorting happens here because store scan order is unspecified.
func (s *OrderService) List(ctx context.Context, caller Caller, restaurantID string, page, limit int) ([]entity.Order, Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var orders []entity.Order
	var err error
	switch {
	case caller.IsAdmin():
		if restaurantID != "" {
			orders, err = s.store.Orders().GetByRestaurant(ctx, restaurantID)
		} else {
			orders, err = s.store.Orders().GetAll(ctx)
		}
	case caller.RestaurantID != nil:
		if restaurantID != "" && restaurantID != *caller.RestaurantID {
			return nil, Pagination{}, scopeErr()
		}
		orders, err = s.store.Orders().GetByRestaurant(ctx, *caller.RestaurantID)
	}
	if err != nil {
		return nil, Pagination{}, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	total := len(orders)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pagination := Pagination{
		Page:            page,
		Limit:           limit,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1 && total > 0,
	}
	return orders[start:end], pagination, nil
}

// Create enforces the global order-number uniqueness rule and pins non-admin
// callers to their own restaurant.
func (s *OrderService) Create(ctx context.Context, caller Caller, in OrderCreate) (*entity.Order, error) {
	restaurantID := in.RestaurantID
	if !caller.IsAdmin() {
		if caller.RestaurantID == nil {
			return nil, apperr.Validation.New("your account is not assigned to a restaurant")
		}
		restaurantID = *caller.RestaurantID
	}
	if restaurantID == "" {
		return nil, apperr.Validation.New("restaurant id is required")
	}

	orderNumber := strings.TrimSpace(in.OrderNumber)
	if _, err := s.store.Orders().GetByOrderNumber(ctx, orderNumber); err == nil {
		return nil, apperr.Conflict.New("order number already exists")
	} else if !apperr.NotFound.Has(err) {
		return nil, err
	}

	if _, err := s.store.Restaurants().GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	orderType := in.OrderType
	if orderType == "" {
		orderType = entity.OrderTypeTakeout
	}
	if !orderType.IsValid() {
		return nil, apperr.Validation.New("unknown order type %q", orderType)
	}
	if in.TotalAmount < 0 {
		return nil, apperr.Validation.New("total amount cannot be negative")
	}

	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, apperr.Validation.New("item quantity must be at least 1")
		}
		if it.Price < 0 {
			return nil, apperr.Validation.New("item price cannot be negative")
		}
		items = append(items, entity.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Notes:    it.Notes,
		})
	}

	total := in.TotalAmount
	if total == 0 {
		for _, it := range items {
			total += float64(it.Quantity) * it.Price
		}
	}

	details := in.OrderDetails
	if details == "" {
		details = "Order " + orderNumber + " for " + in.CustomerName
	}

	userID := caller.UserID
	order := &entity.Order{
		OrderNumber:     orderNumber,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		OrderDetails:    details,
		TotalAmount:     total,
		Status:          entity.StatusPending,
		OrderType:       orderType,
		Notes:           in.Notes,
		SpecialRequests: in.SpecialRequests,
		DeliveryAddress: in.DeliveryAddress,
		RestaurantID:    restaurantID,
		CreatedByID:     &userID,
		Items:           items,
	}
	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info("order created",
		zap.String("id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("restaurant_id", order.RestaurantID),
	)
	return order, nil
}

// Get loads one order within the caller's scope.
func (s *OrderService) Get(ctx context.Context, caller Caller, id string) (*entity.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, id)
	if err != nil {
		return nil, caller.hideExistence(err)
	}
	if err := caller.checkRestaurantScope(order.RestaurantID); err != nil {
		return nil, err
	}
	return order, nil
}

// Update merges field edits and, when items are provided, replaces the item
// set wholesale.
func (s *OrderService) Update(ctx context.Context, caller Caller, id string, in OrderUpdate) (*entity.Order, error) {
	order, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.CustomerPhone != nil {
		order.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerEmail != nil {
		order.CustomerEmail = *in.CustomerEmail
	}
	if in.OrderDetails != nil {
		order.OrderDetails = *in.OrderDetails
	}
	if in.TotalAmount != nil {
		if *in.TotalAmount < 0 {
			return nil, apperr.Validation.New("total amount cannot be negative")
		}
		order.TotalAmount = *in.TotalAmount
	}
	if in.OrderType != nil {
		if !in.OrderType.IsValid() {
			return nil, apperr.Validation.New("unknown order type %q", *in.OrderType)
		}
		order.OrderType = *in.OrderType
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if in.SpecialRequests != nil {
		order.SpecialRequests = *in.SpecialRequests
	}
	if in.DeliveryAddress != nil {
		order.DeliveryAddress = *in.DeliveryAddress
	}
	userID := caller.UserID
	order.UpdatedByID = &userID

	// validate the replacement items before any write so a rejected request
	// leaves the record untouched
	var items []entity.OrderItem
	if in.Items != nil {
		items = make([]entity.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Quantity < 1 {
				return nil, apperr.Validation.New("item quantity must be at least 1")
			}
			if it.Price < 0 {
				return nil, apperr.Validation.New("item price cannot be negative")
			}
			items = append(items, entity.OrderItem{
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
				Notes:    it.Notes,
			})
		}
	}

	if err := s.store.Orders().Save(ctx, order); err != nil {
		return nil, err
	}

	if in.Items != nil {
		if err := s.store.Orders().ReplaceItems(ctx, id, items); err != nil {
			return nil, err
		}
	}

	return s.store.Orders().GetByID(ctx, id)
}

// UpdateStatus runs the transition through the state machine and persists it
// with a compare-and-swap on the previous status; a lost race is a conflict,
// never a silent overwrite.
func (s *OrderService) UpdateStatus(ctx context.Context, caller Caller, id string, next entity.OrderStatus, up entity.StatusUpdate) (*entity.Order, error) {
	order, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	userID := caller.UserID
	if up.UpdatedByID == nil {
		up.UpdatedByID = &userID
	}

	prev := order.Status
	if err := order.ApplyStatus(next, up, time.Now().UTC()); err != nil {
		return nil, err
	}

	swapped, err := s.store.Orders().UpdateStatusGuarded(ctx, order, prev)
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, apperr.Conflict.New("order status changed concurrently, reload and retry")
	}

	s.log.Info("order status updated",
		zap.String("id", order.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
	return order, nil
}

// Delete is the explicit admin delete endpoint.
func (s *OrderService) Delete(ctx context.Context, caller Caller, id string) error {
	if !caller.IsAdmin() {
		return apperr.Authorization.New("admin access required")
	}
	return s.store.Orders().Delete(ctx, id)
}

// ExportCSV writes every order the caller may see as the export sheet,
// newest first.
func (s *OrderService) ExportCSV(ctx context.Context, caller Caller, w *csv.Writer) error {
	var orders []entity.Order
	var err error
	if caller.IsAdmin() {
		orders, err = s.store.Orders().GetAll(ctx)
	} else if caller.RestaurantID != nil {
		orders, err = s.store.Orders().GetByRestaurant(ctx, *caller.RestaurantID)
	}
	if err != nil {
		return err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if err := w.Write([]string{"Order Number", "Customer Name", "Email", "Phone", "Status", "Total", "Created"}); err != nil {
		return err
	}
	for _, o := range orders {
		record := []string{
			o.OrderNumber,
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			string(o.Status),
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			o.CreatedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
