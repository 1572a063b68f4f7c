package controllers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/pkg/resp"
	"github.com/TeamPaintbrush/thejerktracker/services"
)

type OrderController struct {
	orders  *services.OrderService
	baseURL string
	log     *zap.Logger
}

func NewOrderController(orders *services.OrderService, baseURL string, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, baseURL: baseURL, log: log}
}

type OrderItemIn struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Price    float64 `json:"price" binding:"min=0"`
	Notes    string  `json:"notes"`
}

type CreateOrderReq struct {
	OrderNumber     string        `json:"orderNumber" binding:"required"`
	CustomerName    string        `json:"customerName" binding:"required"`
	CustomerPhone   string        `json:"customerPhone"`
	CustomerEmail   string        `json:"customerEmail" binding:"omitempty,email"`
	OrderDetails    string        `json:"orderDetails"`
	TotalAmount     float64       `json:"totalAmount" binding:"min=0"`
	OrderType       string        `json:"orderType"`
	Notes           string        `json:"notes"`
	SpecialRequests string        `json:"specialRequests"`
	DeliveryAddress string        `json:"deliveryAddress"`
	RestaurantID    string        `json:"restaurantId"`
	Items           []OrderItemIn `json:"items"`
}

func (oc *OrderController) Create(c *gin.Context) {
	var req CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.OrderItemInput{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Notes:    it.Notes,
		})
	}

	order, err := oc.orders.Create(c.Request.Context(), callerFrom(c), services.OrderCreate{
		OrderNumber:     req.OrderNumber,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		OrderDetails:    req.OrderDetails,
		TotalAmount:     req.TotalAmount,
		OrderType:       entity.OrderType(req.OrderType),
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
		DeliveryAddress: req.DeliveryAddress,
		RestaurantID:    req.RestaurantID,
		Items:           items,
	})
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	resp.Created(c, order)
}

func (oc *OrderController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, pagination, err := oc.orders.List(c.Request.Context(), callerFrom(c), c.Query("restaurantId"), page, limit)
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	resp.OK(c, gin.H{"orders": orders, "pagination": pagination})
}

func (oc *OrderController) Detail(c *gin.Context) {
	order, err := oc.orders.Get(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	resp.OK(c, order)
}

type UpdateOrderReq struct {
	CustomerName    *string       `json:"customerName"`
	CustomerPhone   *string       `json:"customerPhone"`
	CustomerEmail   *string       `json:"customerEmail" binding:"omitempty,email"`
	OrderDetails    *string       `json:"orderDetails"`
	TotalAmount     *float64      `json:"totalAmount"`
	OrderType       *string       `json:"orderType"`
	Notes           *string       `json:"notes"`
	SpecialRequests *string       `json:"specialRequests"`
	DeliveryAddress *string       `json:"deliveryAddress"`
	Items           []OrderItemIn `json:"items"`
}

func (oc *OrderController) Update(c *gin.Context) {
	var req UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}

	up := services.OrderUpdate{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		OrderDetails:    req.OrderDetails,
		TotalAmount:     req.TotalAmount,
		Notes:           req.Notes,
		SpecialRequests: req.SpecialRequests,
		DeliveryAddress: req.DeliveryAddress,
	}
	if req.OrderType != nil {
		t := entity.OrderType(*req.OrderType)
		up.OrderType = &t
	}
	if req.Items != nil {
		up.Items = make([]services.OrderItemInput, 0, len(req.Items))
		for _, it := range req.Items {
			up.Items = append(up.Items, services.OrderItemInput{
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
				Notes:    it.Notes,
			})
		}
	}

	order, err := oc.orders.Update(c.Request.Context(), callerFrom(c), c.Param("id"), up)
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	resp.OK(c, order)
}

type UpdateStatusReq struct {
	Status          string     `json:"status" binding:"required"`
	EstimatedTime   *time.Time `json:"estimatedTime"`
	ActualTime      *time.Time `json:"actualTime"`
	DriverName      string     `json:"driverName"`
	DeliveryCompany string     `json:"deliveryCompany"`
	Notes           string     `json:"notes"`
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}

	order, err := oc.orders.UpdateStatus(c.Request.Context(), callerFrom(c), c.Param("id"),
		entity.OrderStatus(req.Status),
		entity.StatusUpdate{
			DriverName:      req.DriverName,
			DeliveryCompany: req.DeliveryCompany,
			Notes:           req.Notes,
			EstimatedTime:   req.EstimatedTime,
			ActualTime:      req.ActualTime,
		})
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) Delete(c *gin.Context) {
	if err := oc.orders.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	resp.NoContent(c)
}

// QRCode renders the PNG customers and drivers scan to open the public
// tracking page for this order.
func (oc *OrderController) QRCode(c *gin.Context) {
	order, err := oc.orders.Get(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}

	url := oc.baseURL + "/order/" + order.ID
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		resp.Error(c, oc.log, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ExportCSV streams the order sheet as a download.
func (oc *OrderController) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)

	w := csv.NewWriter(c.Writer)
	if err := oc.orders.ExportCSV(c.Request.Context(), callerFrom(c), w); err != nil {
		oc.log.Error("csv export failed", zap.Error(err))
	}
}
