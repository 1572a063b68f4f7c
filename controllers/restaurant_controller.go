package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/pkg/resp"
	"github.com/TeamPaintbrush/thejerktracker/services"
)

type RestaurantController struct {
	restaurants *services.RestaurantService
	log         *zap.Logger
}

func NewRestaurantController(restaurants *services.RestaurantService, log *zap.Logger) *RestaurantController {
	return &RestaurantController{restaurants: restaurants, log: log}
}

func (rc *RestaurantController) List(c *gin.Context) {
	restaurants, err := rc.restaurants.List(c.Request.Context())
	if err != nil {
		resp.Error(c, rc.log, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": restaurants})
}

type CreateRestaurantReq struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Website     string `json:"website" binding:"omitempty,url"`
	Description string `json:"description"`
}

func (rc *RestaurantController) Create(c *gin.Context) {
	var req CreateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}
	restaurant, err := rc.restaurants.Create(c.Request.Context(), callerFrom(c), services.RestaurantCreate{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Website:     req.Website,
		Description: req.Description,
	})
	if err != nil {
		resp.Error(c, rc.log, err)
		return
	}
	resp.Created(c, restaurant)
}

func (rc *RestaurantController) Detail(c *gin.Context) {
	restaurant, err := rc.restaurants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, rc.log, err)
		return
	}
	resp.OK(c, restaurant)
}

type UpdateRestaurantReq struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Description *string `json:"description"`
}

func (rc *RestaurantController) Update(c *gin.Context) {
	var req UpdateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}
	restaurant, err := rc.restaurants.Update(c.Request.Context(), callerFrom(c), c.Param("id"), services.RestaurantUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Website:     req.Website,
		Description: req.Description,
	})
	if err != nil {
		resp.Error(c, rc.log, err)
		return
	}
	resp.OK(c, restaurant)
}

func (rc *RestaurantController) Delete(c *gin.Context) {
	if err := rc.restaurants.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		resp.Error(c, rc.log, err)
		return
	}
	resp.NoContent(c)
}
