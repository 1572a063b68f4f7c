package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/pkg/resp"
	"github.com/TeamPaintbrush/thejerktracker/services"
)

type UserController struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUserController(users *services.UserService, log *zap.Logger) *UserController {
	return &UserController{users: users, log: log}
}

func (uc *UserController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context(), callerFrom(c))
	if err != nil {
		resp.Error(c, uc.log, err)
		return
	}
	resp.OK(c, gin.H{"users": users})
}

type CreateUserReq struct {
	Email        string  `json:"email" binding:"required,email"`
	Name         string  `json:"name" binding:"required"`
	Password     string  `json:"password" binding:"required,min=8"`
	Role         string  `json:"role" binding:"omitempty,oneof=ADMIN STAFF"`
	RestaurantID *string `json:"restaurantId"`
}

func (uc *UserController) Create(c *gin.Context) {
	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}
	user, err := uc.users.Create(c.Request.Context(), callerFrom(c), services.UserCreate{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		resp.Error(c, uc.log, err)
		return
	}
	resp.Created(c, user)
}

func (uc *UserController) Detail(c *gin.Context) {
	user, err := uc.users.Get(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		resp.Error(c, uc.log, err)
		return
	}
	resp.OK(c, user)
}

type UpdateUserReq struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Name         *string `json:"name"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
	Role         *string `json:"role" binding:"omitempty,oneof=ADMIN STAFF"`
	RestaurantID *string `json:"restaurantId"`
}

func (uc *UserController) Update(c *gin.Context) {
	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}
	user, err := uc.users.Update(c.Request.Context(), callerFrom(c), c.Param("id"), services.UserUpdate{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		resp.Error(c, uc.log, err)
		return
	}
	resp.OK(c, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	if err := uc.users.Delete(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		resp.Error(c, uc.log, err)
		return
	}
	resp.NoContent(c)
}
