package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/pkg/resp"
	"github.com/TeamPaintbrush/thejerktracker/services"
	"github.com/TeamPaintbrush/thejerktracker/utils"
)

type AuthController struct {
	auth *services.AuthService
	log  *zap.Logger
}

func NewAuthController(auth *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}
	user, err := ac.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		resp.Error(c, ac.log, err)
		return
	}
	resp.Created(c, user)
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}
	token, user, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, ac.log, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.auth.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, ac.log, err)
		return
	}
	resp.OK(c, user)
}
