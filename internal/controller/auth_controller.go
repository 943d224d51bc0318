package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new learner
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterReq true "Account details"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "Missing required fields"
// @Failure 409 {object} util.Response "Email already registered"
// @Failure 500 {object} util.Response
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, user, "Registration successful")
}

// Login godoc
// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResult}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) || errors.Is(err, util.ErrWrongPassword) {
			util.Error(ctx, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, result, "Login successful")
}

// Me godoc
// @Summary The account behind the bearer token
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
