package handler

import (
	"net/http"

	"leadsdesk/internal/middleware"
	"leadsdesk/internal/model"
	"leadsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and the password-reset flow.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// authPayload is the login/register response body: the principal plus
// its session token.
type authPayload struct {
	model.UserResponse
	Token string `json:"token"`
}

// Register creates an account (POST /api/auth/register).
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Registration successful", authPayload{
		UserResponse: res.User.ToResponse(),
		Token:        res.Token,
	}))
}

// Login authenticates an account (POST /api/auth/login).
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Login successful", authPayload{
		UserResponse: res.User.ToResponse(),
		Token:        res.Token,
	}))
}

// Logout acknowledges a logout (POST /api/auth/logout). Session tokens
// are stateless; the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, model.NewSuccessResponse("Logged out successfully", nil))
}

// Me returns the caller's own account (GET /api/auth/me).
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("Not authorized, token failed"))
		return
	}

	user, err := h.service.Me(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("", user.ToResponse()))
}

// ForgotPassword starts the reset flow (POST /api/auth/forgot-password).
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse("Password reset email sent", nil))
}

// ResetPassword consumes a reset token (POST /api/auth/reset-password/:token).
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Password reset successful", authPayload{
		UserResponse: res.User.ToResponse(),
		Token:        res.Token,
	}))
}
