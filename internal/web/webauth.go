package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/dto"
	"reviewhub/internal/service"
	"reviewhub/pkg/binding"
	"reviewhub/pkg/response"
)

const sessionCookie = "session_token"

// AuthPageHandler covers signup, login, logout and password reset for
// the browsing surface. Sessions ride in an HTTP-only cookie holding
// the same token the API hands out.
type AuthPageHandler struct {
	authService service.AuthService
	cookieTTL   int
}

func NewAuthPageHandler(authService service.AuthService, cookieTTLSeconds int) *AuthPageHandler {
	return &AuthPageHandler{authService: authService, cookieTTL: cookieTTLSeconds}
}

// Register handles POST /auth/signup.
func (h *AuthPageHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	user, err := h.authService.RegisterWithPassword(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     dto.FromUser(user),
		"location": "/auth/login",
	})
}

// Login handles POST /auth/login.
func (h *AuthPageHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	token, user, err := h.authService.LoginWithPassword(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(sessionCookie, token, h.cookieTTL, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"user":     dto.FromUser(user),
		"location": "/",
	})
}

// Logout handles POST /auth/logout.
func (h *AuthPageHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"location": "/"})
}

// PasswordReset handles POST /auth/password-reset.
func (h *AuthPageHandler) PasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detail": "a confirmation code has been sent",
	})
}

// PasswordResetConfirm handles POST /auth/password-reset/confirm.
func (h *AuthPageHandler) PasswordResetConfirm(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, binding.FormatValidationError(err))
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Email, req.ConfirmationCode, req.Password); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": "/auth/login"})
}
