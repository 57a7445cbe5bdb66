package handler

import (
	"errors"
	"net/http"

	"github.com/akachour/wird/internal/api/dto"
	"github.com/akachour/wird/internal/api/middleware"
	"github.com/akachour/wird/internal/core/service"
	"github.com/akachour/wird/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessionService *service.SessionService
	accountService *service.AccountService
}

func NewAuthHandler(sessionService *service.SessionService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		accountService: accountService,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	user, err := h.sessionService.Signup(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: "Passwords do not match",
				Code:    http.StatusBadRequest,
			})
		case errors.Is(err, service.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Error:   "Conflict",
				Message: "Username already exists",
				Code:    http.StatusConflict,
			})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to create account",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		Username: user.Username,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	token, session, err := h.sessionService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Invalid credentials are expected; the message never reveals
		// whether the username exists.
		metrics.LoginFailures.Inc()
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid username or password",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   service.TokenExpirationHours * 3600,
		Username:    session.Username,
		IsAdmin:     session.IsAdmin,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Not logged in",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	h.sessionService.Logout(session.ID)

	c.Status(http.StatusNoContent)
}

// ChangePassword handles POST /auth/password. The session's own password is
// changed; the current password must verify first.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Not logged in",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if req.NewPassword != req.ConfirmNewPassword {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "New passwords do not match",
			Code:    http.StatusBadRequest,
		})
		return
	}

	err := h.accountService.ChangePassword(c.Request.Context(), session.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Current password is incorrect",
				Code:    http.StatusUnauthorized,
			})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to change password",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
