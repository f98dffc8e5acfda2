package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/taskmaster/taskmaster-api/internal/dto"
	"github.com/taskmaster/taskmaster-api/internal/middleware"
	"github.com/taskmaster/taskmaster-api/internal/response"
	"github.com/taskmaster/taskmaster-api/internal/services"
)

// AuthHandler coordinates authentication HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register signs a new user up with the identity provider and stores the
// profile record.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationFields):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserAlreadyExists):
			response.Conflict(c, "User already exists")
		default:
			log.Error().Err(err).Msg("registration failed")
			response.BadRequest(c, "Registration failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.UserID,
	})
}

// Login authenticates a user against the identity provider.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsMissing):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid email or password")
		default:
			log.Error().Err(err).Msg("login failed")
			response.BadRequest(c, "Login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, dto.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// GetCurrentUser returns the profile of the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		log.Error().Err(err).Msg("failed to load user profile")
		response.InternalError(c, "Failed to load user profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
