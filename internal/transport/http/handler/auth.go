package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neeraj476/notes-app/internal/domain"
	"github.com/neeraj476/notes-app/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase  authUsecaser
	logger       *slog.Logger
	secureCookie bool
}

// NewAuthHandler builds the handler; secureCookie should be true outside
// local development so the session cookie is HTTPS-only.
func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		logger:       logger.With("component", "auth_handler"),
		secureCookie: secureCookie,
	}
}

type fullNameRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"  binding:"required"`
}

type registerRequest struct {
	FullName fullNameRequest `json:"fullName" binding:"required"`
	Email    string          `json:"email"    binding:"required,email"`
	Password string          `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		FirstName: req.FullName.FirstName,
		LastName:  req.FullName.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errDuplicateEmail})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	setAuthCookie(c, token, h.secureCookie)
	h.logger.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
	})
}

// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": errUnknownEmail})
		case errors.Is(err, domain.ErrBadCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": errBadCredentials})
		default:
			h.logger.ErrorContext(c.Request.Context(), "login user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	setAuthCookie(c, token, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// GET /api/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GET /api/users/verify
// Runs behind the auth gate; reaching it means the session is valid.
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "User verified"})
}

// GET /api/users/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authUsecase.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "fetch profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile fetched successfully",
		"user":    user,
	})
}
