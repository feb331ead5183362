package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/pkg/helpers"
	"github.com/pixelgrove/storefront/pkg/response"
	"github.com/pixelgrove/storefront/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.Manager
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	u, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already registered", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to register", nil)
		return
	}

	response.Success(c, http.StatusCreated, userView{ID: u.ID, Name: u.Name, Email: u.Email}, "registered", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	u, pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to login", nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"user":         userView{ID: u.ID, Name: u.Name, Email: u.Email},
		"access_token": pair.AccessToken,
		"expires_at":   pair.AccessTokenExpiry,
	}, "logged in", nil)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	pair, _, err := h.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"access_token": pair.AccessToken,
		"expires_at":   pair.AccessTokenExpiry,
	}, "token refreshed", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Auth.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// Profile returns the account plus its wishlist and cart, the way the store
// front page renders it.
func (h *AuthHandler) Profile(c *gin.Context) {
	p, err := h.Auth.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load profile", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":     userView{ID: p.User.ID, Name: p.User.Name, Email: p.User.Email},
		"wishlist": toProductDTOs(p.Wishlist),
		"cart":     toCartDTO(p.Cart),
	}, "profile", nil)
}
