package handler

import (
	"net/http"
	"time"

	"notemark/dto"
	"notemark/middleware"
	"notemark/services"
	"notemark/usecase"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users *usecase.UserService
	// SecureCookies marks the token cookie Secure and SameSite=None, for production.
	SecureCookies bool
	Logger        *zap.Logger
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, expiresAt time.Time) {
	sameSite := http.SameSiteLaxMode
	if h.SecureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(services.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: sameSite,
	})
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
	})
}

func (h *AuthHandler) respondAuth(c *gin.Context, status int, message string, result *usecase.AuthResult) {
	h.setTokenCookie(c, result.Token, result.ExpiresAt)
	body := dto.AuthResponse{User: dto.ToUserResponse(result.User), Token: result.Token}
	if status == http.StatusCreated {
		utils.Created(c, message, body)
		return
	}
	utils.SuccessMessage(c, message, body)
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err, "Server error")
		return
	}

	result, err := h.Users.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err, "Server error")
		return
	}

	h.respondAuth(c, http.StatusCreated, "User created successfully", result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err, "Server error")
		return
	}

	client := usecase.ClientInfo{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
	result, err := h.Users.Login(c.Request.Context(), req, client)
	if err != nil {
		respondError(c, h.Logger, err, "Server error")
		return
	}

	h.respondAuth(c, http.StatusOK, "Login successful", result)
}

// Logout clears the cookie and revokes the presented token, if any. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Users.Logout(c.Request.Context(), middleware.ExtractToken(c)); err != nil {
		h.Logger.Warn("Failed to revoke token on logout", zap.Error(err))
	}

	h.clearTokenCookie(c)
	utils.SuccessMessage(c, "Logged out successfully", nil)
}

// Profile returns the authenticated user without the password hash.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "Not authorized")
		return
	}

	user, err := h.Users.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.Logger, err, "Server error")
		return
	}

	utils.Success(c, dto.ToUserResponse(user))
}

// DeleteAccount removes the user together with all of their notes and bookmarks.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Unauthorized(c, "Not authorized")
		return
	}

	if err := h.Users.DeleteAccount(c.Request.Context(), userID, middleware.Token(c)); err != nil {
		respondError(c, h.Logger, err, "Server error")
		return
	}

	h.clearTokenCookie(c)
	utils.SuccessMessage(c, "Account deleted successfully", nil)
}
