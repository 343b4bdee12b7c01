package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rushikeshdhande/Library-Management-System/internal/apperr"
	"github.com/rushikeshdhande/Library-Management-System/internal/config"
	"github.com/rushikeshdhande/Library-Management-System/internal/middleware"
	"github.com/rushikeshdhande/Library-Management-System/internal/models"
	"github.com/rushikeshdhande/Library-Management-System/internal/service"
	"github.com/rushikeshdhande/Library-Management-System/internal/utils"
)

type AuthHandler struct {
	Svc *service.AuthService
	Cfg config.Config
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

func NewAuthHandler(svc *service.AuthService, cfg config.Config) *AuthHandler {
	return &AuthHandler{Svc: svc, Cfg: cfg}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Please enter all fields."))
		return
	}

	if appErr := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password); appErr != nil {
		fail(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent successfully."})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Email or OTP is missing."))
		return
	}
	otp, err := strconv.Atoi(req.OTP)
	if err != nil {
		fail(c, apperr.Validation("Email or OTP is missing."))
		return
	}

	user, appErr := h.Svc.VerifyOTP(c.Request.Context(), req.Email, otp)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	h.sendToken(c, user, "Account verified successfully.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Please enter all fields."))
		return
	}

	user, appErr := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	h.sendToken(c, user, "User login successfully.")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, apperr.Unauthorized("Session is invalid or has expired."))
		return
	}

	user, appErr := h.Svc.GetUser(c.Request.Context(), userID)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Email is required."))
		return
	}

	if appErr := h.Svc.ForgotPassword(c.Request.Context(), req.Email); appErr != nil {
		fail(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Email sent to %s successfully.", req.Email)})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Please enter all fields."))
		return
	}

	user, appErr := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	h.sendToken(c, user, "Password reset successfully.")
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, apperr.Unauthorized("Session is invalid or has expired."))
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("Please enter all fields."))
		return
	}

	if appErr := h.Svc.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword, req.ConfirmNewPassword); appErr != nil {
		fail(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated."})
}

// sendToken issues the session JWT, sets it as the session cookie
// (httpOnly, secure, cross-site), and echoes it in the body for
// non-browser clients.
func (h *AuthHandler) sendToken(c *gin.Context, user *models.User, message string) {
	token, err := utils.GenerateSessionToken(user.ID.String(), h.Cfg.JwtSecret, h.Cfg.JwtExpireDays)
	if err != nil {
		fail(c, apperr.Internal("Internal server error."))
		return
	}

	maxAge := h.Cfg.CookieExpireDays * 24 * 60 * 60
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"token":   token,
		"user":    user,
	})
}

func fail(c *gin.Context, appErr *apperr.Error) {
	c.JSON(appErr.Status, gin.H{"success": false, "message": appErr.Message})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	raw, ok := value.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
