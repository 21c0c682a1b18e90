package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bazaar/internal/apperr"
	"github.com/example/bazaar/internal/config"
	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/services"
	"github.com/example/bazaar/internal/utils"
)

// AuthHandler bundles dependencies for the OTP/registration/login endpoints.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	otp *services.OTPService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, otp *services.OTPService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, otp: otp}
}

type sendOTPRequest struct {
	Type  string `json:"type" validate:"required,oneof=phone email"`
	Value string `json:"value" validate:"required"`
	Mode  string `json:"mode" validate:"required,oneof=register login"`
}

// SendOTP issues a one-time code for registration or login. In register
// mode the contact must be unused; in login mode it must belong to an
// existing user, whose id is echoed back as the login token.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := checkRequest(req); err != nil {
		return err
	}

	column := "phone"
	if req.Type == "email" {
		column = "email"
	}

	var user models.User
	err := h.db.Where(column+" = ?", req.Value).First(&user).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal("failed to look up user", err)
	}

	if req.Mode == "register" && found {
		if req.Type == "phone" {
			return apperr.Conflict("This phone number is already registered!")
		}
		return apperr.Conflict("This email is already registered!")
	}

	if req.Mode == "login" && !found {
		if req.Type == "phone" {
			return apperr.NotFound("This phone number is not registered!")
		}
		return apperr.NotFound("This email is not registered!")
	}

	code, err := h.otp.Issue(req.Type, req.Value, req.Mode)
	if err != nil {
		return apperr.Internal("failed to issue OTP", err)
	}

	var token interface{}
	if found {
		token = user.ID
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("OTP sent to %s %s", req.Type, req.Value),
		"otp":     code,
		"token":   token,
	})
}

type registerRequest struct {
	Username   string `json:"username" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	ReferredBy string `json:"referredBy"`
}

// Register creates a user after OTP verification on the client, generates
// a referral code, and issues the first session token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := checkRequest(req); err != nil {
		return err
	}

	var existing models.User
	err := h.db.Where("phone = ? OR email = ?", req.Phone, req.Email).First(&existing).Error
	if err == nil {
		return apperr.Conflict("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal("failed to look up user", err)
	}

	referralCode, err := utils.GenerateReferralCode()
	if err != nil {
		return apperr.Internal("failed to generate referral code", err)
	}

	user := models.User{
		Username:     req.Username,
		Phone:        req.Phone,
		Email:        req.Email,
		Role:         models.RoleUser,
		IPAddress:    c.IP(),
		ReferralCode: referralCode,
		ReferredBy:   req.ReferredBy,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("User already exists")
		}
		return apperr.Internal("failed to create user", err)
	}

	if err := h.issueSession(c, &user, "phone"); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Registration successful",
		"user":      user,
		"authToken": user.AuthToken,
	})
}

type loginRequest struct {
	Token string `json:"token"`
	Value string `json:"value"`
}

// Login matches a user by id and/or contact value and rotates the session
// token. OTP verification happened on the client before this call.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	if req.Token == "" && req.Value == "" {
		return apperr.Validation("token or value required")
	}

	queryDB := h.db.Model(&models.User{})
	if req.Token != "" {
		userID, err := uuid.Parse(req.Token)
		if err != nil {
			return apperr.NotFound("Invalid user")
		}
		queryDB = queryDB.Where("id = ?", userID)
	}
	if req.Value != "" {
		queryDB = queryDB.Where("phone = ? OR email = ?", req.Value, req.Value)
	}

	var user models.User
	if err := queryDB.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Invalid user")
		}
		return apperr.Internal("failed to look up user", err)
	}

	method := "phone"
	if strings.Contains(req.Value, "@") {
		method = "email"
	}

	if err := h.issueSession(c, &user, method); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Login successful",
		"user":      user,
		"authToken": user.AuthToken,
	})
}

// issueSession signs a fresh JWT, replaces the stored one, stamps
// lastLogin, and appends a login-history entry.
func (h *AuthHandler) issueSession(c *fiber.Ctx, user *models.User, method string) error {
	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return apperr.Internal("failed to generate token", err)
	}

	now := time.Now()
	user.AuthToken = token
	user.LastLogin = &now

	if err := h.db.Model(user).Updates(map[string]interface{}{
		"auth_token": token,
		"last_login": now,
	}).Error; err != nil {
		return apperr.Internal("failed to persist session token", err)
	}

	entry := models.LoginHistoryEntry{
		UserID:    user.ID,
		At:        now,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Method:    method,
		Success:   true,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		return apperr.Internal("failed to record login history", err)
	}

	return nil
}
