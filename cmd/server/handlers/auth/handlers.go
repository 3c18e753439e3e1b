package auth

import (
	"context"
	"errors"

	"resume-forge/cmd/server/handlers/handlerutil"
	"resume-forge/cmd/server/handlers/httperr"
	"resume-forge/internal/logger"
	"resume-forge/internal/services/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuthService defines the interface for auth service
type AuthService interface {
	SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.AuthResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
	VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) (*auth.AuthResponse, error)
	ResendVerification(ctx context.Context, req auth.ResendVerificationRequest) error
	Profile(ctx context.Context, userID bson.ObjectID) (*auth.User, error)
	UpdateProfile(ctx context.Context, userID bson.ObjectID, req auth.UpdateProfileRequest) (*auth.User, error)
}

// Handlers contains the auth HTTP handlers
type Handlers struct {
	authService AuthService
	validator   *validator.Validate
}

// NewHandlers creates new auth handlers
func NewHandlers(authService AuthService, validator *validator.Validate) *Handlers {
	return &Handlers{
		authService: authService,
		validator:   validator,
	}
}

// rejections are domain errors the caller can act on; they surface as 400
// with their own message. Anything else is an internal failure and comes
// back as a generic 500 so database or SMTP details never leak.
var rejections = []error{
	auth.ErrUserExists,
	auth.ErrInvalidCredentials,
	auth.ErrNotVerified,
	auth.ErrInvalidCode,
	auth.ErrAlreadyVerified,
}

func serviceError(handler, email string, err error) error {
	for _, known := range rejections {
		if errors.Is(err, known) {
			logger.L().Warn("request rejected", "handler", handler, "email", email, "error", err)
			return httperr.Fail(httperr.E{
				Status:  400,
				Message: err.Error(),
			})
		}
	}
	logger.L().Error("service failed", "handler", handler, "email", email, "error", err)
	return httperr.Fail(httperr.ErrInternal)
}

// SignUp handles user registration
func (h *Handlers) SignUp(c *fiber.Ctx) error {
	var req auth.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse signup request body", "handler", "SignUp", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := h.validator.Struct(req); err != nil {
		logger.L().Warn("signup request validation failed", "handler", "SignUp", "error", err)
		return httperr.InvalidInput(err)
	}

	resp, err := h.authService.SignUp(c.Context(), req)
	if err != nil {
		return serviceError("SignUp", req.Email, err)
	}

	return c.Status(201).JSON(resp)
}

// Login handles user authentication. Unverified accounts and bad credentials
// both come back as 400, with the service choosing the message.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse login request body", "handler", "Login", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := h.validator.Struct(req); err != nil {
		logger.L().Warn("login request validation failed", "handler", "Login", "error", err)
		return httperr.InvalidInput(err)
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return serviceError("Login", req.Email, err)
	}

	return c.JSON(resp)
}

// VerifyEmail consumes a pending verification code.
func (h *Handlers) VerifyEmail(c *fiber.Ctx) error {
	var req auth.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse verify request body", "handler", "VerifyEmail", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := h.validator.Struct(req); err != nil {
		logger.L().Warn("verify request validation failed", "handler", "VerifyEmail", "error", err)
		return httperr.InvalidInput(err)
	}

	resp, err := h.authService.VerifyEmail(c.Context(), req)
	if err != nil {
		return serviceError("VerifyEmail", req.Email, err)
	}

	return c.JSON(resp)
}

// ResendVerification regenerates and re-emails a verification code.
func (h *Handlers) ResendVerification(c *fiber.Ctx) error {
	var req auth.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.L().Warn("failed to parse resend request body", "handler", "ResendVerification", "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := h.validator.Struct(req); err != nil {
		logger.L().Warn("resend request validation failed", "handler", "ResendVerification", "error", err)
		return httperr.InvalidInput(err)
	}

	if err := h.authService.ResendVerification(c.Context(), req); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return handlerutil.NotFoundError(err)
		}
		return serviceError("ResendVerification", req.Email, err)
	}

	return c.JSON(map[string]string{"message": "Verification code sent"})
}

// Profile returns the authenticated user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return handlerutil.NotFoundError(err)
		}
		logger.L().Error("profile lookup failed", "handler", "Profile", "userID", userID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(user)
}

// UpdateProfile applies a partial profile update.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	userID, err := handlerutil.GetUserID(c)
	if err != nil {
		return err
	}

	var req auth.UpdateProfileRequest
	if err := handlerutil.ParseAndValidateBody(c, &req, h.validator, "UpdateProfile"); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return handlerutil.NotFoundError(err)
		case errors.Is(err, auth.ErrImageTooLarge):
			return httperr.Fail(httperr.E{Status: 400, Message: err.Error()})
		}
		logger.L().Error("profile update failed", "handler", "UpdateProfile", "userID", userID.Hex(), "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(user)
}
