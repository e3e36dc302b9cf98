package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shopkit/shop-service/internal/api/dto"
	"github.com/shopkit/shop-service/internal/service"
	apperrors "github.com/shopkit/shop-service/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and user listing.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		Data:    *user,
		Message: "User registered successfully",
	})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	result, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Status:  "success",
		Message: "Login successful",
		Token:   result.Token,
	})
}

// List handles GET /api/user/all.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}
