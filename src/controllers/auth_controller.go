package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

type AuthController struct {
	users  *store.Users
	secret string
	log    *zap.Logger
}

func NewAuthController(users *store.Users, secret string, log *zap.Logger) *AuthController {
	return &AuthController{users: users, secret: secret, log: log}
}

// Register creates a donor or receiver account and issues a token.
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
		FullName  string `json:"fullName" validate:"required"`
		Role      string `json:"role" validate:"required,oneof=donor receiver"`
		BloodType string `json:"bloodType"`
		Phone     string `json:"phone"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := lib.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}
	if body.BloodType != "" && !models.ValidBloodType(body.BloodType) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid blood type"))
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	existing, err := ctrl.users.FindByEmail(c.Context(), email)
	if err != nil {
		ctrl.log.Error("register: email lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error during registration"))
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("User already exists with this email"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		ctrl.log.Error("register: password hash failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error during registration"))
	}

	user := models.User{
		Role:      body.Role,
		Email:     email,
		Password:  string(hashed),
		FullName:  strings.TrimSpace(body.FullName),
		BloodType: body.BloodType,
		Phone:     body.Phone,
		Badge:     "None",
	}
	if err := ctrl.users.Create(c.Context(), &user); err != nil {
		ctrl.log.Error("register: insert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error during registration"))
	}

	token, err := lib.GenerateToken(user.Id, user.Role, ctrl.secret)
	if err != nil {
		ctrl.log.Error("register: token generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error during registration"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates by email and password.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := lib.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Please provide email and password"))
	}

	user, err := ctrl.users.FindByEmail(c.Context(), strings.ToLower(strings.TrimSpace(body.Email)))
	if err != nil {
		ctrl.log.Error("login: email lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error during login"))
	}
	if user == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	token, err := lib.GenerateToken(user.Id, user.Role, ctrl.secret)
	if err != nil {
		ctrl.log.Error("login: token generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error during login"))
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Profile returns the authenticated user.
func (ctrl *AuthController) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(user)
}

// Logout exists for client symmetry; tokens are stateless.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(lib.MessageResponse("Logged out successfully"))
}
