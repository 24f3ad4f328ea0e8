package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/lifecycle"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

type UserController struct {
	users *store.Users
	log   *zap.Logger
}

func NewUserController(users *store.Users, log *zap.Logger) *UserController {
	return &UserController{users: users, log: log}
}

// Eligibility reports whether the donor may post a new donation. The donor
// document is re-read so the check never runs against a stale lastDonation.
func (ctrl *UserController) Eligibility(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)

	user, err := ctrl.users.FindByID(c.Context(), current.Id)
	if err != nil {
		ctrl.log.Error("eligibility: user lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	}

	result := lifecycle.CheckEligibility(user.LastDonation, time.Now())

	message := "You are eligible to donate blood!"
	if !result.Eligible {
		message = fmt.Sprintf("You need to wait %d more days before your next donation.", result.DaysRemaining)
	}

	return c.JSON(fiber.Map{
		"eligible":         result.Eligible,
		"message":          message,
		"lastDonation":     user.LastDonation,
		"nextEligibleDate": result.NextEligibleDate,
		"daysRemaining":    result.DaysRemaining,
	})
}

// UpdateProfile applies a partial edit of fullName, phone and bloodType.
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		FullName  *string `json:"fullName"`
		Phone     *string `json:"phone"`
		BloodType *string `json:"bloodType"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	fields := bson.M{}
	if body.FullName != nil && *body.FullName != "" {
		fields["fullName"] = *body.FullName
	}
	if body.Phone != nil {
		fields["phone"] = *body.Phone
	}
	if body.BloodType != nil {
		if !models.ValidBloodType(*body.BloodType) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid blood type"))
		}
		fields["bloodType"] = *body.BloodType
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("No valid fields to update"))
	}

	current := middleware.CurrentUser(c)
	user, err := ctrl.users.UpdateProfile(c.Context(), current.Id, fields)
	if err != nil {
		ctrl.log.Error("profile update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// Stats returns the authenticated user's donation counters.
func (ctrl *UserController) Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	return c.JSON(fiber.Map{
		"donationCount": user.DonationCount,
		"badge":         user.Badge,
		"lastDonation":  user.LastDonation,
		"memberSince":   user.CreatedAt,
	})
}
