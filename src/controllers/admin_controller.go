package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

type AdminController struct {
	users     *store.Users
	donations *store.Donations
	requests  *store.Requests
	history   *store.History
	notes     *store.Notifications
	log       *zap.Logger
}

func NewAdminController(
	users *store.Users,
	donations *store.Donations,
	requests *store.Requests,
	history *store.History,
	notes *store.Notifications,
	log *zap.Logger,
) *AdminController {
	return &AdminController{
		users:     users,
		donations: donations,
		requests:  requests,
		history:   history,
		notes:     notes,
		log:       log,
	}
}

// Stats aggregates the system counters for the admin dashboard.
func (ctrl *AdminController) Stats(c *fiber.Ctx) error {
	ctx := c.Context()

	totalUsers, err := ctrl.users.CountNonAdmin(ctx)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	totalDonors, err := ctrl.users.CountByRole(ctx, models.RoleDonor)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	totalReceivers, err := ctrl.users.CountByRole(ctx, models.RoleReceiver)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	activeDonations, err := ctrl.donations.CountByStatus(ctx, models.DonationAvailable)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	activeRequests, err := ctrl.requests.CountActive(ctx)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	completedDonations, err := ctrl.history.CountAll(ctx)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	emergencyRequests, err := ctrl.requests.CountActiveEmergency(ctx)
	if err != nil {
		return ctrl.statsError(c, err)
	}
	bloodTypeStats, err := ctrl.donations.AvailableByBloodType(ctx)
	if err != nil {
		return ctrl.statsError(c, err)
	}

	return c.JSON(fiber.Map{
		"totalUsers":              totalUsers,
		"totalDonors":             totalDonors,
		"totalReceivers":          totalReceivers,
		"activeDonations":         activeDonations,
		"activeRequests":          activeRequests,
		"totalDonationsCompleted": completedDonations,
		"emergencyRequests":       emergencyRequests,
		"bloodTypeStats":          bloodTypeStats,
	})
}

func (ctrl *AdminController) statsError(c *fiber.Ctx, err error) error {
	ctrl.log.Error("admin stats failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
}

// Users pages the non-admin accounts, optionally by role.
func (ctrl *AdminController) Users(c *fiber.Ctx) error {
	page := lib.ParsePagination(c, 10)
	role := c.Query("role")

	users, total, err := ctrl.users.ListNonAdmin(c.Context(), role, page.Limit, page.Skip)
	if err != nil {
		ctrl.log.Error("admin list users failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(fiber.Map{
		"users":       users,
		"currentPage": page.Page,
		"totalPages":  page.TotalPages(total),
		"totalUsers":  total,
		"hasMore":     page.HasMore(len(users), total),
	})
}

// AllPosts returns donations and requests for moderation. When no type
// filter is given both lists come back with a short preview page each.
func (ctrl *AdminController) AllPosts(c *fiber.Ctx) error {
	page := lib.ParsePagination(c, 10)
	postType := c.Query("type")

	var (
		donations      []models.DonationPost
		requests       []models.RequestPost
		totalDonations int64
		totalRequests  int64
		err            error
	)

	if postType == "" || postType == models.PostTypeDonation {
		limit, skip := page.Limit, page.Skip
		if postType == "" {
			limit, skip = 5, 0
		}
		donations, totalDonations, err = ctrl.donations.ListAll(c.Context(), limit, skip)
		if err != nil {
			ctrl.log.Error("admin list donations failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
	}

	if postType == "" || postType == models.PostTypeRequest {
		limit, skip := page.Limit, page.Skip
		if postType == "" {
			limit, skip = 5, 0
		}
		requests, totalRequests, err = ctrl.requests.ListAll(c.Context(), limit, skip)
		if err != nil {
			ctrl.log.Error("admin list requests failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
	}

	return c.JSON(fiber.Map{
		"donations":      donations,
		"requests":       requests,
		"totalDonations": totalDonations,
		"totalRequests":  totalRequests,
		"currentPage":    page.Page,
	})
}

// UpdatePost edits a donation or request on behalf of moderation.
func (ctrl *AdminController) UpdatePost(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID"))
	}

	var body struct {
		BloodType *string `json:"bloodType"`
		Hospital  *string `json:"hospital"`
		Quantity  *int    `json:"quantity"`
		Notes     *string `json:"notes"`
		Status    *string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	fields := bson.M{}
	if body.BloodType != nil {
		if !models.ValidBloodType(*body.BloodType) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid blood type"))
		}
		fields["bloodType"] = *body.BloodType
	}
	if body.Hospital != nil {
		if !models.ValidHospital(*body.Hospital) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid hospital"))
		}
		fields["hospital"] = *body.Hospital
	}
	if body.Quantity != nil {
		if *body.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Quantity must be at least 1 unit"))
		}
		fields["quantity"] = *body.Quantity
	}
	if body.Notes != nil {
		fields["notes"] = *body.Notes
	}
	if body.Status != nil {
		fields["status"] = *body.Status
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("No valid fields to update"))
	}

	switch c.Params("type") {
	case models.PostTypeDonation:
		donation, err := ctrl.donations.UpdateFields(c.Context(), id, fields)
		if err != nil {
			ctrl.log.Error("admin update donation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
		if donation == nil {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Donation not found"))
		}
		return c.JSON(fiber.Map{"message": "Donation updated", "post": donation})

	case models.PostTypeRequest:
		request, err := ctrl.requests.UpdateFields(c.Context(), id, fields)
		if err != nil {
			ctrl.log.Error("admin update request failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
		if request == nil {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Request not found"))
		}
		return c.JSON(fiber.Map{"message": "Request updated", "post": request})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post type"))
	}
}

// DeletePost removes any donation or request and cascades its notifications.
func (ctrl *AdminController) DeletePost(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post ID"))
	}

	postType := c.Params("type")
	var deleted bool
	switch postType {
	case models.PostTypeDonation:
		deleted, err = ctrl.donations.Delete(c.Context(), id)
	case models.PostTypeRequest:
		deleted, err = ctrl.requests.Delete(c.Context(), id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid post type"))
	}
	if err != nil {
		ctrl.log.Error("admin delete post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if !deleted {
		if postType == models.PostTypeDonation {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Donation not found"))
		}
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Request not found"))
	}

	if err := ctrl.notes.DeleteByPost(c.Context(), id); err != nil {
		ctrl.log.Error("admin delete post: notification cascade failed", zap.Error(err), zap.String("postId", id.Hex()))
	}

	return c.JSON(lib.MessageResponse(postType + " deleted successfully"))
}

// DeleteUser removes a donor or receiver along with their posts, history and
// notifications. Admin accounts cannot be deleted.
func (ctrl *AdminController) DeleteUser(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID"))
	}

	user, err := ctrl.users.FindByID(c.Context(), id)
	if err != nil {
		ctrl.log.Error("admin delete user: lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	}
	if user.Role == models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Cannot delete admin users"))
	}

	ctx := c.Context()
	switch user.Role {
	case models.RoleDonor:
		if err := ctrl.donations.DeleteByDonor(ctx, user.Id); err != nil {
			ctrl.log.Error("admin delete user: donation cascade failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
		if err := ctrl.history.DeleteByDonor(ctx, user.Id); err != nil {
			ctrl.log.Error("admin delete user: history cascade failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
	case models.RoleReceiver:
		if err := ctrl.requests.DeleteByReceiver(ctx, user.Id); err != nil {
			ctrl.log.Error("admin delete user: request cascade failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
	}

	if _, err := ctrl.notes.DeleteAllForUser(ctx, user.Id); err != nil {
		ctrl.log.Error("admin delete user: notification cascade failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if _, err := ctrl.users.Delete(ctx, user.Id); err != nil {
		ctrl.log.Error("admin delete user failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	admin := middleware.CurrentUser(c)
	ctrl.log.Info("user deleted by admin",
		zap.String("userId", user.Id.Hex()),
		zap.String("role", user.Role),
		zap.String("adminId", admin.Id.Hex()))

	return c.JSON(lib.MessageResponse("User and related data deleted successfully"))
}
