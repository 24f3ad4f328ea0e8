package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/lifecycle"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/services"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

type DonationController struct {
	donations *store.Donations
	history   *store.History
	users     *store.Users
	notes     *store.Notifications
	engine    *lifecycle.Engine
	notifier  *services.Notifier
	log       *zap.Logger
}

func NewDonationController(
	donations *store.Donations,
	history *store.History,
	users *store.Users,
	notes *store.Notifications,
	engine *lifecycle.Engine,
	notifier *services.Notifier,
	log *zap.Logger,
) *DonationController {
	return &DonationController{
		donations: donations,
		history:   history,
		users:     users,
		notes:     notes,
		engine:    engine,
		notifier:  notifier,
		log:       log,
	}
}

// parseDate accepts both RFC3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// Create posts a new donation. The cooloff is enforced here as well as in
// the eligibility endpoint, against a freshly loaded donor document.
func (ctrl *DonationController) Create(c *fiber.Ctx) error {
	var body struct {
		BloodType    string `json:"bloodType" validate:"required"`
		Hospital     string `json:"hospital" validate:"required"`
		DonationDate string `json:"donationDate" validate:"required"`
		Quantity     int    `json:"quantity" validate:"required,min=1"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := lib.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}
	if !models.ValidBloodType(body.BloodType) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid blood type"))
	}
	if !models.ValidHospital(body.Hospital) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid hospital"))
	}
	donationDate, err := parseDate(body.DonationDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid donation date"))
	}

	current := middleware.CurrentUser(c)
	donor, err := ctrl.users.FindByID(c.Context(), current.Id)
	if err != nil {
		ctrl.log.Error("create donation: donor lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error creating donation"))
	}
	if donor == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	}

	eligibility := lifecycle.CheckEligibility(donor.LastDonation, time.Now())
	if !eligibility.Eligible {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("You are not eligible to donate yet. Next eligible date: %s",
				eligibility.NextEligibleDate.Format("Mon Jan 02 2006")),
			"nextEligibleDate": eligibility.NextEligibleDate,
		})
	}

	donation := models.DonationPost{
		DonorId:      donor.Id,
		BloodType:    body.BloodType,
		Hospital:     body.Hospital,
		DonationDate: donationDate,
		ExpiryDate:   lifecycle.ExpiryDate(donationDate),
		Quantity:     body.Quantity,
		Status:       models.DonationAvailable,
	}
	if err := ctrl.donations.Create(c.Context(), &donation); err != nil {
		ctrl.log.Error("create donation: insert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error creating donation"))
	}

	badge := lifecycle.BadgeFor(donor.DonationCount + 1)
	updated, err := ctrl.users.RecordDonation(c.Context(), donor.Id, donationDate, badge)
	if err != nil || updated == nil {
		ctrl.log.Error("create donation: donor counter update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error creating donation"))
	}

	ctrl.notifier.FanOutNewDonation(c.Context(), &donation)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Donation posted successfully",
		"donation":      models.DonationDto{DonationPost: donation, Donor: dtoPtr(updated)},
		"userBadge":     updated.Badge,
		"donationCount": updated.DonationCount,
	})
}

// List returns available donations, sweeping stale posts into history first.
func (ctrl *DonationController) List(c *fiber.Ctx) error {
	if _, err := ctrl.engine.SweepExpired(c.Context(), time.Now()); err != nil {
		// The listing is still served; the sweep retries on the next read.
		ctrl.log.Error("expiry sweep failed", zap.Error(err))
	}

	page := lib.ParsePagination(c, 10)
	bloodType := c.Query("bloodType")
	if !models.ValidBloodType(bloodType) {
		bloodType = ""
	}

	donations, total, err := ctrl.donations.ListAvailable(c.Context(), bloodType, page.Limit, page.Skip)
	if err != nil {
		ctrl.log.Error("list donations failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error fetching donations"))
	}

	populated, err := ctrl.populate(c, donations)
	if err != nil {
		ctrl.log.Error("list donations: donor populate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error fetching donations"))
	}

	return c.JSON(fiber.Map{
		"donations":      populated,
		"currentPage":    page.Page,
		"totalPages":     page.TotalPages(total),
		"totalDonations": total,
		"hasMore":        page.HasMore(len(donations), total),
	})
}

// MyDonations lists the donor's own posts regardless of status.
func (ctrl *DonationController) MyDonations(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	donations, err := ctrl.donations.ListByDonor(c.Context(), user.Id)
	if err != nil {
		ctrl.log.Error("list my donations failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(donations)
}

// History pages the donor's ledger of terminal donations.
func (ctrl *DonationController) History(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page := lib.ParsePagination(c, 10)

	entries, total, err := ctrl.history.ListByDonor(c.Context(), user.Id, page.Limit, page.Skip)
	if err != nil {
		ctrl.log.Error("list donation history failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error fetching history"))
	}

	return c.JSON(fiber.Map{
		"history":      entries,
		"currentPage":  page.Page,
		"totalPages":   page.TotalPages(total),
		"totalRecords": total,
		"hasMore":      page.HasMore(len(entries), total),
	})
}

// GetByID returns a single donation with its donor's public profile.
func (ctrl *DonationController) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid donation ID"))
	}

	donation, err := ctrl.donations.Get(c.Context(), id)
	if err != nil {
		ctrl.log.Error("get donation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if donation == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Donation not found"))
	}

	populated, err := ctrl.populate(c, []models.DonationPost{*donation})
	if err != nil {
		ctrl.log.Error("get donation: donor populate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(populated[0])
}

// Fulfill marks an available donation as taken by the acting receiver.
// Exactly one of several concurrent receivers wins; the rest get a 400 that
// is distinct from a 404.
func (ctrl *DonationController) Fulfill(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid donation ID"))
	}

	receiver := middleware.CurrentUser(c)
	donation, err := ctrl.engine.Fulfill(c.Context(), id, receiver.Id)
	if err != nil {
		switch err {
		case lifecycle.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Donation not found"))
		case lifecycle.ErrAlreadyTaken:
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("This donation has already been accepted"))
		default:
			ctrl.log.Error("fulfill donation failed", zap.Error(err), zap.String("postId", id.Hex()))
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}
	}

	ctrl.notifier.NotifyDonationFulfilled(c.Context(), donation)

	return c.JSON(lib.MessageResponse("Donation marked as fulfilled. Thank you!"))
}

// Receipt returns the data block for a donor's donation receipt; rendering
// stays client-side.
func (ctrl *DonationController) Receipt(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid donation ID"))
	}

	donation, err := ctrl.donations.Get(c.Context(), id)
	if err != nil {
		ctrl.log.Error("get receipt failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if donation == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Donation not found"))
	}

	user := middleware.CurrentUser(c)
	if donation.DonorId != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to access this receipt"))
	}

	hex := donation.Id.Hex()
	return c.JSON(fiber.Map{
		"receiptId":    "BDR-" + strings.ToUpper(hex[len(hex)-8:]),
		"donorName":    user.FullName,
		"donorEmail":   user.Email,
		"bloodType":    donation.BloodType,
		"hospital":     donation.Hospital,
		"donationDate": donation.DonationDate,
		"quantity":     donation.Quantity,
		"createdAt":    donation.CreatedAt,
	})
}

// Delete removes a donation post (owner or admin) and its notifications.
// History rows already written stay untouched.
func (ctrl *DonationController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid donation ID"))
	}

	donation, err := ctrl.donations.Get(c.Context(), id)
	if err != nil {
		ctrl.log.Error("delete donation: lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if donation == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Donation not found"))
	}

	user := middleware.CurrentUser(c)
	if donation.DonorId != user.Id && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to delete this donation"))
	}

	if _, err := ctrl.donations.Delete(c.Context(), id); err != nil {
		ctrl.log.Error("delete donation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if err := ctrl.notes.DeleteByPost(c.Context(), id); err != nil {
		ctrl.log.Error("delete donation: notification cascade failed", zap.Error(err), zap.String("postId", id.Hex()))
	}

	return c.JSON(lib.MessageResponse("Donation deleted successfully"))
}

// populate attaches each donation's donor public profile, caching lookups
// across the batch.
func (ctrl *DonationController) populate(c *fiber.Ctx, donations []models.DonationPost) ([]models.DonationDto, error) {
	cache := make(map[primitive.ObjectID]*models.UserDto)
	out := make([]models.DonationDto, 0, len(donations))

	for _, donation := range donations {
		dto, ok := cache[donation.DonorId]
		if !ok {
			donor, err := ctrl.users.FindByID(c.Context(), donation.DonorId)
			if err != nil {
				return nil, err
			}
			dto = dtoPtr(donor)
			cache[donation.DonorId] = dto
		}
		out = append(out, models.DonationDto{DonationPost: donation, Donor: dto})
	}
	return out, nil
}

func dtoPtr(user *models.User) *models.UserDto {
	if user == nil {
		return nil
	}
	dto := user.Dto()
	return &dto
}
