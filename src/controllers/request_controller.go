package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
	"github.com/SyedAzeem24/blood-donation-system/src/services"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

type RequestController struct {
	requests *store.Requests
	users    *store.Users
	notes    *store.Notifications
	notifier *services.Notifier
	log      *zap.Logger
}

func NewRequestController(
	requests *store.Requests,
	users *store.Users,
	notes *store.Notifications,
	notifier *services.Notifier,
	log *zap.Logger,
) *RequestController {
	return &RequestController{requests: requests, users: users, notes: notes, notifier: notifier, log: log}
}

// Create posts a new blood request and fans a notification out to donors.
func (ctrl *RequestController) Create(c *fiber.Ctx) error {
	var body struct {
		BloodType   string `json:"bloodType" validate:"required"`
		Hospital    string `json:"hospital" validate:"required"`
		RequestType string `json:"requestType" validate:"required,oneof=normal emergency"`
		Notes       string `json:"notes"`
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

	user := middleware.CurrentUser(c)
	request := models.RequestPost{
		ReceiverId:  user.Id,
		BloodType:   body.BloodType,
		Hospital:    body.Hospital,
		RequestType: body.RequestType,
		Notes:       body.Notes,
		Status:      models.RequestActive,
	}
	if err := ctrl.requests.Create(c.Context(), &request); err != nil {
		ctrl.log.Error("create request: insert failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error creating request"))
	}

	ctrl.notifier.FanOutNewRequest(c.Context(), &request)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Blood request posted successfully",
		"request": models.RequestDto{RequestPost: request, Receiver: dtoPtr(&user)},
	})
}

// List returns active requests, emergencies first, newest within each tier.
func (ctrl *RequestController) List(c *fiber.Ctx) error {
	page := lib.ParsePagination(c, 10)

	bloodType := c.Query("bloodType")
	if !models.ValidBloodType(bloodType) {
		bloodType = ""
	}
	requestType := c.Query("requestType")
	if requestType != models.RequestNormal && requestType != models.RequestEmergency {
		requestType = ""
	}

	requests, total, err := ctrl.requests.ListActive(c.Context(), bloodType, requestType, page.Limit, page.Skip)
	if err != nil {
		ctrl.log.Error("list requests failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error fetching requests"))
	}

	populated, err := ctrl.populate(c, requests)
	if err != nil {
		ctrl.log.Error("list requests: receiver populate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error fetching requests"))
	}

	return c.JSON(fiber.Map{
		"requests":      populated,
		"currentPage":   page.Page,
		"totalPages":    page.TotalPages(total),
		"totalRequests": total,
		"hasMore":       page.HasMore(len(requests), total),
	})
}

// MyRequests lists the receiver's own requests regardless of status.
func (ctrl *RequestController) MyRequests(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	requests, err := ctrl.requests.ListByReceiver(c.Context(), user.Id)
	if err != nil {
		ctrl.log.Error("list my requests failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(requests)
}

// GetByID returns a single request with its receiver's public profile.
func (ctrl *RequestController) GetByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID"))
	}

	request, err := ctrl.requests.Get(c.Context(), id)
	if err != nil {
		ctrl.log.Error("get request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if request == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Request not found"))
	}

	populated, err := ctrl.populate(c, []models.RequestPost{*request})
	if err != nil {
		ctrl.log.Error("get request: receiver populate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(populated[0])
}

// UpdateStatus moves a request to active, fulfilled or cancelled. Only the
// owning receiver or an admin may do so.
func (ctrl *RequestController) UpdateStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID"))
	}

	var body struct {
		Status string `json:"status" validate:"required,oneof=active fulfilled cancelled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := lib.ValidateStruct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid status"))
	}

	request, err := ctrl.requests.Get(c.Context(), id)
	if err != nil {
		ctrl.log.Error("update request status: lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if request == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Request not found"))
	}

	user := middleware.CurrentUser(c)
	if request.ReceiverId != user.Id && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized"))
	}

	updated, err := ctrl.requests.UpdateStatus(c.Context(), id, body.Status)
	if err != nil {
		ctrl.log.Error("update request status failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(fiber.Map{
		"message": "Request status updated",
		"request": updated,
	})
}

// Delete removes a request post (owner or admin) and its notifications.
func (ctrl *RequestController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID"))
	}

	request, err := ctrl.requests.Get(c.Context(), id)
	if err != nil {
		ctrl.log.Error("delete request: lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if request == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Request not found"))
	}

	user := middleware.CurrentUser(c)
	if request.ReceiverId != user.Id && user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to delete this request"))
	}

	if _, err := ctrl.requests.Delete(c.Context(), id); err != nil {
		ctrl.log.Error("delete request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if err := ctrl.notes.DeleteByPost(c.Context(), id); err != nil {
		ctrl.log.Error("delete request: notification cascade failed", zap.Error(err), zap.String("postId", id.Hex()))
	}

	return c.JSON(lib.MessageResponse("Request deleted successfully"))
}

func (ctrl *RequestController) populate(c *fiber.Ctx, requests []models.RequestPost) ([]models.RequestDto, error) {
	cache := make(map[primitive.ObjectID]*models.UserDto)
	out := make([]models.RequestDto, 0, len(requests))

	for _, request := range requests {
		dto, ok := cache[request.ReceiverId]
		if !ok {
			receiver, err := ctrl.users.FindByID(c.Context(), request.ReceiverId)
			if err != nil {
				return nil, err
			}
			dto = dtoPtr(receiver)
			cache[request.ReceiverId] = dto
		}
		out = append(out, models.RequestDto{RequestPost: request, Receiver: dto})
	}
	return out, nil
}
