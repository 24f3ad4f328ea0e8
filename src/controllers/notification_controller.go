package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SyedAzeem24/blood-donation-system/src/lib"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/store"
)

type NotificationController struct {
	notes *store.Notifications
	log   *zap.Logger
}

func NewNotificationController(notes *store.Notifications, log *zap.Logger) *NotificationController {
	return &NotificationController{notes: notes, log: log}
}

// List pages the user's notification feed, newest first.
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	page := lib.ParsePagination(c, 20)

	notifications, total, err := ctrl.notes.ListByUser(c.Context(), user.Id, page.Limit, page.Skip)
	if err != nil {
		ctrl.log.Error("list notifications failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error fetching notifications"))
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"currentPage":   page.Page,
		"totalPages":    page.TotalPages(total),
		"total":         total,
		"hasMore":       page.HasMore(len(notifications), total),
	})
}

// UnreadCount returns the user's unread notification count.
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	count, err := ctrl.notes.CountUnread(c.Context(), user.Id)
	if err != nil {
		ctrl.log.Error("unread count failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkRead flips one of the user's notifications to read.
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID"))
	}

	user := middleware.CurrentUser(c)
	notification, err := ctrl.notes.MarkRead(c.Context(), id, user.Id)
	if err != nil {
		ctrl.log.Error("mark notification read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if notification == nil {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Notification not found"))
	}
	return c.JSON(notification)
}

// MarkAllRead flips every unread notification the user has.
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	updated, err := ctrl.notes.MarkAllRead(c.Context(), user.Id)
	if err != nil {
		ctrl.log.Error("mark all notifications read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
		"updated": updated,
	})
}

// Delete removes one of the user's notifications.
func (ctrl *NotificationController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID"))
	}

	user := middleware.CurrentUser(c)
	deleted, err := ctrl.notes.Delete(c.Context(), id, user.Id)
	if err != nil {
		ctrl.log.Error("delete notification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Notification not found"))
	}
	return c.JSON(lib.MessageResponse("Notification deleted successfully"))
}

// DeleteAll clears the user's entire feed.
func (ctrl *NotificationController) DeleteAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	deleted, err := ctrl.notes.DeleteAllForUser(c.Context(), user.Id)
	if err != nil {
		ctrl.log.Error("delete all notifications failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(fiber.Map{
		"message": "All notifications deleted",
		"deleted": deleted,
	})
}
