package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SyedAzeem24/blood-donation-system/src/controllers"
	"github.com/SyedAzeem24/blood-donation-system/src/middleware"
	"github.com/SyedAzeem24/blood-donation-system/src/models"
)

// Router bundles every controller the API mounts.
type Router struct {
	Auth          *middleware.Auth
	AuthCtrl      *controllers.AuthController
	Users         *controllers.UserController
	Donations     *controllers.DonationController
	Requests      *controllers.RequestController
	Notifications *controllers.NotificationController
	Admin         *controllers.AdminController
}

// Setup mounts the full API surface under /api.
func Setup(app *fiber.App, r Router) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.Post("/register", r.AuthCtrl.Register)
	auth.Post("/login", r.AuthCtrl.Login)
	auth.Get("/profile", r.Auth.Protect(), r.AuthCtrl.Profile)
	auth.Post("/logout", r.Auth.Protect(), r.AuthCtrl.Logout)

	users := api.Group("/users", r.Auth.Protect())
	users.Get("/eligibility", middleware.RequireRole(models.RoleDonor), r.Users.Eligibility)
	users.Put("/profile", r.Users.UpdateProfile)
	users.Get("/stats", r.Users.Stats)

	donations := api.Group("/donations", r.Auth.Protect())
	donations.Post("/", middleware.RequireRole(models.RoleDonor), r.Donations.Create)
	donations.Get("/", r.Donations.List)
	donations.Get("/my-donations", middleware.RequireRole(models.RoleDonor), r.Donations.MyDonations)
	donations.Get("/history", middleware.RequireRole(models.RoleDonor), r.Donations.History)
	donations.Get("/receipt/:id", middleware.RequireRole(models.RoleDonor), r.Donations.Receipt)
	donations.Get("/:id", r.Donations.GetByID)
	donations.Post("/:id/fulfill", middleware.RequireRole(models.RoleReceiver), r.Donations.Fulfill)
	donations.Delete("/:id", r.Donations.Delete)

	requests := api.Group("/requests", r.Auth.Protect())
	requests.Post("/", middleware.RequireRole(models.RoleReceiver), r.Requests.Create)
	requests.Get("/", r.Requests.List)
	requests.Get("/my-requests", middleware.RequireRole(models.RoleReceiver), r.Requests.MyRequests)
	requests.Get("/:id", r.Requests.GetByID)
	requests.Put("/:id/status", r.Requests.UpdateStatus)
	requests.Delete("/:id", r.Requests.Delete)

	notifications := api.Group("/notifications", r.Auth.Protect())
	notifications.Get("/", r.Notifications.List)
	notifications.Get("/unread-count", r.Notifications.UnreadCount)
	notifications.Put("/read-all", r.Notifications.MarkAllRead)
	notifications.Put("/:id/read", r.Notifications.MarkRead)
	notifications.Delete("/", r.Notifications.DeleteAll)
	notifications.Delete("/:id", r.Notifications.Delete)

	admin := api.Group("/admin", r.Auth.Protect(), middleware.RequireRole(models.RoleAdmin))
	admin.Get("/stats", r.Admin.Stats)
	admin.Get("/users", r.Admin.Users)
	admin.Get("/all-posts", r.Admin.AllPosts)
	admin.Put("/post/:type/:id", r.Admin.UpdatePost)
	admin.Delete("/post/:type/:id", r.Admin.DeletePost)
	admin.Delete("/user/:id", r.Admin.DeleteUser)
}
