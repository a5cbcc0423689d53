package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "adoptme_backend/internals/features/users/controller"
	"adoptme_backend/internals/middlewares"
)

// AuthRoutes registers the public auth endpoints.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	api.Post("/register", middlewares.RegisterRateLimiter(), userCtrl.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), userCtrl.Login)
	api.Post("/logout", userCtrl.Logout)
}

// UserRoutes registers the authenticated profile endpoints.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	api.Get("/me", userCtrl.Me)
	api.Patch("/me", userCtrl.UpdateProfile)
}
