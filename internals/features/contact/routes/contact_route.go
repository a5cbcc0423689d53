package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contactController "adoptme_backend/internals/features/contact/controller"
)

// PublicContactRoutes registers the contact form and the public contact info.
func PublicContactRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := contactController.NewContactController(db)

	api.Post("/messages", ctrl.CreateMessage)
	api.Get("/info", ctrl.GetActiveContactInfo)
}

// AdminContactRoutes registers the admin inbox and contact-info management.
func AdminContactRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := contactController.NewContactController(db)

	api.Get("/messages", ctrl.GetMessages)
	api.Patch("/messages/:id", ctrl.UpdateMessage)
	api.Post("/info", ctrl.CreateContactInfo)
	api.Post("/info/:id/activate", ctrl.ActivateContactInfo)
}
