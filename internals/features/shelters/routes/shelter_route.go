package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	shelterController "adoptme_backend/internals/features/shelters/controller"
)

// PublicShelterRoutes registers read-only shelter endpoints.
func PublicShelterRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := shelterController.NewShelterController(db)

	api.Get("/", ctrl.GetShelters)
	api.Get("/:id", ctrl.GetShelterByID)
}

// UserShelterRoutes registers authenticated shelter management endpoints.
func UserShelterRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := shelterController.NewShelterController(db)

	api.Post("/", ctrl.CreateShelter)
	api.Patch("/:id", ctrl.UpdateShelter)
}

// AdminShelterRoutes registers admin-only verification endpoints.
func AdminShelterRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := shelterController.NewShelterController(db)

	api.Post("/:id/verification", ctrl.SetVerificationStatus)
}
