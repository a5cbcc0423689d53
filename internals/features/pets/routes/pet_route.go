package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	petController "adoptme_backend/internals/features/pets/controller"
)

// PublicPetRoutes registers read-only pet endpoints.
func PublicPetRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := petController.NewPetController(db)

	api.Get("/", ctrl.GetPets)
	api.Get("/:id", ctrl.GetPetByID)
}

// UserPetRoutes registers pet management endpoints for shelter owners.
func UserPetRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := petController.NewPetController(db)

	api.Post("/", ctrl.CreatePet)
	api.Patch("/:id", ctrl.UpdatePet)
	api.Patch("/:id/status", ctrl.UpdatePetStatus)
}
