package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/donations/service"
	helper "adoptme_backend/internals/helpers"
)

type StatsController struct {
	DB    *gorm.DB
	Stats *service.StatisticsService
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{
		DB:    db,
		Stats: service.NewStatisticsService(db),
	}
}

// GetDonationStats returns the platform-wide donation statistics, computed
// live from completed donations.
func (ctrl *StatsController) GetDonationStats(c *fiber.Ctx) error {
	stats, err := ctrl.Stats.BuildPlatformStats(c.UserContext())
	if err != nil {
		log.Println("[ERROR] platform stats:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute donation statistics")
	}
	return helper.Success(c, "Donation statistics retrieved", stats)
}

// GetShelterDonationStats returns the same statistics scoped to one shelter.
func (ctrl *StatsController) GetShelterDonationStats(c *fiber.Ctx) error {
	shelterID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter id")
	}

	stats, err := ctrl.Stats.BuildShelterStats(c.UserContext(), shelterID)
	if err != nil {
		if errors.Is(err, service.ErrShelterNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
		}
		log.Println("[ERROR] shelter stats:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute shelter statistics")
	}
	return helper.Success(c, "Shelter donation statistics retrieved", stats)
}
