package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	donationController "adoptme_backend/internals/features/donations/controller"
	"adoptme_backend/internals/middlewares"
)

// PublicDonationRoutes registers the guest-reachable donation endpoints.
// They run behind optional auth: an identity is bound when present, but none
// is required. Settlement carries its own rate limit keyed per donation.
func PublicDonationRoutes(api fiber.Router, db *gorm.DB) {
	donationCtrl := donationController.NewDonationController(db)
	campaignCtrl := donationController.NewCampaignController(db)
	statsCtrl := donationController.NewStatsController(db)

	api.Post("/", donationCtrl.CreateDonation)
	api.Get("/", donationCtrl.GetDonations)
	api.Get("/stats", statsCtrl.GetDonationStats)
	api.Get("/campaigns", campaignCtrl.GetCampaigns)
	api.Get("/campaigns/:id", campaignCtrl.GetCampaignByID)
	api.Get("/:id", donationCtrl.GetDonationByID)
	api.Post("/:id/settle", middlewares.SettleRateLimiter(), donationCtrl.SettleDonation)
}

// UserDonationRoutes registers endpoints that require a logged-in donor.
func UserDonationRoutes(api fiber.Router, db *gorm.DB) {
	donationCtrl := donationController.NewDonationController(db)
	campaignCtrl := donationController.NewCampaignController(db)
	receiptCtrl := donationController.NewReceiptController(db)

	api.Get("/my", donationCtrl.GetMyDonations)
	api.Get("/receipts", receiptCtrl.GetMyReceipts)
	api.Get("/:id/receipt", receiptCtrl.GetReceiptByDonation)

	api.Post("/campaigns", campaignCtrl.CreateCampaign)
	api.Patch("/campaigns/:id", campaignCtrl.UpdateCampaign)
	api.Post("/campaigns/:id/status", campaignCtrl.UpdateCampaignStatus)
}

// AdminDonationRoutes registers administrative donation endpoints.
func AdminDonationRoutes(api fiber.Router, db *gorm.DB) {
	donationCtrl := donationController.NewDonationController(db)
	campaignCtrl := donationController.NewCampaignController(db)

	api.Post("/:id/status", donationCtrl.SetDonationStatus)
	api.Post("/campaigns/:id/recompute", campaignCtrl.RecomputeCampaign)
}
