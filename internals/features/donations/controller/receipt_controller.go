package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/donations/dto"
	"adoptme_backend/internals/features/donations/model"
	helper "adoptme_backend/internals/helpers"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GetMyReceipts lists the tax receipts for the caller's donations, optionally
// narrowed to one tax year.
func (ctrl *ReceiptController) GetMyReceipts(c *fiber.Ctx) error {
	donorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "issued_at", "desc", helper.DefaultOpts)

	q := ctrl.DB.Model(&model.DonationReceipt{}).
		Joins("JOIN donations ON donations.donation_id = donation_receipts.receipt_donation_id").
		Where("donations.donation_donor_id = ?", donorID)
	if year := c.QueryInt("tax_year"); year > 0 {
		q = q.Where("receipt_tax_year = ?", year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count receipts")
	}

	var receipts []model.DonationReceipt
	if err := q.Order("issued_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&receipts).Error; err != nil {
		log.Println("[ERROR] fetch receipts:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch receipts")
	}

	out := make([]dto.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		out = append(out, dto.ToReceiptResponse(&receipts[i]))
	}

	return helper.Success(c, "Receipts retrieved", fiber.Map{
		"receipts": out,
		"meta":     helper.BuildMeta(total, p),
	})
}

// GetReceiptByDonation returns the receipt for one donation. Only the donor
// who made the donation (or an admin) may read it.
func (ctrl *ReceiptController) GetReceiptByDonation(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	var donation model.Donation
	if err := ctrl.DB.First(&donation, "donation_id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Donation not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch donation")
	}
	isOwner := donation.DonationDonorID != nil && *donation.DonationDonorID == requesterID
	if !isOwner && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusNotFound, "Donation not found")
	}

	var receipt model.DonationReceipt
	if err := ctrl.DB.First(&receipt, "receipt_donation_id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "No receipt issued for this donation")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch receipt")
	}

	return helper.Success(c, "Receipt retrieved", fiber.Map{
		"receipt": dto.ToReceiptResponse(&receipt),
	})
}
