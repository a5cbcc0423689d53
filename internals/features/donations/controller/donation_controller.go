package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/donations/dto"
	"adoptme_backend/internals/features/donations/model"
	"adoptme_backend/internals/features/donations/service"
	helper "adoptme_backend/internals/helpers"
)

var validate = validator.New()

type DonationController struct {
	DB        *gorm.DB
	Lifecycle *service.LifecycleService
}

func NewDonationController(db *gorm.DB) *DonationController {
	return &DonationController{
		DB:        db,
		Lifecycle: service.NewLifecycleService(db),
	}
}

// CreateDonation accepts a new donation from an authenticated user or a
// guest. The donation starts pending; money only counts after settlement.
func (ctrl *DonationController) CreateDonation(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDIfAny(c)
	if err != nil {
		return err
	}

	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	donation, err := ctrl.Lifecycle.Create(c.UserContext(), &req, requesterID)
	if err != nil {
		var fieldErrs service.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fieldErrs)
		}
		if errors.Is(err, service.ErrShelterNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Shelter not found")
		}
		log.Println("[ERROR] create donation:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create donation")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Donation created", fiber.Map{
		"donation": dto.ToDonationResponse(donation, nil, nil),
	})
}

// SettleDonation drives a pending donation through payment to its terminal
// state. Safe to retry: a donation settles at most once.
func (ctrl *DonationController) SettleDonation(c *fiber.Ctx) error {
	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	var req dto.SettleDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	donation, err := ctrl.Lifecycle.Settle(c.UserContext(), donationID, req.PaymentMethod, req.PaymentToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDonationNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Donation not found or not pending")
		case errors.Is(err, service.ErrAlreadySettled):
			return helper.Error(c, fiber.StatusConflict, "Donation already settled")
		case errors.Is(err, service.ErrMissingPaymentToken):
			return helper.Error(c, fiber.StatusBadRequest, "Payment token is required")
		}
		var payErr *service.PaymentError
		if errors.As(err, &payErr) {
			return helper.Error(c, fiber.StatusBadRequest, "Payment processing failed")
		}
		log.Println("[ERROR] settle donation:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to settle donation")
	}

	return helper.Success(c, "Donation completed", fiber.Map{
		"donation": dto.ToDonationResponse(donation, nil, nil),
	})
}

// GetDonations lists donations. Non-admins only see completed, non-anonymous
// donations plus their own; admins see everything.
func (ctrl *DonationController) GetDonations(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDIfAny(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := ctrl.DB.Model(&model.Donation{})

	if !helper.IsAdmin(c) {
		// only completed donations are ever listed publicly; within those, the
		// caller additionally sees their own anonymous ones
		if requesterID != nil {
			q = q.Where(
				"donation_payment_status = ? AND (donation_is_anonymous = false OR donation_donor_id = ?)",
				model.PaymentCompleted, *requesterID,
			)
		} else {
			q = q.Where("donation_payment_status = ? AND donation_is_anonymous = false", model.PaymentCompleted)
		}
	}

	if t := c.Query("donation_type"); t != "" {
		q = q.Where("donation_type = ?", t)
	}
	if s := c.Query("payment_status"); s != "" && helper.IsAdmin(c) {
		q = q.Where("donation_payment_status = ?", s)
	}
	if sid := c.Query("shelter_id"); sid != "" {
		shelterID, err := uuid.Parse(sid)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid shelter_id")
		}
		q = q.Where("donation_shelter_id = ?", shelterID)
	}
	if min := c.Query("min_amount"); min != "" {
		amt, err := decimal.NewFromString(min)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid min_amount")
		}
		q = q.Where("donation_amount >= ?", amt)
	}
	if max := c.Query("max_amount"); max != "" {
		amt, err := decimal.NewFromString(max)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid max_amount")
		}
		q = q.Where("donation_amount <= ?", amt)
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid date_from, expected YYYY-MM-DD")
		}
		q = q.Where("created_at >= ?", t)
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid date_to, expected YYYY-MM-DD")
		}
		q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count donations")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"amount":     "donation_amount",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var donations []model.Donation
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&donations).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch donations")
	}

	out, err := ctrl.Lifecycle.Stats.ShapeDonations(c.UserContext(), donations)
	if err != nil {
		log.Println("[ERROR] shape donations:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch donations")
	}

	return helper.Success(c, "Donations retrieved", fiber.Map{
		"donations": out,
		"meta":      helper.BuildMeta(total, p),
	})
}

// GetDonationByID returns one donation, subject to the same visibility rule
// as the list.
func (ctrl *DonationController) GetDonationByID(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDIfAny(c)
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

	isOwner := requesterID != nil && donation.DonationDonorID != nil && *donation.DonationDonorID == *requesterID
	publiclyVisible := donation.IsCompleted() && !donation.DonationIsAnonymous
	if !publiclyVisible && !isOwner && !helper.IsAdmin(c) {
		// hide existence rather than acknowledge a private donation
		return helper.Error(c, fiber.StatusNotFound, "Donation not found")
	}

	shaped, err := ctrl.Lifecycle.Stats.ShapeDonations(c.UserContext(), []model.Donation{donation})
	if err != nil {
		log.Println("[ERROR] shape donation:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch donation")
	}

	return helper.Success(c, "Donation retrieved", fiber.Map{
		"donation": shaped[0],
	})
}

// GetMyDonations lists the caller's own donation history, any status.
func (ctrl *DonationController) GetMyDonations(c *fiber.Ctx) error {
	donorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := ctrl.DB.Model(&model.Donation{}).Where("donation_donor_id = ?", donorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count donations")
	}

	var donations []model.Donation
	if err := q.Order("created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&donations).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch donations")
	}

	out, err := ctrl.Lifecycle.Stats.ShapeDonations(c.UserContext(), donations)
	if err != nil {
		log.Println("[ERROR] shape donations:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch donations")
	}

	return helper.Success(c, "Donations retrieved", fiber.Map{
		"donations": out,
		"meta":      helper.BuildMeta(total, p),
	})
}

// SetDonationStatus applies an administrative status (refunded, cancelled)
// through the transition table. Admin only.
func (ctrl *DonationController) SetDonationStatus(c *fiber.Ctx) error {
	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid donation id")
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=refunded cancelled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Lifecycle.SetAdministrativeStatus(c.UserContext(), donationID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrDonationNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Donation not found")
		case errors.Is(err, service.ErrAlreadySettled):
			return helper.Error(c, fiber.StatusConflict, "Status change not allowed from the current status")
		}
		log.Println("[ERROR] set donation status:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update donation status")
	}

	return helper.Success(c, "Donation status updated", fiber.Map{
		"donation_id": donationID,
		"status":      req.Status,
	})
}
