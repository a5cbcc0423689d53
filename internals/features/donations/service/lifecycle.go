package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"adoptme_backend/internals/features/donations/dto"
	"adoptme_backend/internals/features/donations/model"
	shelterModel "adoptme_backend/internals/features/shelters/model"
)

// LifecycleService owns the donation state transitions and the side effects
// hanging off a completion (receipt issuance, campaign statistics).
type LifecycleService struct {
	DB        *gorm.DB
	Processor PaymentProcessor
	Stats     *StatisticsService
	Receipts  *ReceiptService
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{
		DB:        db,
		Processor: StubProcessor{},
		Stats:     NewStatisticsService(db),
		Receipts:  NewReceiptService(db),
	}
}

// Create validates the input and persists a new pending donation. When the
// requester is authenticated and the donation is not anonymous, the requester
// is bound as donor. No statistics move here: only completed donations count.
func (s *LifecycleService) Create(ctx context.Context, req *dto.CreateDonationRequest, requesterID *uuid.UUID) (*model.Donation, error) {
	if fieldErrs := ValidateDonationCreate(req); fieldErrs != nil {
		return nil, fieldErrs
	}

	if req.DonationType == model.TypeShelter {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&shelterModel.ShelterModel{}).
			Where("shelter_id = ?", *req.ShelterID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrShelterNotFound
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	donation := model.Donation{
		DonationType:               req.DonationType,
		DonationShelterID:          req.ShelterID,
		DonationAmount:             req.Amount,
		DonationCurrency:           currency,
		DonationPaymentMethod:      req.PaymentMethod,
		DonationPaymentStatus:      model.PaymentPending,
		DonationAnonymousName:      req.AnonymousDonorName,
		DonationAnonymousEmail:     req.AnonymousDonorEmail,
		DonationMessage:            req.Message,
		DonationDedication:         req.Dedication,
		DonationIsAnonymous:        req.IsAnonymous,
		DonationIsRecurring:        req.IsRecurring,
		DonationRecurringFrequency: req.RecurringFrequency,
		DonationIsTaxDeductible:    true,
		DonationReceiptEmail:       req.ReceiptEmail,
	}
	if !req.IsAnonymous && requesterID != nil {
		donation.DonationDonorID = requesterID
	}

	if err := s.DB.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// Settle drives a pending donation to its terminal payment outcome.
//
// The donation is first claimed with an atomic conditional update keyed on
// (id, pending) that moves it to processing, so of two concurrent settlements
// only one ever reaches the payment processor: the loser sees zero rows
// affected and gets ErrAlreadySettled. Receipt issuance and campaign
// recomputation only run on the completing path.
func (s *LifecycleService) Settle(ctx context.Context, donationID uuid.UUID, method, token string) (*model.Donation, error) {
	var donation model.Donation
	err := s.DB.WithContext(ctx).
		Where("donation_id = ? AND donation_payment_status = ?", donationID, model.PaymentPending).
		First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	if token == "" {
		return nil, ErrMissingPaymentToken
	}
	if method == "" {
		method = donation.DonationPaymentMethod
	}

	// claim before charging: the conditional pending→processing update is the
	// point of no return, anyone who loses it never talks to the processor
	claim := s.DB.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_id = ? AND donation_payment_status = ?", donationID, model.PaymentPending).
		Update("donation_payment_status", model.PaymentProcessing)
	if claim.Error != nil {
		return nil, claim.Error
	}
	if claim.RowsAffected == 0 {
		return nil, ErrAlreadySettled
	}

	transactionID, chargeErr := s.Processor.Charge(ctx, &donation, method, token)
	if chargeErr != nil {
		// record the terminal failed state before surfacing the error so the
		// caller can always discover the donation is dead
		if err := s.DB.WithContext(ctx).Model(&model.Donation{}).
			Where("donation_id = ? AND donation_payment_status = ?", donationID, model.PaymentProcessing).
			Update("donation_payment_status", model.PaymentFailed).Error; err != nil {
			log.Println("[ERROR] mark donation failed:", err)
		}
		return nil, &PaymentError{Err: chargeErr}
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_id = ? AND donation_payment_status = ?", donationID, model.PaymentProcessing).
		Updates(map[string]interface{}{
			"donation_payment_status": model.PaymentCompleted,
			"completed_at":            now,
			"donation_transaction_id": transactionID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadySettled
	}

	donation.DonationPaymentStatus = model.PaymentCompleted
	donation.CompletedAt = &now
	donation.DonationTransactionID = transactionID

	if donation.DonationIsTaxDeductible {
		if _, err := s.Receipts.IssueReceiptIfNeeded(ctx, &donation); err != nil {
			log.Println("[ERROR] receipt issuance:", err)
		}
	}

	if err := s.recomputeCampaignsInScope(ctx, &donation); err != nil {
		log.Println("[ERROR] campaign recompute:", err)
	}

	return &donation, nil
}

// SetAdministrativeStatus applies refunded/cancelled through the transition
// table. Not reachable from the donor-facing path.
func (s *LifecycleService) SetAdministrativeStatus(ctx context.Context, donationID uuid.UUID, status string) error {
	var donation model.Donation
	err := s.DB.WithContext(ctx).First(&donation, "donation_id = ?", donationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return err
	}

	if !model.CanTransitionPayment(donation.DonationPaymentStatus, status) {
		return ErrAlreadySettled
	}

	res := s.DB.WithContext(ctx).Model(&model.Donation{}).
		Where("donation_id = ? AND donation_payment_status = ?", donationID, donation.DonationPaymentStatus).
		Update("donation_payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadySettled
	}

	// a refund changes the completed set, so bring the snapshots back in line
	if status == model.PaymentRefunded {
		donation.DonationPaymentStatus = status
		if err := s.recomputeCampaignsInScope(ctx, &donation); err != nil {
			log.Println("[ERROR] campaign recompute after refund:", err)
		}
	}
	return nil
}

// recomputeCampaignsInScope refreshes every active campaign the donation
// counts toward: the donation's shelter for shelter donations, all
// platform-wide campaigns for platform donations, nothing otherwise.
func (s *LifecycleService) recomputeCampaignsInScope(ctx context.Context, d *model.Donation) error {
	q := s.DB.WithContext(ctx).Model(&model.DonationCampaign{}).
		Where("campaign_status = ?", model.CampaignActive)

	switch d.DonationType {
	case model.TypeShelter:
		if d.DonationShelterID == nil {
			return nil
		}
		q = q.Where("campaign_shelter_id = ?", *d.DonationShelterID)
	case model.TypePlatform:
		q = q.Where("campaign_shelter_id IS NULL")
	default:
		return nil
	}

	var campaigns []model.DonationCampaign
	if err := q.Find(&campaigns).Error; err != nil {
		return err
	}
	for i := range campaigns {
		if err := s.Stats.Recompute(ctx, &campaigns[i]); err != nil {
			return err
		}
	}
	return nil
}
