package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"adoptme_backend/internals/features/donations/dto"
)

var validate = validator.New()

// Amount ceilings, in currency units.
var (
	MaxDonationAmount = decimal.RequireFromString("100000.00")
	MaxTargetAmount   = decimal.RequireFromString("1000000.00")
)

// ValidateDonationCreate runs the tag validation plus the cross-field
// business rules. Returns nil when the input is clean.
func ValidateDonationCreate(req *dto.CreateDonationRequest) ValidationErrors {
	fieldErrs := collectTagErrors(validate.Struct(req))

	if !req.Amount.IsPositive() {
		fieldErrs["amount"] = "Donation amount must be greater than 0."
	} else if req.Amount.GreaterThan(MaxDonationAmount) {
		fieldErrs["amount"] = "Donation amount cannot exceed 100,000.00."
	}

	if req.DonationType == "shelter" && req.ShelterID == nil {
		fieldErrs["shelter_id"] = "Shelter is required for shelter donations."
	}

	if req.IsAnonymous {
		if req.AnonymousDonorName == "" {
			fieldErrs["anonymous_donor_name"] = "Name is required for anonymous donations."
		}
		if req.AnonymousDonorEmail == "" {
			fieldErrs["anonymous_donor_email"] = "Email is required for anonymous donations."
		}
	}

	if req.IsRecurring && req.RecurringFrequency == "" {
		fieldErrs["recurring_frequency"] = "Frequency is required for recurring donations."
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// ValidateCampaignCreate enforces the campaign creation rules.
func ValidateCampaignCreate(req *dto.CreateCampaignRequest) ValidationErrors {
	fieldErrs := collectTagErrors(validate.Struct(req))

	if !req.TargetAmount.IsPositive() {
		fieldErrs["target_amount"] = "Target amount must be greater than 0."
	} else if req.TargetAmount.GreaterThan(MaxTargetAmount) {
		fieldErrs["target_amount"] = "Target amount cannot exceed 1,000,000.00."
	}

	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && !req.StartDate.Before(req.EndDate) {
		fieldErrs["end_date"] = "End date must be after start date."
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

func collectTagErrors(err error) ValidationErrors {
	fieldErrs := ValidationErrors{}
	if err == nil {
		return fieldErrs
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fieldErrs[fe.Field()] = fe.Tag()
		}
	}
	return fieldErrs
}
