package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adoptme_backend/internals/features/donations/dto"
)

func validDonationRequest() *dto.CreateDonationRequest {
	return &dto.CreateDonationRequest{
		DonationType:  "general",
		Amount:        decimal.RequireFromString("50.00"),
		PaymentMethod: "credit_card",
	}
}

func TestValidateDonationCreateCleanInput(t *testing.T) {
	assert.Nil(t, ValidateDonationCreate(validDonationRequest()))
}

func TestValidateDonationCreateAmountBounds(t *testing.T) {
	req := validDonationRequest()
	req.Amount = decimal.Zero
	errs := ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "amount")

	req.Amount = decimal.RequireFromString("-10.00")
	errs = ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "amount")

	req.Amount = decimal.RequireFromString("100000.01")
	errs = ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "amount")

	// the ceiling itself is fine
	req.Amount = decimal.RequireFromString("100000.00")
	assert.Nil(t, ValidateDonationCreate(req))
}

func TestValidateDonationCreateShelterRequired(t *testing.T) {
	req := validDonationRequest()
	req.DonationType = "shelter"
	errs := ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "shelter_id")
}

func TestValidateDonationCreateAnonymousInfo(t *testing.T) {
	req := validDonationRequest()
	req.IsAnonymous = true
	errs := ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "anonymous_donor_name")
	assert.Contains(t, errs, "anonymous_donor_email")

	req.AnonymousDonorName = "Guest"
	req.AnonymousDonorEmail = "guest@example.com"
	assert.Nil(t, ValidateDonationCreate(req))
}

func TestValidateDonationCreateRecurringFrequency(t *testing.T) {
	req := validDonationRequest()
	req.IsRecurring = true
	errs := ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "recurring_frequency")

	req.RecurringFrequency = "monthly"
	assert.Nil(t, ValidateDonationCreate(req))
}

func TestValidateDonationCreateCollectsAllViolations(t *testing.T) {
	req := &dto.CreateDonationRequest{
		DonationType:  "shelter",
		Amount:        decimal.Zero,
		PaymentMethod: "credit_card",
		IsAnonymous:   true,
		IsRecurring:   true,
	}
	errs := ValidateDonationCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "shelter_id")
	assert.Contains(t, errs, "anonymous_donor_name")
	assert.Contains(t, errs, "anonymous_donor_email")
	assert.Contains(t, errs, "recurring_frequency")
}

func validCampaignRequest() *dto.CreateCampaignRequest {
	return &dto.CreateCampaignRequest{
		Title:        "Winter Shelter Fund",
		Description:  "Keep the kennels warm through winter.",
		TargetAmount: decimal.RequireFromString("5000.00"),
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateCampaignCreateCleanInput(t *testing.T) {
	assert.Nil(t, ValidateCampaignCreate(validCampaignRequest()))
}

func TestValidateCampaignCreateTargetBounds(t *testing.T) {
	req := validCampaignRequest()
	req.TargetAmount = decimal.Zero
	errs := ValidateCampaignCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "target_amount")

	req.TargetAmount = decimal.RequireFromString("1000000.01")
	errs = ValidateCampaignCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "target_amount")

	req.TargetAmount = decimal.RequireFromString("1000000.00")
	assert.Nil(t, ValidateCampaignCreate(req))
}

func TestValidateCampaignCreateDateRange(t *testing.T) {
	req := validCampaignRequest()
	req.EndDate = req.StartDate
	errs := ValidateCampaignCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "end_date")

	req.EndDate = req.StartDate.Add(-24 * time.Hour)
	errs = ValidateCampaignCreate(req)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "end_date")
}

func TestValidationErrorsMessageIsDeterministic(t *testing.T) {
	errs := ValidationErrors{"b_field": "second", "a_field": "first"}
	assert.Equal(t, "validation failed: a_field: first; b_field: second", errs.Error())
}
