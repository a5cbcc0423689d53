package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"adoptme_backend/internals/features/donations/model"
	shelterDTO "adoptme_backend/internals/features/shelters/dto"
	shelterModel "adoptme_backend/internals/features/shelters/model"
)

type CreateCampaignRequest struct {
	Title            string          `json:"title" validate:"required,max=200"`
	Description      string          `json:"description" validate:"required"`
	ShortDescription string          `json:"short_description" validate:"omitempty,max=300"`
	ShelterID        *uuid.UUID      `json:"shelter_id"`
	TargetAmount     decimal.Decimal `json:"target_amount"`
	StartDate        time.Time       `json:"start_date" validate:"required"`
	EndDate          time.Time       `json:"end_date" validate:"required"`
	AllowAnonymous   *bool           `json:"allow_anonymous_donations"`
}

type UpdateCampaignRequest struct {
	Title            *string          `json:"title" validate:"omitempty,max=200"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description" validate:"omitempty,max=300"`
	TargetAmount     *decimal.Decimal `json:"target_amount"`
	StartDate        *time.Time       `json:"start_date"`
	EndDate          *time.Time       `json:"end_date"`
	AllowAnonymous   *bool            `json:"allow_anonymous_donations"`
	IsFeatured       *bool            `json:"is_featured"`
}

type UpdateCampaignStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active paused completed cancelled"`
}

type CampaignResponse struct {
	CampaignID       uuid.UUID                  `json:"campaign_id"`
	Title            string                     `json:"title"`
	Description      string                     `json:"description"`
	ShortDescription string                     `json:"short_description"`
	Shelter          *shelterDTO.ShelterSummary `json:"shelter,omitempty"`

	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	TotalDonors     int             `json:"total_donors"`
	AverageDonation decimal.Decimal `json:"average_donation"`

	ProgressPercentage float64 `json:"progress_percentage"`
	DaysRemaining      int     `json:"days_remaining"`
	IsActive           bool    `json:"is_active"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Status         string `json:"status"`
	IsFeatured     bool   `json:"is_featured"`
	AllowAnonymous bool   `json:"allow_anonymous_donations"`

	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCampaignResponse computes the read-time figures against now.
func ToCampaignResponse(cpg *model.DonationCampaign, shelter *shelterModel.ShelterModel, now time.Time) CampaignResponse {
	resp := CampaignResponse{
		CampaignID:         cpg.CampaignID,
		Title:              cpg.CampaignTitle,
		Description:        cpg.CampaignDescription,
		ShortDescription:   cpg.CampaignShortDescription,
		TargetAmount:       cpg.CampaignTargetAmount,
		CurrentAmount:      cpg.CampaignCurrentAmount,
		TotalDonors:        cpg.CampaignTotalDonors,
		AverageDonation:    cpg.CampaignAverageDonation,
		ProgressPercentage: cpg.ProgressPercentage(),
		DaysRemaining:      cpg.DaysRemaining(now),
		IsActive:           cpg.IsActive(now),
		StartDate:          cpg.CampaignStartDate,
		EndDate:            cpg.CampaignEndDate,
		Status:             cpg.CampaignStatus,
		IsFeatured:         cpg.CampaignIsFeatured,
		AllowAnonymous:     cpg.CampaignAllowAnonymous,
		CreatedBy:          cpg.CampaignCreatedBy,
		CreatedAt:          cpg.CreatedAt,
		UpdatedAt:          cpg.UpdatedAt,
	}
	if shelter != nil {
		sum := shelterDTO.ToShelterSummary(shelter)
		resp.Shelter = &sum
	}
	return resp
}
