package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"adoptme_backend/internals/features/shelters/model"
)

type CreateShelterRequest struct {
	ShelterName        string         `json:"shelter_name" validate:"required,max=200"`
	ShelterDescription string         `json:"shelter_description" validate:"omitempty"`
	ShelterEmail       string         `json:"shelter_email" validate:"required,email"`
	ShelterPhone       string         `json:"shelter_phone" validate:"omitempty,max=20"`
	ShelterAddress     string         `json:"shelter_address" validate:"omitempty,max=300"`
	ShelterCity        string         `json:"shelter_city" validate:"omitempty,max=100"`
	ShelterCountry     string         `json:"shelter_country" validate:"omitempty,max=100"`
	ShelterSocialLinks datatypes.JSON `json:"shelter_social_links" validate:"omitempty"`
}

type UpdateShelterRequest struct {
	ShelterName        *string         `json:"shelter_name" validate:"omitempty,max=200"`
	ShelterDescription *string         `json:"shelter_description"`
	ShelterEmail       *string         `json:"shelter_email" validate:"omitempty,email"`
	ShelterPhone       *string         `json:"shelter_phone" validate:"omitempty,max=20"`
	ShelterAddress     *string         `json:"shelter_address" validate:"omitempty,max=300"`
	ShelterCity        *string         `json:"shelter_city" validate:"omitempty,max=100"`
	ShelterCountry     *string         `json:"shelter_country" validate:"omitempty,max=100"`
	ShelterSocialLinks *datatypes.JSON `json:"shelter_social_links"`
	ShelterIsActive    *bool           `json:"shelter_is_active"`
}

type ShelterResponse struct {
	ShelterID                 uuid.UUID      `json:"shelter_id"`
	ShelterName               string         `json:"shelter_name"`
	ShelterSlug               string         `json:"shelter_slug"`
	ShelterDescription        string         `json:"shelter_description"`
	ShelterEmail              string         `json:"shelter_email"`
	ShelterPhone              string         `json:"shelter_phone"`
	ShelterAddress            string         `json:"shelter_address"`
	ShelterCity               string         `json:"shelter_city"`
	ShelterCountry            string         `json:"shelter_country"`
	ShelterSocialLinks        datatypes.JSON `json:"shelter_social_links,omitempty"`
	ShelterVerificationStatus string         `json:"shelter_verification_status"`
	ShelterVerifiedAt         *time.Time     `json:"shelter_verified_at,omitempty"`
	ShelterIsActive           bool           `json:"shelter_is_active"`
	ShelterAcceptsDonations   bool           `json:"shelter_accepts_donations"`
	CreatedAt                 time.Time      `json:"created_at"`
}

// ShelterSummary is the reduced shape embedded in donation/pet payloads.
type ShelterSummary struct {
	ShelterID   uuid.UUID `json:"shelter_id"`
	ShelterName string    `json:"shelter_name"`
	ShelterSlug string    `json:"shelter_slug"`
	ShelterCity string    `json:"shelter_city"`
	IsVerified  bool      `json:"is_verified"`
}

func ToShelterResponse(s *model.ShelterModel) ShelterResponse {
	return ShelterResponse{
		ShelterID:                 s.ShelterID,
		ShelterName:               s.ShelterName,
		ShelterSlug:               s.ShelterSlug,
		ShelterDescription:        s.ShelterDescription,
		ShelterEmail:              s.ShelterEmail,
		ShelterPhone:              s.ShelterPhone,
		ShelterAddress:            s.ShelterAddress,
		ShelterCity:               s.ShelterCity,
		ShelterCountry:            s.ShelterCountry,
		ShelterSocialLinks:        s.ShelterSocialLinks,
		ShelterVerificationStatus: s.ShelterVerificationStatus,
		ShelterVerifiedAt:         s.ShelterVerifiedAt,
		ShelterIsActive:           s.ShelterIsActive,
		ShelterAcceptsDonations:   s.ShelterAcceptsDonations,
		CreatedAt:                 s.CreatedAt,
	}
}

func ToShelterSummary(s *model.ShelterModel) ShelterSummary {
	return ShelterSummary{
		ShelterID:   s.ShelterID,
		ShelterName: s.ShelterName,
		ShelterSlug: s.ShelterSlug,
		ShelterCity: s.ShelterCity,
		IsVerified:  s.IsVerified(),
	}
}
