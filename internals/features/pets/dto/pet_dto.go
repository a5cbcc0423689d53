package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"adoptme_backend/internals/features/pets/model"
)

type CreatePetRequest struct {
	PetShelterID   uuid.UUID       `json:"pet_shelter_id" validate:"required"`
	PetName        string          `json:"pet_name" validate:"required,max=100"`
	PetSpecies     string          `json:"pet_species" validate:"required,oneof=dog cat bird rabbit other"`
	PetBreed       string          `json:"pet_breed" validate:"omitempty,max=100"`
	PetAge         int             `json:"pet_age_months" validate:"gte=0"`
	PetGender      string          `json:"pet_gender" validate:"omitempty,oneof=male female unknown"`
	PetSize        string          `json:"pet_size" validate:"omitempty,oneof=small medium large extra_large"`
	PetColor       string          `json:"pet_color" validate:"omitempty,max=50"`
	PetDescription string          `json:"pet_description"`
	PetAdoptionFee decimal.Decimal `json:"pet_adoption_fee"`
	PetAttributes  datatypes.JSON  `json:"pet_attributes" validate:"omitempty"`
}

type UpdatePetRequest struct {
	PetName        *string          `json:"pet_name" validate:"omitempty,max=100"`
	PetBreed       *string          `json:"pet_breed" validate:"omitempty,max=100"`
	PetAge         *int             `json:"pet_age_months" validate:"omitempty,gte=0"`
	PetGender      *string          `json:"pet_gender" validate:"omitempty,oneof=male female unknown"`
	PetSize        *string          `json:"pet_size" validate:"omitempty,oneof=small medium large extra_large"`
	PetColor       *string          `json:"pet_color" validate:"omitempty,max=50"`
	PetDescription *string          `json:"pet_description"`
	PetAdoptionFee *decimal.Decimal `json:"pet_adoption_fee"`
	PetAttributes  *datatypes.JSON  `json:"pet_attributes"`
	PetIsActive    *bool            `json:"pet_is_active"`
}

type UpdatePetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available pending adopted fostered missing"`
}

type PetResponse struct {
	PetID          uuid.UUID       `json:"pet_id"`
	PetShelterID   uuid.UUID       `json:"pet_shelter_id"`
	PetName        string          `json:"pet_name"`
	PetSpecies     string          `json:"pet_species"`
	PetBreed       string          `json:"pet_breed"`
	PetAge         int             `json:"pet_age_months"`
	PetGender      string          `json:"pet_gender"`
	PetSize        string          `json:"pet_size"`
	PetColor       string          `json:"pet_color"`
	PetDescription string          `json:"pet_description"`
	PetAdoptionFee decimal.Decimal `json:"pet_adoption_fee"`
	PetAttributes  datatypes.JSON  `json:"pet_attributes,omitempty"`
	PetStatus      string          `json:"pet_status"`
	IsAvailable    bool            `json:"is_available"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToPetResponse(p *model.PetModel) PetResponse {
	return PetResponse{
		PetID:          p.PetID,
		PetShelterID:   p.PetShelterID,
		PetName:        p.PetName,
		PetSpecies:     p.PetSpecies,
		PetBreed:       p.PetBreed,
		PetAge:         p.PetAge,
		PetGender:      p.PetGender,
		PetSize:        p.PetSize,
		PetColor:       p.PetColor,
		PetDescription: p.PetDescription,
		PetAdoptionFee: p.PetAdoptionFee,
		PetAttributes:  p.PetAttributes,
		PetStatus:      p.PetStatus,
		IsAvailable:    p.IsAvailableForAdoption(),
		CreatedAt:      p.CreatedAt,
	}
}
