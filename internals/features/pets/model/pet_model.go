package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Pet listing statuses
const (
	PetAvailable = "available"
	PetPending   = "pending"
	PetAdopted   = "adopted"
	PetFostered  = "fostered"
	PetMissing   = "missing"
)

// An adoption can fall through, so pending goes back to available.
// adopted is terminal.
var petStatusTransitions = map[string][]string{
	PetAvailable: {PetPending, PetFostered, PetMissing},
	PetPending:   {PetAvailable, PetAdopted},
	PetFostered:  {PetAvailable},
	PetMissing:   {PetAvailable},
	PetAdopted:   {},
}

// CanTransitionStatus reports whether from→to is a legal listing move.
func CanTransitionStatus(from, to string) bool {
	for _, allowed := range petStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// PetModel maps the pets table
type PetModel struct {
	PetID uuid.UUID `gorm:"column:pet_id;type:uuid;default:gen_random_uuid();primaryKey" json:"pet_id"`

	PetShelterID uuid.UUID `gorm:"column:pet_shelter_id;type:uuid;not null;index" json:"pet_shelter_id"`

	PetName    string `gorm:"column:pet_name;size:100;not null" json:"pet_name"`
	PetSpecies string `gorm:"column:pet_species;type:varchar(20);not null;default:'dog'" json:"pet_species"`
	PetBreed   string `gorm:"column:pet_breed;size:100" json:"pet_breed"`
	PetAge     int    `gorm:"column:pet_age_months;not null;check:pet_age_months >= 0" json:"pet_age_months"`
	PetGender  string `gorm:"column:pet_gender;type:varchar(10);default:'unknown'" json:"pet_gender"`
	PetSize    string `gorm:"column:pet_size;type:varchar(15);default:'medium'" json:"pet_size"`
	PetColor   string `gorm:"column:pet_color;size:50" json:"pet_color"`

	PetDescription string `gorm:"column:pet_description;type:text" json:"pet_description"`

	PetAdoptionFee decimal.Decimal `gorm:"column:pet_adoption_fee;type:numeric(10,2);not null;default:0" json:"pet_adoption_fee"`

	// vaccinated / neutered / health notes, free-form
	PetAttributes datatypes.JSON `gorm:"column:pet_attributes;type:jsonb" json:"pet_attributes,omitempty"`

	PetStatus   string `gorm:"column:pet_status;type:varchar(20);not null;default:'available';index" json:"pet_status"`
	PetIsActive bool   `gorm:"column:pet_is_active;not null;default:true" json:"pet_is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PetModel) TableName() string {
	return "pets"
}

// IsAvailableForAdoption reports whether the pet can be adopted right now.
func (p *PetModel) IsAvailableForAdoption() bool {
	return p.PetStatus == PetAvailable && p.PetIsActive
}
