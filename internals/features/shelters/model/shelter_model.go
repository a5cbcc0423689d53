package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Verification statuses
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Verification moves through an explicit table; re-verifying a rejected
// shelter goes back through pending via an admin reset.
var verificationTransitions = map[string][]string{
	VerificationPending:  {VerificationVerified, VerificationRejected},
	VerificationRejected: {VerificationPending},
	VerificationVerified: {},
}

// CanTransitionVerification reports whether from→to is a legal verification move.
func CanTransitionVerification(from, to string) bool {
	for _, allowed := range verificationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ShelterModel maps the shelters table
type ShelterModel struct {
	ShelterID uuid.UUID `gorm:"column:shelter_id;type:uuid;default:gen_random_uuid();primaryKey" json:"shelter_id"`

	ShelterOwnerID uuid.UUID `gorm:"column:shelter_owner_id;type:uuid;not null" json:"shelter_owner_id"`

	ShelterName        string `gorm:"column:shelter_name;size:200;not null" json:"shelter_name"`
	ShelterSlug        string `gorm:"column:shelter_slug;size:220;unique;not null" json:"shelter_slug"`
	ShelterDescription string `gorm:"column:shelter_description;type:text" json:"shelter_description"`

	ShelterEmail   string `gorm:"column:shelter_email;size:255;not null" json:"shelter_email"`
	ShelterPhone   string `gorm:"column:shelter_phone;size:20" json:"shelter_phone"`
	ShelterAddress string `gorm:"column:shelter_address;size:300" json:"shelter_address"`
	ShelterCity    string `gorm:"column:shelter_city;size:100" json:"shelter_city"`
	ShelterCountry string `gorm:"column:shelter_country;size:100;default:'USA'" json:"shelter_country"`

	// website / facebook / instagram links, free-form
	ShelterSocialLinks datatypes.JSON `gorm:"column:shelter_social_links;type:jsonb" json:"shelter_social_links,omitempty"`

	ShelterVerificationStatus string     `gorm:"column:shelter_verification_status;type:varchar(20);default:'pending';index" json:"shelter_verification_status"`
	ShelterVerifiedAt         *time.Time `gorm:"column:shelter_verified_at" json:"shelter_verified_at,omitempty"`
	ShelterVerifiedBy         *uuid.UUID `gorm:"column:shelter_verified_by;type:uuid" json:"shelter_verified_by,omitempty"`

	ShelterIsActive         bool `gorm:"column:shelter_is_active;not null;default:true" json:"shelter_is_active"`
	ShelterAcceptsDonations bool `gorm:"column:shelter_accepts_donations;not null;default:true" json:"shelter_accepts_donations"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ShelterModel) TableName() string {
	return "shelters"
}

// IsVerified reports whether the shelter passed verification.
func (s *ShelterModel) IsVerified() bool {
	return s.ShelterVerificationStatus == VerificationVerified
}
