package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserModel maps the users table
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName    string    `gorm:"size:50;unique;not null" json:"user_name"`
	Email       string    `gorm:"size:255;unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	Location    string    `gorm:"size:200" json:"location"`
	Bio         string    `gorm:"size:500" json:"bio"`

	Role      string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsShelter bool   `gorm:"not null;default:false" json:"is_shelter"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	IsEmailVerified bool `gorm:"not null;default:false" json:"is_email_verified"`
	IsPhoneVerified bool `gorm:"not null;default:false" json:"is_phone_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// DisplayName is the public-facing name, used on donation listings.
func (u *UserModel) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.UserName
}
