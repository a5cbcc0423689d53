package dto

import (
	"time"

	"github.com/google/uuid"

	"adoptme_backend/internals/features/contact/model"
)

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"omitempty,oneof=general adoption missing shelter donation volunteer other"`
	Message string `json:"message" validate:"required,min=10"`
}

type UpdateContactMessageRequest struct {
	Status     string  `json:"status" validate:"required,oneof=read replied"`
	AdminNotes *string `json:"admin_notes"`
}

type ContactMessageResponse struct {
	MessageID  uuid.UUID `json:"message_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"admin_notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToContactMessageResponse(m *model.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		MessageID:  m.MessageID,
		Name:       m.MessageName,
		Email:      m.MessageEmail,
		Phone:      m.MessagePhone,
		Subject:    m.MessageSubject,
		Message:    m.MessageBody,
		Status:     m.MessageStatus,
		AdminNotes: m.MessageAdminNotes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type UpsertContactInfoRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,max=100"`
	Tagline          string `json:"tagline" validate:"omitempty,max=200"`

	PhonePrimary   string `json:"phone_primary" validate:"required,max=20"`
	PhoneSecondary string `json:"phone_secondary" validate:"omitempty,max=20"`
	EmailPrimary   string `json:"email_primary" validate:"required,email"`
	EmailSecondary string `json:"email_secondary" validate:"omitempty,email"`

	AddressLine1 string `json:"address_line1" validate:"required,max=100"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=100"`
	City         string `json:"city" validate:"required,max=50"`
	Region       string `json:"region" validate:"omitempty,max=50"`
	PostalCode   string `json:"postal_code" validate:"omitempty,max=10"`

	OfficeHours    string `json:"office_hours"`
	EmergencyPhone string `json:"emergency_phone" validate:"omitempty,max=20"`

	Activate bool `json:"activate"`
}

type ContactInfoResponse struct {
	InfoID           uuid.UUID `json:"info_id"`
	OrganizationName string    `json:"organization_name"`
	Tagline          string    `json:"tagline,omitempty"`

	PhonePrimary   string `json:"phone_primary"`
	PhoneSecondary string `json:"phone_secondary,omitempty"`
	EmailPrimary   string `json:"email_primary"`
	EmailSecondary string `json:"email_secondary,omitempty"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`

	OfficeHours    string `json:"office_hours,omitempty"`
	EmergencyPhone string `json:"emergency_phone,omitempty"`

	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToContactInfoResponse(info *model.ContactInfo) ContactInfoResponse {
	return ContactInfoResponse{
		InfoID:           info.InfoID,
		OrganizationName: info.InfoOrganizationName,
		Tagline:          info.InfoTagline,
		PhonePrimary:     info.InfoPhonePrimary,
		PhoneSecondary:   info.InfoPhoneSecondary,
		EmailPrimary:     info.InfoEmailPrimary,
		EmailSecondary:   info.InfoEmailSecondary,
		AddressLine1:     info.InfoAddressLine1,
		AddressLine2:     info.InfoAddressLine2,
		City:             info.InfoCity,
		Region:           info.InfoRegion,
		PostalCode:       info.InfoPostalCode,
		OfficeHours:      info.InfoOfficeHours,
		EmergencyPhone:   info.InfoEmergencyPhone,
		IsActive:         info.InfoIsActive,
		UpdatedAt:        info.UpdatedAt,
	}
}
