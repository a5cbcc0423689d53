package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact message statuses
const (
	MessageNew     = "new"
	MessageRead    = "read"
	MessageReplied = "replied"
)

// Contact message subjects
const (
	SubjectGeneral   = "general"
	SubjectAdoption  = "adoption"
	SubjectMissing   = "missing"
	SubjectShelter   = "shelter"
	SubjectDonation  = "donation"
	SubjectVolunteer = "volunteer"
	SubjectOther     = "other"
)

var messageStatusTransitions = map[string][]string{
	MessageNew:     {MessageRead, MessageReplied},
	MessageRead:    {MessageReplied},
	MessageReplied: {},
}

// CanTransitionMessage reports whether from→to is a legal message-status move.
func CanTransitionMessage(from, to string) bool {
	for _, allowed := range messageStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ContactMessage maps the contact_messages table (public contact form).
type ContactMessage struct {
	MessageID uuid.UUID `gorm:"column:message_id;type:uuid;default:gen_random_uuid();primaryKey" json:"message_id"`

	MessageName  string `gorm:"column:message_name;size:100;not null" json:"message_name"`
	MessageEmail string `gorm:"column:message_email;size:255;not null" json:"message_email"`
	MessagePhone string `gorm:"column:message_phone;size:20" json:"message_phone,omitempty"`

	MessageSubject string `gorm:"column:message_subject;type:varchar(20);not null;default:'general'" json:"message_subject"`
	MessageBody    string `gorm:"column:message_body;type:text;not null" json:"message_body"`

	MessageStatus     string `gorm:"column:message_status;type:varchar(20);not null;default:'new';index" json:"message_status"`
	MessageAdminNotes string `gorm:"column:message_admin_notes;type:text" json:"message_admin_notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// ContactInfo maps the contact_info table. At most one row is active; the
// active row backs the public contact page.
type ContactInfo struct {
	InfoID uuid.UUID `gorm:"column:info_id;type:uuid;default:gen_random_uuid();primaryKey" json:"info_id"`

	InfoOrganizationName string `gorm:"column:info_organization_name;size:100;not null" json:"info_organization_name"`
	InfoTagline          string `gorm:"column:info_tagline;size:200" json:"info_tagline,omitempty"`

	InfoPhonePrimary   string `gorm:"column:info_phone_primary;size:20;not null" json:"info_phone_primary"`
	InfoPhoneSecondary string `gorm:"column:info_phone_secondary;size:20" json:"info_phone_secondary,omitempty"`
	InfoEmailPrimary   string `gorm:"column:info_email_primary;size:255;not null" json:"info_email_primary"`
	InfoEmailSecondary string `gorm:"column:info_email_secondary;size:255" json:"info_email_secondary,omitempty"`

	InfoAddressLine1 string `gorm:"column:info_address_line1;size:100;not null" json:"info_address_line1"`
	InfoAddressLine2 string `gorm:"column:info_address_line2;size:100" json:"info_address_line2,omitempty"`
	InfoCity         string `gorm:"column:info_city;size:50;not null" json:"info_city"`
	InfoRegion       string `gorm:"column:info_region;size:50" json:"info_region,omitempty"`
	InfoPostalCode   string `gorm:"column:info_postal_code;size:10" json:"info_postal_code,omitempty"`

	InfoOfficeHours    string `gorm:"column:info_office_hours;type:text" json:"info_office_hours,omitempty"`
	InfoEmergencyPhone string `gorm:"column:info_emergency_phone;size:20" json:"info_emergency_phone,omitempty"`

	InfoIsActive bool `gorm:"column:info_is_active;not null;default:false;index" json:"info_is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}
