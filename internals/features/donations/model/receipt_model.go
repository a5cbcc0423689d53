package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationReceipt maps the donation_receipts table. One receipt per
// completed, tax-deductible donation.
type DonationReceipt struct {
	ReceiptID uuid.UUID `gorm:"column:receipt_id;type:uuid;default:gen_random_uuid();primaryKey" json:"receipt_id"`

	ReceiptDonationID uuid.UUID `gorm:"column:receipt_donation_id;type:uuid;not null;unique" json:"receipt_donation_id"`

	ReceiptNumber string `gorm:"column:receipt_number;size:50;not null;unique" json:"receipt_number"`
	ReceiptTaxYear int   `gorm:"column:receipt_tax_year;not null" json:"receipt_tax_year"`

	ReceiptEmailSent   bool       `gorm:"column:receipt_email_sent;not null;default:false" json:"receipt_email_sent"`
	ReceiptEmailSentAt *time.Time `gorm:"column:receipt_email_sent_at" json:"receipt_email_sent_at,omitempty"`

	IssuedAt time.Time `gorm:"column:issued_at;autoCreateTime" json:"issued_at"`
}

func (DonationReceipt) TableName() string {
	return "donation_receipts"
}
