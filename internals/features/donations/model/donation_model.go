package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	userModel "adoptme_backend/internals/features/users/model"
)

// Donation types
const (
	TypeShelter   = "shelter"
	TypePlatform  = "platform"
	TypeEmergency = "emergency"
	TypeGeneral   = "general"
)

// Payment statuses
const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
	PaymentCancelled  = "cancelled"
)

// Payment methods
const (
	MethodCreditCard    = "credit_card"
	MethodDebitCard     = "debit_card"
	MethodPaypal        = "paypal"
	MethodBankTransfer  = "bank_transfer"
	MethodMobilePayment = "mobile_payment"
	MethodOther         = "other"
)

// Recurring frequencies
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// paymentStatusTransitions is the authoritative table. The donor-facing path
// only drives pending→completed and pending/processing→failed; refunded and
// cancelled are administrative and still have to pass this check.
var paymentStatusTransitions = map[string][]string{
	PaymentPending:    {PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentProcessing: {PaymentCompleted, PaymentFailed},
	PaymentCompleted:  {PaymentRefunded},
	PaymentFailed:     {},
	PaymentRefunded:   {},
	PaymentCancelled:  {},
}

// CanTransitionPayment reports whether from→to is a legal payment-status move.
func CanTransitionPayment(from, to string) bool {
	for _, allowed := range paymentStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Donation maps the donations table
type Donation struct {
	DonationID uuid.UUID `gorm:"column:donation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_id"`

	// nil for anonymous/guest donations
	DonationDonorID *uuid.UUID `gorm:"column:donation_donor_id;type:uuid;index" json:"donation_donor_id,omitempty"`

	DonationAnonymousName  string `gorm:"column:donation_anonymous_name;size:100" json:"donation_anonymous_name,omitempty"`
	DonationAnonymousEmail string `gorm:"column:donation_anonymous_email;size:255" json:"donation_anonymous_email,omitempty"`

	DonationType string `gorm:"column:donation_type;type:varchar(20);not null;index:idx_donations_type_created" json:"donation_type"`

	// required when donation_type = shelter
	DonationShelterID *uuid.UUID `gorm:"column:donation_shelter_id;type:uuid;index" json:"donation_shelter_id,omitempty"`

	DonationAmount   decimal.Decimal `gorm:"column:donation_amount;type:numeric(10,2);not null;check:donation_amount > 0" json:"donation_amount"`
	DonationCurrency string          `gorm:"column:donation_currency;size:3;not null;default:'USD'" json:"donation_currency"`

	DonationPaymentMethod string `gorm:"column:donation_payment_method;type:varchar(20);not null" json:"donation_payment_method"`
	DonationPaymentStatus string `gorm:"column:donation_payment_status;type:varchar(20);not null;default:'pending';index" json:"donation_payment_status"`
	DonationTransactionID string `gorm:"column:donation_transaction_id;size:100" json:"donation_transaction_id,omitempty"`

	DonationMessage    string `gorm:"column:donation_message;type:text" json:"donation_message,omitempty"`
	DonationDedication string `gorm:"column:donation_dedication;size:200" json:"donation_dedication,omitempty"`

	DonationIsAnonymous        bool   `gorm:"column:donation_is_anonymous;not null;default:false" json:"donation_is_anonymous"`
	DonationIsRecurring        bool   `gorm:"column:donation_is_recurring;not null;default:false" json:"donation_is_recurring"`
	DonationRecurringFrequency string `gorm:"column:donation_recurring_frequency;type:varchar(20)" json:"donation_recurring_frequency,omitempty"`

	DonationIsTaxDeductible bool   `gorm:"column:donation_is_tax_deductible;not null;default:true" json:"donation_is_tax_deductible"`
	DonationReceiptSent     bool   `gorm:"column:donation_receipt_sent;not null;default:false" json:"donation_receipt_sent"`
	DonationReceiptEmail    string `gorm:"column:donation_receipt_email;size:255" json:"donation_receipt_email,omitempty"`

	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index:idx_donations_type_created,sort:desc" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// IsCompleted reports whether payment settled successfully.
func (d *Donation) IsCompleted() bool {
	return d.DonationPaymentStatus == PaymentCompleted
}

// IsSuccessful covers completed plus in-flight processing.
func (d *Donation) IsSuccessful() bool {
	return d.DonationPaymentStatus == PaymentCompleted || d.DonationPaymentStatus == PaymentProcessing
}

// DonorDisplayName resolves the public name for this donation. Anonymous
// donations never expose the donor even when a donor record exists.
func (d *Donation) DonorDisplayName(donor *userModel.UserModel) string {
	if d.DonationIsAnonymous {
		return "Anonymous"
	}
	if donor != nil {
		return donor.DisplayName()
	}
	if d.DonationAnonymousName != "" {
		return d.DonationAnonymousName
	}
	return "Anonymous"
}

// DonorEmail resolves the receipt email in priority order:
// explicit receipt email, then the authenticated donor, then the
// anonymous-supplied email. Empty when nothing is known.
func (d *Donation) DonorEmail(donor *userModel.UserModel) string {
	if d.DonationReceiptEmail != "" {
		return d.DonationReceiptEmail
	}
	if donor != nil {
		return donor.Email
	}
	if d.DonationAnonymousEmail != "" {
		return d.DonationAnonymousEmail
	}
	return ""
}
