package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"adoptme_backend/internals/features/donations/model"
	shelterDTO "adoptme_backend/internals/features/shelters/dto"
	shelterModel "adoptme_backend/internals/features/shelters/model"
	userDTO "adoptme_backend/internals/features/users/dto"
	userModel "adoptme_backend/internals/features/users/model"
)

type CreateDonationRequest struct {
	DonationType  string     `json:"donation_type" validate:"required,oneof=shelter platform emergency general"`
	ShelterID     *uuid.UUID `json:"shelter_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string     `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod string     `json:"payment_method" validate:"required,oneof=credit_card debit_card paypal bank_transfer mobile_payment other"`

	AnonymousDonorName  string `json:"anonymous_donor_name" validate:"omitempty,max=100"`
	AnonymousDonorEmail string `json:"anonymous_donor_email" validate:"omitempty,email"`

	Message    string `json:"message"`
	Dedication string `json:"dedication" validate:"omitempty,max=200"`

	IsAnonymous        bool   `json:"is_anonymous"`
	IsRecurring        bool   `json:"is_recurring"`
	RecurringFrequency string `json:"recurring_frequency" validate:"omitempty,oneof=monthly quarterly yearly"`

	ReceiptEmail string `json:"receipt_email" validate:"omitempty,email"`
}

type SettleDonationRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=credit_card debit_card paypal bank_transfer mobile_payment other"`
	PaymentToken  string `json:"payment_token"`
}

type DonationResponse struct {
	DonationID uuid.UUID `json:"donation_id"`

	Donor            *userDTO.PublicUserResponse `json:"donor,omitempty"`
	DonorDisplayName string                      `json:"donor_display_name"`

	DonationType string                     `json:"donation_type"`
	Shelter      *shelterDTO.ShelterSummary `json:"shelter,omitempty"`

	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id,omitempty"`

	Message    string `json:"message,omitempty"`
	Dedication string `json:"dedication,omitempty"`

	IsAnonymous        bool   `json:"is_anonymous"`
	IsRecurring        bool   `json:"is_recurring"`
	RecurringFrequency string `json:"recurring_frequency,omitempty"`

	IsTaxDeductible bool `json:"is_tax_deductible"`
	ReceiptSent     bool `json:"receipt_sent"`

	IsCompleted  bool `json:"is_completed"`
	IsSuccessful bool `json:"is_successful"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ToDonationResponse shapes a donation for output. donor/shelter may be nil
// when not preloaded; for anonymous donations the donor is always hidden.
func ToDonationResponse(d *model.Donation, donor *userModel.UserModel, shelter *shelterModel.ShelterModel) DonationResponse {
	resp := DonationResponse{
		DonationID:         d.DonationID,
		DonorDisplayName:   d.DonorDisplayName(donor),
		DonationType:       d.DonationType,
		Amount:             d.DonationAmount,
		Currency:           d.DonationCurrency,
		PaymentMethod:      d.DonationPaymentMethod,
		PaymentStatus:      d.DonationPaymentStatus,
		TransactionID:      d.DonationTransactionID,
		Message:            d.DonationMessage,
		Dedication:         d.DonationDedication,
		IsAnonymous:        d.DonationIsAnonymous,
		IsRecurring:        d.DonationIsRecurring,
		RecurringFrequency: d.DonationRecurringFrequency,
		IsTaxDeductible:    d.DonationIsTaxDeductible,
		ReceiptSent:        d.DonationReceiptSent,
		IsCompleted:        d.IsCompleted(),
		IsSuccessful:       d.IsSuccessful(),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		CompletedAt:        d.CompletedAt,
	}
	if donor != nil && !d.DonationIsAnonymous {
		pub := userDTO.ToPublicUserResponse(donor)
		resp.Donor = &pub
	}
	if shelter != nil {
		sum := shelterDTO.ToShelterSummary(shelter)
		resp.Shelter = &sum
	}
	return resp
}

type ReceiptResponse struct {
	ReceiptID       uuid.UUID  `json:"receipt_id"`
	DonationID      uuid.UUID  `json:"donation_id"`
	ReceiptNumber   string     `json:"receipt_number"`
	TaxYear         int        `json:"tax_year"`
	EmailSent       bool       `json:"email_sent"`
	EmailSentAt     *time.Time `json:"email_sent_at,omitempty"`
	IssuedAt        time.Time  `json:"issued_at"`
}

func ToReceiptResponse(r *model.DonationReceipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:     r.ReceiptID,
		DonationID:    r.ReceiptDonationID,
		ReceiptNumber: r.ReceiptNumber,
		TaxYear:       r.ReceiptTaxYear,
		EmailSent:     r.ReceiptEmailSent,
		EmailSentAt:   r.ReceiptEmailSentAt,
		IssuedAt:      r.IssuedAt,
	}
}
