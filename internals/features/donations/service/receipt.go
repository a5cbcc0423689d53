package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"adoptme_backend/internals/configs"
	"adoptme_backend/internals/features/donations/model"
)

const receiptMaxAttempts = 5

// ReceiptService issues tax receipts with get-or-create semantics: one
// receipt per donation, ever, even when completion is retriggered.
type ReceiptService struct {
	DB *gorm.DB
}

func NewReceiptService(db *gorm.DB) *ReceiptService {
	return &ReceiptService{DB: db}
}

// IssueReceiptIfNeeded returns the existing receipt unchanged, or creates
// one. Receipt-number collisions regenerate; a concurrent create of the same
// donation's receipt resolves by re-reading the winner's row.
func (s *ReceiptService) IssueReceiptIfNeeded(ctx context.Context, d *model.Donation) (*model.DonationReceipt, error) {
	var existing model.DonationReceipt
	err := s.DB.WithContext(ctx).
		Where("receipt_donation_id = ?", d.DonationID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < receiptMaxAttempts; attempt++ {
		receipt := model.DonationReceipt{
			ReceiptDonationID: d.DonationID,
			ReceiptNumber:     GenerateReceiptNumber(d.CreatedAt.Year()),
			ReceiptTaxYear:    d.CreatedAt.Year(),
		}
		createErr := s.DB.WithContext(ctx).Create(&receipt).Error
		if createErr == nil {
			return &receipt, nil
		}

		var pqErr *pq.Error
		if errors.As(createErr, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "donation_id") {
				// lost the race for this donation: the other writer's receipt wins
				if err := s.DB.WithContext(ctx).
					Where("receipt_donation_id = ?", d.DonationID).
					First(&existing).Error; err != nil {
					return nil, err
				}
				return &existing, nil
			}
			// receipt_number collision: regenerate and retry
			continue
		}
		return nil, createErr
	}
	return nil, fmt.Errorf("could not generate a unique receipt number after %d attempts", receiptMaxAttempts)
}

// GenerateReceiptNumber builds <ORG-PREFIX>-<year>-<8 upper hex chars>.
func GenerateReceiptNumber(year int) string {
	prefix := configs.ReceiptOrgPrefix
	if prefix == "" {
		prefix = "ADM"
	}
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, year, suffix)
}
