package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adoptme_backend/internals/features/donations/model"
)

var receiptCols = []string{
	"receipt_id", "receipt_donation_id", "receipt_number",
	"receipt_tax_year", "receipt_email_sent", "issued_at",
}

func completedDonation(id uuid.UUID) *model.Donation {
	now := time.Now().UTC()
	return &model.Donation{
		DonationID:            id,
		DonationPaymentStatus: model.PaymentCompleted,
		CreatedAt:             time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		CompletedAt:           &now,
	}
}

func TestGenerateReceiptNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ADM-2026-[0-9A-F]{8}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, GenerateReceiptNumber(2026))
	}
}

func TestGenerateReceiptNumberIsRandomized(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := GenerateReceiptNumber(2026)
		assert.False(t, seen[n], "receipt numbers should not repeat: %s", n)
		seen[n] = true
	}
}

func TestIssueReceiptReturnsExistingUnchanged(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReceiptService(db)
	donationID := uuid.New()
	receiptID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donation_receipts" WHERE receipt_donation_id`).
		WillReturnRows(sqlmock.NewRows(receiptCols).AddRow(
			receiptID.String(), donationID.String(), "ADM-2026-AB12CD34",
			2026, true, time.Now().UTC(),
		))

	receipt, err := svc.IssueReceiptIfNeeded(context.Background(), completedDonation(donationID))
	require.NoError(t, err)
	assert.Equal(t, receiptID, receipt.ReceiptID)
	assert.Equal(t, "ADM-2026-AB12CD34", receipt.ReceiptNumber)
	assert.True(t, receipt.ReceiptEmailSent, "existing receipt comes back untouched")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueReceiptCreatesWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReceiptService(db)
	donationID := uuid.New()
	receiptID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donation_receipts" WHERE receipt_donation_id`).
		WillReturnRows(sqlmock.NewRows(receiptCols))
	mock.ExpectQuery(`INSERT INTO "donation_receipts"`).
		WillReturnRows(sqlmock.NewRows([]string{"receipt_id"}).AddRow(receiptID.String()))

	receipt, err := svc.IssueReceiptIfNeeded(context.Background(), completedDonation(donationID))
	require.NoError(t, err)
	assert.Equal(t, donationID, receipt.ReceiptDonationID)
	assert.Equal(t, 2026, receipt.ReceiptTaxYear, "tax year comes from the donation's creation year")
	assert.Regexp(t, `^ADM-2026-[0-9A-F]{8}$`, receipt.ReceiptNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueReceiptResolvesConcurrentCreate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReceiptService(db)
	donationID := uuid.New()
	winnerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donation_receipts" WHERE receipt_donation_id`).
		WillReturnRows(sqlmock.NewRows(receiptCols))
	mock.ExpectQuery(`INSERT INTO "donation_receipts"`).
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "donation_receipts_receipt_donation_id_key",
		})
	// the concurrent writer's receipt wins
	mock.ExpectQuery(`SELECT \* FROM "donation_receipts" WHERE receipt_donation_id`).
		WillReturnRows(sqlmock.NewRows(receiptCols).AddRow(
			winnerID.String(), donationID.String(), "ADM-2026-FF00AA11",
			2026, false, time.Now().UTC(),
		))

	receipt, err := svc.IssueReceiptIfNeeded(context.Background(), completedDonation(donationID))
	require.NoError(t, err)
	assert.Equal(t, winnerID, receipt.ReceiptID)
	assert.Equal(t, "ADM-2026-FF00AA11", receipt.ReceiptNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueReceiptRegeneratesOnNumberCollision(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReceiptService(db)
	donationID := uuid.New()
	receiptID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donation_receipts" WHERE receipt_donation_id`).
		WillReturnRows(sqlmock.NewRows(receiptCols))
	mock.ExpectQuery(`INSERT INTO "donation_receipts"`).
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "donation_receipts_receipt_number_key",
		})
	mock.ExpectQuery(`INSERT INTO "donation_receipts"`).
		WillReturnRows(sqlmock.NewRows([]string{"receipt_id"}).AddRow(receiptID.String()))

	receipt, err := svc.IssueReceiptIfNeeded(context.Background(), completedDonation(donationID))
	require.NoError(t, err)
	assert.Equal(t, donationID, receipt.ReceiptDonationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueReceiptGivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReceiptService(db)
	donationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donation_receipts" WHERE receipt_donation_id`).
		WillReturnRows(sqlmock.NewRows(receiptCols))
	for i := 0; i < receiptMaxAttempts; i++ {
		mock.ExpectQuery(`INSERT INTO "donation_receipts"`).
			WillReturnError(&pq.Error{
				Code:       "23505",
				Constraint: "donation_receipts_receipt_number_key",
			})
	}

	_, err := svc.IssueReceiptIfNeeded(context.Background(), completedDonation(donationID))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
