package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"adoptme_backend/internals/features/donations/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Discard,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func newLifecycle(db *gorm.DB) *LifecycleService {
	return &LifecycleService{
		DB:        db,
		Processor: StubProcessor{},
		Stats:     NewStatisticsService(db),
		Receipts:  NewReceiptService(db),
	}
}

var donationCols = []string{
	"donation_id", "donation_type", "donation_shelter_id", "donation_amount",
	"donation_currency", "donation_payment_method", "donation_payment_status",
	"donation_is_tax_deductible", "donation_is_anonymous", "created_at",
}

func pendingDonationRow(id uuid.UUID, donationType string, shelterID interface{}) *sqlmock.Rows {
	return sqlmock.NewRows(donationCols).AddRow(
		id.String(), donationType, shelterID, "50.00",
		"USD", "credit_card", model.PaymentPending,
		false, false, time.Now().UTC(),
	)
}

type failingProcessor struct{}

func (failingProcessor) Charge(context.Context, *model.Donation, string, string) (string, error) {
	return "", errors.New("card declined")
}

type countingProcessor struct {
	calls int
}

func (p *countingProcessor) Charge(context.Context, *model.Donation, string, string) (string, error) {
	p.calls++
	return "txn_counted", nil
}

func TestSettleCompletesPendingDonation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	donationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(pendingDonationRow(donationID, model.TypeGeneral, nil))
	// claim pending→processing, then processing→completed
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	d, err := svc.Settle(context.Background(), donationID, "", "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, d.DonationPaymentStatus)
	assert.NotEmpty(t, d.DonationTransactionID)
	require.NotNil(t, d.CompletedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleClaimLoserNeverCharges(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	processor := &countingProcessor{}
	svc.Processor = processor
	donationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(pendingDonationRow(donationID, model.TypeGeneral, nil))
	// a concurrent settlement claimed the donation between read and write
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Settle(context.Background(), donationID, "", "tok_visa")
	assert.ErrorIs(t, err, ErrAlreadySettled)
	assert.Zero(t, processor.calls, "losing settlement must not reach the payment processor")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleUnknownOrNonPendingDonation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(sqlmock.NewRows(donationCols))

	_, err := svc.Settle(context.Background(), uuid.New(), "", "tok_visa")
	assert.ErrorIs(t, err, ErrDonationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleRequiresPaymentToken(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	donationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(pendingDonationRow(donationID, model.TypeGeneral, nil))

	_, err := svc.Settle(context.Background(), donationID, "", "")
	assert.ErrorIs(t, err, ErrMissingPaymentToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleMarksFailedOnChargeError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	svc.Processor = failingProcessor{}
	donationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(pendingDonationRow(donationID, model.TypeGeneral, nil))
	// claim pending→processing, then processing→failed after the declined charge
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Settle(context.Background(), donationID, "", "tok_visa")
	var payErr *PaymentError
	assert.ErrorAs(t, err, &payErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleRecomputesShelterCampaigns(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	donationID := uuid.New()
	shelterID := uuid.New()
	campaignID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(pendingDonationRow(donationID, model.TypeShelter, shelterID.String()))
	// claim pending→processing, then processing→completed
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// active campaigns in the donation's scope
	mock.ExpectQuery(`SELECT \* FROM "donation_campaigns" WHERE campaign_status`).
		WillReturnRows(sqlmock.NewRows([]string{
			"campaign_id", "campaign_shelter_id", "campaign_target_amount",
			"campaign_current_amount", "campaign_status",
		}).AddRow(campaignID.String(), shelterID.String(), "1000.00", "0.00", model.CampaignActive))

	// full aggregate over completed donations, then snapshot write
	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"total_amount", "total_count", "avg_amount"}).
			AddRow("150.00", 3, "50.00"))
	mock.ExpectExec(`UPDATE "donation_campaigns" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	d, err := svc.Settle(context.Background(), donationID, "", "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, d.DonationPaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAdministrativeStatusRejectsIllegalMove(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	donationID := uuid.New()

	rows := sqlmock.NewRows(donationCols).AddRow(
		donationID.String(), model.TypeGeneral, nil, "50.00",
		"USD", "credit_card", model.PaymentFailed,
		false, false, time.Now().UTC(),
	)
	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(rows)

	err := svc.SetAdministrativeStatus(context.Background(), donationID, model.PaymentRefunded)
	assert.ErrorIs(t, err, ErrAlreadySettled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAdministrativeStatusRefundsCompletedDonation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newLifecycle(db)
	donationID := uuid.New()

	rows := sqlmock.NewRows(donationCols).AddRow(
		donationID.String(), model.TypeGeneral, nil, "50.00",
		"USD", "credit_card", model.PaymentCompleted,
		false, false, time.Now().UTC(),
	)
	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_id`).
		WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "donations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.SetAdministrativeStatus(context.Background(), donationID, model.PaymentRefunded)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
