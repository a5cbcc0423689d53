package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
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
		Logger:               logger.Discard,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

var donationCols = []string{
	"donation_id", "donation_type", "donation_shelter_id", "donation_amount",
	"donation_currency", "donation_payment_method", "donation_payment_status",
	"donation_is_tax_deductible", "donation_is_anonymous", "created_at",
}

func completedDonationRow(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows(donationCols).AddRow(
		id.String(), model.TypeGeneral, nil, "25.00",
		"USD", "credit_card", model.PaymentCompleted,
		false, false, time.Now().UTC(),
	)
}

// An authenticated non-admin must never see unsettled donations in the
// general list, not even their own: completed gates the whole predicate,
// ownership only widens it to the caller's anonymous completed donations.
func TestGetDonationsAuthenticatedListGatesOnCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewDonationController(db)
	userID := uuid.New()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("role", "user")
		return c.Next()
	})
	app.Get("/donations", ctrl.GetDonations)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "donations" WHERE donation_payment_status = \$1 AND \(donation_is_anonymous = false OR donation_donor_id = \$2\)`).
		WithArgs(model.PaymentCompleted, userID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_payment_status = \$1 AND \(donation_is_anonymous = false OR donation_donor_id = \$2\) ORDER BY`).
		WillReturnRows(completedDonationRow(uuid.New()))

	resp, err := app.Test(httptest.NewRequest("GET", "/donations", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"payment_status":"completed"`)
	assert.NotContains(t, string(body), model.PaymentPending)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDonationsGuestListOnlyCompletedNonAnonymous(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewDonationController(db)

	app := fiber.New()
	app.Get("/donations", ctrl.GetDonations)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "donations" WHERE donation_payment_status = \$1 AND donation_is_anonymous = false`).
		WithArgs(model.PaymentCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "donations" WHERE donation_payment_status = \$1 AND donation_is_anonymous = false ORDER BY`).
		WillReturnRows(completedDonationRow(uuid.New()))

	resp, err := app.Test(httptest.NewRequest("GET", "/donations", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Service calls must run under the request-scoped context bound by the
// timing middleware, so cancelling it aborts the database work.
func TestRecomputeCampaignHonorsRequestContext(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewCampaignController(db)
	campaignID := uuid.New()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(canceled)
		return c.Next()
	})
	app.Post("/campaigns/:id/recompute", ctrl.RecomputeCampaign)

	// the queries would all succeed if the handler ignored the bound context
	mock.ExpectQuery(`SELECT \* FROM "donation_campaigns" WHERE campaign_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"campaign_id", "campaign_shelter_id", "campaign_target_amount",
			"campaign_current_amount", "campaign_status",
		}).AddRow(campaignID.String(), nil, "1000.00", "0.00", model.CampaignActive))
	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"total_amount", "total_count", "avg_amount"}).
			AddRow("0", 0, "0"))
	mock.ExpectExec(`UPDATE "donation_campaigns" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := app.Test(httptest.NewRequest("POST", "/campaigns/"+campaignID.String()+"/recompute", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
