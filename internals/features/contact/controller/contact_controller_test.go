package controller

import (
	"net/http/httptest"
	"strings"
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

var contactInfoCols = []string{
	"info_id", "info_organization_name", "info_phone_primary",
	"info_email_primary", "info_address_line1", "info_city",
	"info_is_active", "created_at", "updated_at",
}

// Activation deactivates every other row and flips the target on inside one
// transaction, so at most one row is ever active.
func TestActivateContactInfoSingleActive(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewContactController(db)

	app := fiber.New()
	app.Post("/info/:id/activate", ctrl.ActivateContactInfo)

	infoID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contact_info" WHERE info_id`).
		WillReturnRows(sqlmock.NewRows(contactInfoCols).AddRow(
			infoID.String(), "AdoptMe", "+1-555-0100",
			"info@adoptme.org", "1 Shelter Way", "Springfield",
			false, now, now,
		))
	mock.ExpectExec(`UPDATE "contact_info" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1)) // previous active row turned off
	mock.ExpectExec(`UPDATE "contact_info" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1)) // target turned on
	mock.ExpectCommit()

	req := httptest.NewRequest("POST", "/info/"+infoID.String()+"/activate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateContactInfoUnknownIDRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewContactController(db)

	app := fiber.New()
	app.Post("/info/:id/activate", ctrl.ActivateContactInfo)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "contact_info" WHERE info_id`).
		WillReturnRows(sqlmock.NewRows(contactInfoCols))
	mock.ExpectRollback()

	req := httptest.NewRequest("POST", "/info/"+uuid.NewString()+"/activate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMessageValidatesInput(t *testing.T) {
	db, _ := newMockDB(t)
	ctrl := NewContactController(db)

	app := fiber.New()
	app.Post("/messages", ctrl.CreateMessage)

	// message under 10 characters and a bad email
	body := `{"name":"A","email":"not-an-email","message":"short"}`
	req := httptest.NewRequest("POST", "/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
