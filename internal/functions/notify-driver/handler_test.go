// internal/functions/notify-driver/handler_test.go
package notifydriver

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
)

var deliveryQuery = regexp.QuoteMeta(`SELECT driver_id FROM deliveries WHERE order_id = $1`)

func newHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewHandler(&Config{Timeout: 30 * time.Second}, db, logger.NewTestLogger(t))
	return h, mock, func() { db.Close() }
}

func TestHandler_Execute_NotifiesAssignedDriver(t *testing.T) {
	h, mock, closeDB := newHandler(t)
	defer closeDB()

	mock.ExpectQuery(deliveryQuery).WithArgs("order-001").
		WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow("driver-7"))

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(
			sqlmock.AnyArg(), "driver-7", "Pickup ready", "Order is ready for pickup", "in_app", false, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := h.execute(context.Background(), &Input{OrderID: "order-001", Title: "Pickup ready", Message: "Order is ready for pickup"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NoDeliveryRow(t *testing.T) {
	h, mock, closeDB := newHandler(t)
	defer closeDB()

	mock.ExpectQuery(deliveryQuery).WithArgs("order-002").WillReturnError(sql.ErrNoRows)

	err := h.execute(context.Background(), &Input{OrderID: "order-002", Title: "t", Message: "m"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Equal(t, "no driver assigned", apperrors.PublicMessage(err))
}

func TestHandler_Execute_NullDriver(t *testing.T) {
	h, mock, closeDB := newHandler(t)
	defer closeDB()

	mock.ExpectQuery(deliveryQuery).WithArgs("order-003").
		WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow(nil))

	err := h.execute(context.Background(), &Input{OrderID: "order-003", Title: "t", Message: "m"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestHandler_ServeHTTP(t *testing.T) {
	h, mock, closeDB := newHandler(t)
	defer closeDB()

	// Validation failure never touches the database.
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/notify-driver",
		bytes.NewBufferString(`{"orderId":"order-001"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Success path.
	mock.ExpectQuery(deliveryQuery).WithArgs("order-001").
		WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow("driver-7"))
	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req = httptest.NewRequest(http.MethodPost, "/functions/v1/notify-driver",
		bytes.NewBufferString(`{"orderId":"order-001","title":"t","message":"m"}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
