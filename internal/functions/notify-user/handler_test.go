// internal/functions/notify-user/handler_test.go
package notifyuser

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
)

// ==========================
// Mock Implementations
// ==========================

type MockEmailSender struct {
	SendFunc func(ctx context.Context, to, subject, body string) error
	Calls    int
}

func (m *MockEmailSender) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	m.Calls++
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(ctx, to, subject, body)
}

type MockPushSender struct {
	PublishFunc func(ctx context.Context, userID, subject, message string) error
	Calls       int
}

func (m *MockPushSender) PublishNotification(ctx context.Context, userID, subject, message string) error {
	m.Calls++
	if m.PublishFunc == nil {
		return nil
	}
	return m.PublishFunc(ctx, userID, subject, message)
}

// ==========================
// Test Helpers
// ==========================

const prefQuery = `SELECT user_id, email_enabled, push_enabled, in_app_enabled, order_updates_enabled
		 FROM notification_preferences WHERE user_id = $1`

func prefColumns() []string {
	return []string{"user_id", "email_enabled", "push_enabled", "in_app_enabled", "order_updates_enabled"}
}

func TestHandler_Execute_OptOutSkips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(prefQuery)).
		WithArgs("user-001").
		WillReturnRows(sqlmock.NewRows(prefColumns()).AddRow("user-001", true, true, true, false))

	h := NewHandler(&Config{Timeout: 30 * time.Second}, db, nil, logger.NewTestLogger(t), nil, nil)

	output, err := h.execute(context.Background(), &Input{UserID: "user-001", Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.True(t, output.Skipped)
	assert.False(t, output.Success)
	// No insert was expected, so any write would fail here.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DefaultChannels(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No preference row: defaults write exactly in_app and email.
	mock.ExpectQuery(regexp.QuoteMeta(prefQuery)).
		WithArgs("user-002").
		WillReturnRows(sqlmock.NewRows(prefColumns()))

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(
			sqlmock.AnyArg(), "user-002", "Order update", "shipped", "in_app", false, sqlmock.AnyArg(),
			sqlmock.AnyArg(), "user-002", "Order update", "shipped", "email", false, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// Email channel delivery looks up the recipient address.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM users WHERE id = $1`)).
		WithArgs("user-002").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("u2@example.com"))

	email := &MockEmailSender{}
	push := &MockPushSender{}
	h := NewHandler(&Config{Timeout: 30 * time.Second, EmailDelivery: true}, db, nil, logger.NewTestLogger(t), email, push)

	output, err := h.execute(context.Background(), &Input{UserID: "user-002", Title: "Order update", Message: "shipped"})
	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 1, email.Calls)
	assert.Equal(t, 0, push.Calls, "push is off by default")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AllChannelsDisabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(prefQuery)).
		WithArgs("user-003").
		WillReturnRows(sqlmock.NewRows(prefColumns()).AddRow("user-003", false, false, false, true))

	h := NewHandler(&Config{Timeout: 30 * time.Second}, db, nil, logger.NewTestLogger(t), nil, nil)

	output, err := h.execute(context.Background(), &Input{UserID: "user-003", Title: "t", Message: "m"})
	require.NoError(t, err)
	// Zero channels is a legitimate no-delivery outcome, not an error
	// and not the opt-out skip.
	assert.True(t, output.Success)
	assert.False(t, output.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DeliveryFailureDoesNotFailDispatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(prefQuery)).
		WithArgs("user-004").
		WillReturnRows(sqlmock.NewRows(prefColumns()))

	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM users WHERE id = $1`)).
		WithArgs("user-004").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("u4@example.com"))

	email := &MockEmailSender{
		SendFunc: func(ctx context.Context, to, subject, body string) error {
			return errors.New("ses throttled")
		},
	}
	h := NewHandler(&Config{Timeout: 30 * time.Second, EmailDelivery: true}, db, nil, logger.NewTestLogger(t), email, nil)

	output, err := h.execute(context.Background(), &Input{UserID: "user-004", Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Equal(t, 1, email.Calls)
}

func TestHandler_Execute_DoubleDispatchWritesTwoBatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(prefQuery)).
			WithArgs("user-005").
			WillReturnRows(sqlmock.NewRows(prefColumns()).AddRow("user-005", false, false, true, true))
		mock.ExpectExec(`INSERT INTO notifications`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	h := NewHandler(&Config{Timeout: 30 * time.Second}, db, nil, logger.NewTestLogger(t), nil, nil)

	// No idempotency key: identical inputs produce independent batches.
	for i := 0; i < 2; i++ {
		output, err := h.execute(context.Background(), &Input{UserID: "user-005", Title: "t", Message: "m"})
		require.NoError(t, err)
		assert.True(t, output.Success)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_ServeHTTP_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewHandler(&Config{Timeout: 30 * time.Second}, db, nil, logger.NewTestLogger(t), nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing userId", `{"title":"t","message":"m"}`},
		{"missing title", `{"userId":"u","message":"m"}`},
		{"missing message", `{"userId":"u","title":"t"}`},
		{"blank userId", `{"userId":"  ","title":"t","message":"m"}`},
		{"not json", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/functions/v1/notify-user", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestHandler_ServeHTTP_Skipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(prefQuery)).
		WithArgs("user-001").
		WillReturnRows(sqlmock.NewRows(prefColumns()).AddRow("user-001", true, true, true, false))

	h := NewHandler(&Config{Timeout: 30 * time.Second}, db, nil, logger.NewTestLogger(t), nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/notify-user",
		bytes.NewBufferString(`{"userId":"user-001","title":"t","message":"m"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"skipped":true}`, rec.Body.String())
}
