package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/models"
)

func TestNewRow(t *testing.T) {
	row := NewRow("user-001", "Order update", "Your order shipped", models.ChannelEmail)

	assert.NotEmpty(t, row.ID)
	assert.Equal(t, "user-001", row.UserID)
	assert.Equal(t, models.ChannelEmail, row.Type)
	assert.False(t, row.Read)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestInsertBatch_MultiRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := []models.Notification{
		NewRow("user-001", "Order update", "shipped", models.ChannelInApp),
		NewRow("user-001", "Order update", "shipped", models.ChannelEmail),
	}

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO notifications (id, user_id, title, message, type, read, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7), ($8, $9, $10, $11, $12, $13, $14)`)).
		WithArgs(
			rows[0].ID, rows[0].UserID, rows[0].Title, rows[0].Message, "in_app", false, rows[0].CreatedAt,
			rows[1].ID, rows[1].UserID, rows[1].Title, rows[1].Message, "email", false, rows[1].CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = NewNotifications(db).InsertBatch(context.Background(), rows)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatch_EmptyIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewNotifications(db).InsertBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
