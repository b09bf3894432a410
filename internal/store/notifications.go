// Package store holds the record-store queries shared by the
// dispatchers: notification batch inserts, order and store resolution,
// and the preference lookup with its cache.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/models"
)

// Notifications writes notification rows.
type Notifications struct {
	db *sql.DB
}

func NewNotifications(db *sql.DB) *Notifications {
	return &Notifications{db: db}
}

// NewRow builds an unread notification row with a fresh id.
func NewRow(userID, title, message string, channel models.Channel) models.Notification {
	return models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      channel,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
}

// InsertBatch writes all rows in one multi-row INSERT so a dispatch
// either persists every enabled channel or nothing. A zero-length batch
// is a no-op.
func (s *Notifications) InsertBatch(ctx context.Context, rows []models.Notification) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO notifications (id, user_id, title, message, type, read, created_at) VALUES `)

	args := make([]interface{}, 0, len(rows)*7)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, row.ID, row.UserID, row.Title, row.Message, string(row.Type), row.Read, row.CreatedAt)
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}
