// internal/functions/notify-user/handler.go
package notifyuser

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/httpx"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/metrics"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/validation"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/models"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/store"
)

const FunctionName = "notify-user"

// EmailSender delivers the email channel. Implemented by the SES client.
type EmailSender interface {
	SendNotificationEmail(ctx context.Context, to, subject, body string) error
}

// PushSender delivers the push channel. Implemented by the SNS client.
type PushSender interface {
	PublishNotification(ctx context.Context, userID, subject, message string) error
}

type Handler struct {
	config        *Config
	db            *sql.DB
	prefs         *store.Preferences
	notifications *store.Notifications
	logger        logger.Logger
	email         EmailSender
	push          PushSender
}

// NewHandler wires the user dispatcher. email and push may be nil when
// the corresponding delivery is disabled; rows are still written.
func NewHandler(config *Config, db *sql.DB, cache *redis.Client, log logger.Logger, email EmailSender, push PushSender) *Handler {
	return &Handler{
		config:        config,
		db:            db,
		prefs:         store.NewPreferences(db, cache, config.CacheTTL),
		notifications: store.NewNotifications(db),
		logger:        log.WithFields(map[string]interface{}{"function": FunctionName}),
		email:         email,
		push:          push,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.DispatchError(w, apperrors.NewValidationError("unable to read request body"))
		return
	}

	if err := validation.ValidateBody(requestSchema, body); err != nil {
		httpx.DispatchError(w, err)
		return
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		httpx.DispatchError(w, apperrors.NewValidationError("request body must be valid JSON"))
		return
	}

	if err := validateInput(&input); err != nil {
		httpx.DispatchError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.logger.Error("dispatch failed", map[string]interface{}{
			"userId": input.UserID,
			"error":  err.Error(),
		})
		httpx.DispatchError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	pref, err := h.prefs.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// Opt-out of the whole event class overrides per-channel settings.
	if pref != nil && !pref.OrderUpdatesEnabled {
		h.logger.Info("dispatch skipped, order updates disabled", map[string]interface{}{
			"userId": input.UserID,
		})
		return &Output{Skipped: true}, nil
	}

	channels := models.EnabledChannels(pref)

	rows := make([]models.Notification, 0, len(channels))
	for _, ch := range channels {
		rows = append(rows, store.NewRow(input.UserID, input.Title, input.Message, ch))
	}

	if err := h.notifications.InsertBatch(ctx, rows); err != nil {
		return nil, err
	}
	for _, ch := range channels {
		metrics.NotificationsCreated.WithLabelValues(string(ch)).Inc()
	}

	h.deliver(ctx, input, channels)

	// Zero enabled channels is still a success: the user simply has no
	// delivery medium, which is not the same as the opt-out skip.
	return &Output{Success: true}, nil
}

// deliver pushes enabled channels out through SES/SNS. Delivery is best
// effort: the row batch is the unit of success, so failures here are
// logged and counted but never fail the request.
func (h *Handler) deliver(ctx context.Context, input *Input, channels []models.Channel) {
	for _, ch := range channels {
		switch ch {
		case models.ChannelEmail:
			if h.email == nil {
				continue
			}
			addr, err := h.recipientEmail(ctx, input.UserID)
			if err != nil || addr == "" {
				h.logger.Warn("recipient email not found", map[string]interface{}{"userId": input.UserID})
				continue
			}
			if err := h.email.SendNotificationEmail(ctx, addr, input.Title, input.Message); err != nil {
				metrics.ChannelDeliveryFailures.WithLabelValues(string(models.ChannelEmail)).Inc()
				h.logger.Error("email delivery failed", map[string]interface{}{
					"userId": input.UserID,
					"error":  err.Error(),
				})
			}
		case models.ChannelPush:
			if h.push == nil {
				continue
			}
			if err := h.push.PublishNotification(ctx, input.UserID, input.Title, input.Message); err != nil {
				metrics.ChannelDeliveryFailures.WithLabelValues(string(models.ChannelPush)).Inc()
				h.logger.Error("push delivery failed", map[string]interface{}{
					"userId": input.UserID,
					"error":  err.Error(),
				})
			}
		}
	}
}

func (h *Handler) recipientEmail(ctx context.Context, userID string) (string, error) {
	var email sql.NullString
	err := h.db.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		return "", err
	}
	return email.String, nil
}
