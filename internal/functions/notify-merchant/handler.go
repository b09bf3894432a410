// internal/functions/notify-merchant/handler.go
package notifymerchant

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/httpx"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/logger"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/metrics"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/validation"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/models"
	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/store"
)

const FunctionName = "notify-merchant"

type Handler struct {
	config        *Config
	orders        *store.Orders
	notifications *store.Notifications
	logger        logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config:        config,
		orders:        store.NewOrders(db),
		notifications: store.NewNotifications(db),
		logger:        log.WithFields(map[string]interface{}{"function": FunctionName}),
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

	if err := h.execute(ctx, &input); err != nil {
		h.logger.Error("dispatch failed", map[string]interface{}{
			"orderId": input.OrderID,
			"error":   err.Error(),
		})
		httpx.DispatchError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, Output{Success: true})
}

func (h *Handler) execute(ctx context.Context, input *Input) error {
	storeIDs, err := h.orders.StoreIDs(ctx, input.OrderID)
	if err != nil {
		return err
	}

	// No items or no store ids means the order data is malformed.
	if len(storeIDs) == 0 {
		return apperrors.NewNotFoundError("no store found for order")
	}

	ownerIDs, err := h.orders.OwnerIDs(ctx, storeIDs)
	if err != nil {
		return err
	}

	// Stores with no owner on record are tolerated: past this point the
	// dispatch succeeds even when nobody is left to notify.
	if len(ownerIDs) == 0 {
		h.logger.Info("no merchant owners to notify", map[string]interface{}{
			"orderId": input.OrderID,
		})
		return nil
	}

	rows := make([]models.Notification, 0, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		rows = append(rows, store.NewRow(ownerID, input.Title, input.Message, models.ChannelInApp))
	}

	if err := h.notifications.InsertBatch(ctx, rows); err != nil {
		return err
	}
	metrics.NotificationsCreated.WithLabelValues(string(models.ChannelInApp)).Add(float64(len(rows)))

	return nil
}
