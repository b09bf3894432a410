// internal/functions/notify-driver/handler.go
package notifydriver

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

const FunctionName = "notify-driver"

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

// execute writes exactly one in-app notification for the assigned
// driver. Delivery instructions are operationally mandatory, so no
// preference check gates this variant.
func (h *Handler) execute(ctx context.Context, input *Input) error {
	driverID, err := h.orders.DriverID(ctx, input.OrderID)
	if err != nil {
		return err
	}
	if driverID == "" {
		return apperrors.NewNotFoundError("no driver assigned")
	}

	row := store.NewRow(driverID, input.Title, input.Message, models.ChannelInApp)
	if err := h.notifications.InsertBatch(ctx, []models.Notification{row}); err != nil {
		return err
	}
	metrics.NotificationsCreated.WithLabelValues(string(models.ChannelInApp)).Inc()

	return nil
}
