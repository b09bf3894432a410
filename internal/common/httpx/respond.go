// internal/common/httpx/respond.go
package httpx

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/errors"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DispatchError writes the dispatcher failure envelope
// {success:false, error} with the status mapped at this boundary.
func DispatchError(w http.ResponseWriter, err error) {
	JSON(w, apperrors.HTTPStatus(err), map[string]interface{}{
		"success": false,
		"error":   apperrors.PublicMessage(err),
	})
}

// PaymentError writes the payment service failure envelope {error},
// which carries no success field.
func PaymentError(w http.ResponseWriter, err error) {
	JSON(w, apperrors.HTTPStatus(err), map[string]interface{}{
		"error": apperrors.PublicMessage(err),
	})
}
