// internal/common/errors/http.go
package errors

import "net/http"

// HTTPStatus maps an error to the transport status code. Every kind in
// the taxonomy surfaces as a client error; unexpected errors collapse
// into the same 400 shape rather than opening a distinct 500-class
// path.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindNotFound, KindConfiguration, KindPaymentProcessor:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// PublicMessage returns the message safe to hand to the caller. For
// taxonomy errors that is the structured message; anything else passes
// its error text through.
func PublicMessage(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Message
	}
	return err.Error()
}
