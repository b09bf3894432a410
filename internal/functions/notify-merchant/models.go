// internal/functions/notify-merchant/models.go
package notifymerchant

// Input is the notify-merchant request body.
type Input struct {
	OrderID string `json:"orderId"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Output struct {
	Success bool `json:"success"`
}
