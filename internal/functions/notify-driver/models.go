// internal/functions/notify-driver/models.go
package notifydriver

// Input is the notify-driver request body.
type Input struct {
	OrderID string `json:"orderId"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Output struct {
	Success bool `json:"success"`
}
