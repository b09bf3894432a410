// internal/functions/notify-user/models.go
package notifyuser

// Input is the notify-user request body. Type is an optional event
// category tag from the caller; the notification rows always carry the
// delivery channel as their type.
type Input struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// Output is the success envelope: exactly {success:true} after a
// dispatch, or {skipped:true} when the recipient opted out of order
// updates.
type Output struct {
	Success bool `json:"success,omitempty"`
	Skipped bool `json:"skipped,omitempty"`
}
