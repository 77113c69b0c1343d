package models

import "time"

// Kind names the workflow event a notification reports.
type Kind string

const (
	KindRegistrationApproved Kind = "registration.approved"
	KindRegistrationRejected Kind = "registration.rejected"
	KindVehicleApproved      Kind = "vehicle.approved"
	KindVehicleRejected      Kind = "vehicle.rejected"
	KindPaymentVerified      Kind = "payment.verified"
	KindPaymentRejected      Kind = "payment.rejected"
)

// Message is a rendered notification ready for a sender. Template rendering and
// mail delivery happen downstream of the sender.
type Message struct {
	ID        string            `json:"id"`
	Kind      Kind              `json:"kind"`
	To        string            `json:"to"`
	From      string            `json:"from,omitempty"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
