package models

// Approval is returned to the reviewer after a vehicle request is approved.
type Approval struct {
	Request        *Request
	Vehicle        *Vehicle
	Sticker        *Sticker
	VehicleCreated bool
}
