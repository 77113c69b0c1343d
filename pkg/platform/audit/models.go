package audit

import (
	"time"

	id "gatehouse/pkg/domain"
)

// Event captures a reviewer or resident action on a workflow record.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	ActorID   id.AccountID `json:"actor_id"`
	Action    string       `json:"action"`
	Subject   string       `json:"subject"`
	Reason    string       `json:"reason,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

type Action string

const (
	ActionRegistrationAutoLinked Action = "registration_auto_linked"
	ActionRegistrationSubmitted  Action = "registration_submitted"
	ActionRegistrationApproved   Action = "registration_approved"
	ActionRegistrationRejected   Action = "registration_rejected"
	ActionVehicleRequested       Action = "vehicle_requested"
	ActionVehicleApproved        Action = "vehicle_approved"
	ActionVehicleRejected        Action = "vehicle_rejected"
	ActionStickerIssued          Action = "sticker_issued"
	ActionStickerRevoked         Action = "sticker_revoked"
	ActionStickersExpired        Action = "stickers_expired"
	ActionPaymentSubmitted       Action = "payment_submitted"
	ActionPaymentVerified        Action = "payment_verified"
	ActionPaymentRejected        Action = "payment_rejected"
	ActionDuesConfigUpdated      Action = "dues_config_updated"
	ActionLedgerReconciled       Action = "ledger_reconciled"
)
