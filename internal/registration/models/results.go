package models

// Action describes what Submit did with a claim.
type Action string

const (
	ActionLinked  Action = "linked"
	ActionPending Action = "pending_review"
)

// SubmitResult is returned to the signing-up account.
// RequestID is empty when the claim was auto-linked.
type SubmitResult struct {
	Status     Status
	Action     Action
	Confidence Confidence
	Request    *Request
	ResidentID string
}

// Decision is returned to the reviewer after approve or reject.
type Decision struct {
	Request    *Request
	ResidentID string
	Created    bool
}
