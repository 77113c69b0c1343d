package models

// Verification is the outcome of verifying a payment. Ledger is nil for
// payments that do not feed the ledger; Applied is false when the payment had
// already been counted.
type Verification struct {
	Payment *Payment
	Ledger  *LedgerRow
	Applied bool
}
