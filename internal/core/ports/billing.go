package ports

import "context"

// BillingClient is the RPC contract with the external billing subsystem.
// The records service only needs account creation; billing internals are
// not modelled here.
type BillingClient interface {
	CreateBillingAccount(ctx context.Context, patientID, name, email string) error
}
