package clients

import (
	"context"

	"github.com/stellar/go/txnbuild"
)

// Ledger is the capability the SDK needs from a ledger network server.
type Ledger interface {
	// LoadAccount returns the account with its current sequence number.
	LoadAccount(ctx context.Context, accountID string) (txnbuild.Account, error)

	// FetchBaseFee returns the network-recommended base fee, in stroops.
	FetchBaseFee(ctx context.Context) (int64, error)

	// FetchTimebounds returns a validity window of the given length, based on
	// the server's clock.
	FetchTimebounds(ctx context.Context, seconds int64) (txnbuild.TimeBounds, error)

	// SubmitTransaction submits a signed transaction. A rejection by the
	// network is reported in the result, not as an error.
	SubmitTransaction(ctx context.Context, tx *txnbuild.Transaction) (*SubmitResult, error)
}

// SubmitResult is the outcome of a transaction submission.
type SubmitResult struct {
	Successful  bool
	ID          string
	ResultCodes *ResultCodes
}

// ResultCodes are the rejection codes reported by the ledger.
type ResultCodes struct {
	Transaction string   `json:"transaction"`
	Operations  []string `json:"operations,omitempty"`
}
