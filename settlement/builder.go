package settlement

import (
	"context"
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/vitwit/pinetwork/clients"
	"github.com/vitwit/pinetwork/types"
)

// TransactionBuilder builds and signs app-to-user payment transactions with
// the app wallet keypair.
type TransactionBuilder struct {
	keypair    *keypair.Full
	timebounds int64
}

// NewTransactionBuilder creates a builder whose transactions are valid for
// timeboundSeconds after the ledger server's current time.
func NewTransactionBuilder(kp *keypair.Full, timeboundSeconds int64) *TransactionBuilder {
	return &TransactionBuilder{
		keypair:    kp,
		timebounds: timeboundSeconds,
	}
}

// Address is the public key of the app wallet.
func (b *TransactionBuilder) Address() string {
	return b.keypair.Address()
}

// BuildA2UTransaction returns a signed, unsubmitted transaction paying
// data.Amount of the native asset to data.ToAddress. The memo carries the
// payment identifier, which links the ledger transaction to the payment.
func (b *TransactionBuilder) BuildA2UTransaction(
	ctx context.Context,
	ledger clients.Ledger,
	data types.TransactionData,
	network types.NetworkPassphrase,
) (*txnbuild.Transaction, error) {
	if data.FromAddress != b.keypair.Address() {
		return nil, types.NewPaymentError(types.ErrPrivateSeedMismatch, nil)
	}

	account, err := ledger.LoadAccount(ctx, b.keypair.Address())
	if err != nil {
		return nil, err
	}

	baseFee, err := ledger.FetchBaseFee(ctx)
	if err != nil {
		return nil, err
	}

	timebounds, err := ledger.FetchTimebounds(ctx, b.timebounds)
	if err != nil {
		return nil, err
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        account,
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: data.ToAddress,
				Amount:      data.Amount.String(),
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee: baseFee,
		Memo:    txnbuild.MemoText(data.PaymentIdentifier),
		Preconditions: txnbuild.Preconditions{
			TimeBounds: timebounds,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	signed, err := tx.Sign(network.String(), b.keypair)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return signed, nil
}
