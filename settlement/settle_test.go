package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/pinetwork/clients"
	"github.com/vitwit/pinetwork/clients/mocks"
	"github.com/vitwit/pinetwork/config"
	"github.com/vitwit/pinetwork/types"
)

const testBaseFee = int64(100000)

func expectBuild(ledger *mocks.Ledger, app *keypair.Full) {
	ledger.On("LoadAccount", mock.Anything, app.Address()).
		Return(&txnbuild.SimpleAccount{AccountID: app.Address(), Sequence: 100}, nil).Once()
	ledger.On("FetchBaseFee", mock.Anything).Return(testBaseFee, nil).Once()
	ledger.On("FetchTimebounds", mock.Anything, int64(180)).
		Return(txnbuild.NewTimeout(180), nil).Once()
}

func TestBuildA2UTransaction(t *testing.T) {
	app := keypair.MustRandom()
	user := keypair.MustRandom()
	ledger := mocks.NewLedger(t)
	expectBuild(ledger, app)

	builder := NewTransactionBuilder(app, 180)
	data := types.TransactionData{
		Amount:            decimal.RequireFromString("3.1415"),
		PaymentIdentifier: "pay-123",
		FromAddress:       app.Address(),
		ToAddress:         user.Address(),
	}

	tx, err := builder.BuildA2UTransaction(context.Background(), ledger, data, types.NetworkTestnet)
	require.NoError(t, err)

	assert.Equal(t, app.Address(), tx.SourceAccount().AccountID)
	assert.Equal(t, int64(101), tx.SourceAccount().Sequence)
	assert.Equal(t, testBaseFee, tx.BaseFee())
	assert.Equal(t, txnbuild.MemoText("pay-123"), tx.Memo())
	assert.Len(t, tx.Signatures(), 1)

	ops := tx.Operations()
	require.Len(t, ops, 1)
	payment, ok := ops[0].(*txnbuild.Payment)
	require.True(t, ok)
	assert.Equal(t, user.Address(), payment.Destination)
	assert.Equal(t, "3.1415", payment.Amount)
	assert.True(t, payment.Asset.IsNative())

	hash, err := tx.Hash(types.NetworkTestnet.String())
	require.NoError(t, err)
	assert.NoError(t, app.Verify(hash[:], tx.Signatures()[0].Signature))
}

func TestBuildA2UTransactionSeedMismatch(t *testing.T) {
	app := keypair.MustRandom()
	ledger := mocks.NewLedger(t)

	builder := NewTransactionBuilder(app, 180)
	data := types.TransactionData{
		Amount:            decimal.NewFromInt(1),
		PaymentIdentifier: "pay-123",
		FromAddress:       keypair.MustRandom().Address(),
		ToAddress:         keypair.MustRandom().Address(),
	}

	_, err := builder.BuildA2UTransaction(context.Background(), ledger, data, types.NetworkTestnet)

	pe, ok := types.AsPaymentError(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrPrivateSeedMismatch, pe.Code)
	ledger.AssertNotCalled(t, "LoadAccount", mock.Anything, mock.Anything)
}

func TestBuildA2UTransactionLedgerError(t *testing.T) {
	app := keypair.MustRandom()
	ledger := mocks.NewLedger(t)
	accountErr := errors.New("resource missing")
	ledger.On("LoadAccount", mock.Anything, app.Address()).Return(nil, accountErr).Once()

	builder := NewTransactionBuilder(app, 180)
	data := types.TransactionData{
		Amount:      decimal.NewFromInt(1),
		FromAddress: app.Address(),
		ToAddress:   keypair.MustRandom().Address(),
	}

	_, err := builder.BuildA2UTransaction(context.Background(), ledger, data, types.NetworkTestnet)
	assert.ErrorIs(t, err, accountErr)
}

func TestResultCodeError(t *testing.T) {
	tests := []struct {
		name  string
		codes *clients.ResultCodes
		want  types.ErrorCode
	}{
		{
			name:  "operation code preferred",
			codes: &clients.ResultCodes{Transaction: "tx_failed", Operations: []string{"op_bad_auth"}},
			want:  types.ErrOpBadAuth,
		},
		{
			name:  "transaction code when no operations",
			codes: &clients.ResultCodes{Transaction: "tx_bad_seq"},
			want:  types.ErrTxBadSeq,
		},
		{
			name:  "uncatalogued operation code falls back to transaction code",
			codes: &clients.ResultCodes{Transaction: "tx_failed", Operations: []string{"op_underfunded"}},
			want:  types.ErrTxFailed,
		},
		{
			name:  "no codes",
			codes: nil,
			want:  types.ErrUnknown,
		},
		{
			name:  "only uncatalogued codes",
			codes: &clients.ResultCodes{Transaction: "tx_fee_bump_inner_failed"},
			want:  types.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultCodeError(tt.codes).Code)
		})
	}
}

func TestResultCodeErrorKeepsRawCodes(t *testing.T) {
	err := ResultCodeError(&clients.ResultCodes{Transaction: "tx_fee_bump_inner_failed"})
	assert.Contains(t, err.Message, "tx_fee_bump_inner_failed")
}

func TestSettle(t *testing.T) {
	app := keypair.MustRandom()
	user := keypair.MustRandom()
	ledger := mocks.NewLedger(t)
	expectBuild(ledger, app)
	ledger.On("SubmitTransaction", mock.Anything, mock.AnythingOfType("*txnbuild.Transaction")).
		Return(&clients.SubmitResult{Successful: true, ID: "txid-1"}, nil).Once()

	cfg := config.Default()
	var requested []string
	svc := NewSettlementService(NewTransactionBuilder(app, cfg.DefaultTimebounds), cfg, func(url string) clients.Ledger {
		requested = append(requested, url)
		return ledger
	})

	payment := &types.PaymentDTO{
		Identifier:  "pay-1",
		Amount:      decimal.NewFromInt(2),
		FromAddress: app.Address(),
		ToAddress:   user.Address(),
		Network:     types.NetworkMainnet,
	}

	txid, err := svc.Settle(context.Background(), payment)
	require.NoError(t, err)
	assert.Equal(t, "txid-1", txid)
	assert.Equal(t, []string{cfg.HorizonMainnetURL}, requested)
}

func TestSubmitTransactionOutcomes(t *testing.T) {
	tx := &txnbuild.Transaction{}

	t.Run("rejected", func(t *testing.T) {
		ledger := mocks.NewLedger(t)
		ledger.On("SubmitTransaction", mock.Anything, tx).Return(&clients.SubmitResult{
			Successful:  false,
			ResultCodes: &clients.ResultCodes{Transaction: "tx_failed", Operations: []string{"op_bad_auth"}},
		}, nil).Once()

		_, err := SubmitTransaction(context.Background(), ledger, tx)
		pe, ok := types.AsPaymentError(err)
		require.True(t, ok)
		assert.Equal(t, types.ErrOpBadAuth, pe.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		ledger := mocks.NewLedger(t)
		ledger.On("SubmitTransaction", mock.Anything, tx).
			Return(&clients.SubmitResult{Successful: true}, nil).Once()

		_, err := SubmitTransaction(context.Background(), ledger, tx)
		pe, ok := types.AsPaymentError(err)
		require.True(t, ok)
		assert.Equal(t, types.ErrUnknown, pe.Code)
	})

	t.Run("transport error passes through", func(t *testing.T) {
		ledger := mocks.NewLedger(t)
		netErr := errors.New("connection reset")
		ledger.On("SubmitTransaction", mock.Anything, tx).Return(nil, netErr).Once()

		_, err := SubmitTransaction(context.Background(), ledger, tx)
		assert.ErrorIs(t, err, netErr)
	})
}
