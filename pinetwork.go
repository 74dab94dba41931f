// Package pinetwork is a server-side SDK for Pi Network app-to-user payments.
// It creates payments on the Pi platform API, pays them out on the Pi ledger
// from the app wallet, and completes or cancels them.
//
// A PiNetwork value tracks one payment workflow at a time. Use one instance per
// concurrent workflow.
package pinetwork

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stellar/go/keypair"
	"github.com/vitwit/pinetwork/clients"
	"github.com/vitwit/pinetwork/config"
	"github.com/vitwit/pinetwork/logger"
	"github.com/vitwit/pinetwork/metrics"
	"github.com/vitwit/pinetwork/settlement"
	"github.com/vitwit/pinetwork/types"
	"github.com/vitwit/pinetwork/utils"
)

// PiNetwork coordinates the create, submit, complete and cancel steps of a
// payment across the platform API and the ledger.
type PiNetwork struct {
	api        *clients.PlatformClient
	settlement *settlement.SettlementService
	keypair    *keypair.Full

	config     *config.Config
	logger     logger.Logger
	metrics    metrics.Recorder
	timeout    time.Duration
	httpClient *http.Client
	newLedger  settlement.LedgerFactory

	mu             sync.Mutex
	currentPayment *types.PaymentDTO
}

// New validates the credentials and creates a PiNetwork. Malformed
// credentials fail with a *types.PaymentError before any network activity.
// Without WithConfig the configuration is loaded from the environment.
func New(apiKey, walletPrivateSeed string, opts ...Option) (*PiNetwork, error) {
	if err := utils.ValidateSeedFormat(walletPrivateSeed); err != nil {
		return nil, err
	}
	if err := utils.ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}

	kp, err := keypair.ParseFull(walletPrivateSeed)
	if err != nil {
		return nil, types.NewPaymentError(types.ErrInvalidWalletPrivateSeed, nil)
	}

	p := &PiNetwork{
		keypair: kp,
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.config == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		p.config = cfg
	} else if err := p.config.Validate(); err != nil {
		return nil, err
	}

	timeout := p.config.Timeout()
	if p.timeout > 0 {
		timeout = p.timeout
	}
	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: timeout}
	}
	if p.newLedger == nil {
		ledgerHTTP := &http.Client{Timeout: timeout}
		p.newLedger = func(horizonURL string) clients.Ledger {
			return clients.NewHorizonLedger(horizonURL, ledgerHTTP)
		}
	}

	p.api = clients.NewPlatformClient(p.config.PlatformAPIURL(), apiKey, p.httpClient)
	p.settlement = settlement.NewSettlementService(
		settlement.NewTransactionBuilder(kp, p.config.DefaultTimebounds),
		p.config,
		p.newLedger,
	)

	return p, nil
}

// Address returns the public key of the app wallet.
func (p *PiNetwork) Address() string {
	return p.keypair.Address()
}

// CreatePayment creates an app-to-user payment and returns its identifier.
// The created payment becomes the current payment of this instance.
func (p *PiNetwork) CreatePayment(ctx context.Context, args types.PaymentArgs) (paymentID string, err error) {
	op := p.begin("create_payment")
	defer func() { p.finish(op, err) }()

	if err := utils.ValidatePaymentData(args); err != nil {
		return "", err
	}

	payment, err := p.api.CreatePayment(ctx, args)
	if err != nil {
		return "", op.fail(err, createErrorData)
	}

	op.fields["payment_id"] = payment.Identifier
	op.network = payment.Network
	p.setCurrentPayment(payment)

	return payment.Identifier, nil
}

// SubmitPayment pays out the payment on the ledger and returns the
// transaction id. The payment is fetched first unless it is the current
// payment. The current payment is always cleared on return.
func (p *PiNetwork) SubmitPayment(ctx context.Context, paymentID string) (txid string, err error) {
	op := p.begin("submit_payment")
	op.fields["payment_id"] = paymentID
	defer func() { p.finish(op, err) }()
	defer p.clearCurrentPayment()

	payment := p.cachedPayment(paymentID)
	if payment == nil {
		payment, err = p.api.GetPayment(ctx, paymentID)
		if err != nil {
			return "", op.fail(err, nil)
		}
		p.setCurrentPayment(payment)
	}
	op.network = payment.Network

	if linked := payment.LinkedTxid(); linked != "" {
		return "", types.NewPaymentError(types.ErrPaymentAlreadyHasLinkedTxid, &types.AdditionalData{
			Data: &types.ErrorData{PaymentID: paymentID, Txid: linked},
		})
	}

	txid, err = p.settlement.Settle(ctx, payment)
	if err != nil {
		return "", op.fail(err, nil)
	}

	op.fields["txid"] = txid
	return txid, nil
}

// CompletePayment ties the payment to the submitted ledger transaction.
func (p *PiNetwork) CompletePayment(ctx context.Context, paymentID, txid string) (payment *types.PaymentDTO, err error) {
	op := p.begin("complete_payment")
	op.fields["payment_id"] = paymentID
	op.fields["txid"] = txid
	defer func() { p.finish(op, err) }()
	defer p.clearCurrentPayment()

	payment, err = p.api.CompletePayment(ctx, paymentID, txid)
	if err != nil {
		return nil, op.fail(err, completeErrorData)
	}

	op.network = payment.Network
	return payment, nil
}

// GetPayment fetches a payment. It leaves the current payment untouched.
func (p *PiNetwork) GetPayment(ctx context.Context, paymentID string) (payment *types.PaymentDTO, err error) {
	op := p.begin("get_payment")
	op.fields["payment_id"] = paymentID
	defer func() { p.finish(op, err) }()

	payment, err = p.api.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, op.fail(err, nil)
	}

	op.network = payment.Network
	return payment, nil
}

// CancelPayment cancels a payment that has no ledger transaction yet.
func (p *PiNetwork) CancelPayment(ctx context.Context, paymentID string) (payment *types.PaymentDTO, err error) {
	op := p.begin("cancel_payment")
	op.fields["payment_id"] = paymentID
	defer func() { p.finish(op, err) }()
	defer p.clearCurrentPayment()

	payment, err = p.api.CancelPayment(ctx, paymentID)
	if err != nil {
		return nil, op.fail(err, cancelErrorData)
	}

	op.network = payment.Network
	return payment, nil
}

// GetIncompleteServerPayments lists app-to-user payments that were created
// but not completed or cancelled.
func (p *PiNetwork) GetIncompleteServerPayments(ctx context.Context) (payments []types.PaymentDTO, err error) {
	op := p.begin("get_incomplete_server_payments")
	defer func() { p.finish(op, err) }()

	payments, err = p.api.GetIncompleteServerPayments(ctx)
	if err != nil {
		// This endpoint has no structured error body.
		op.fields["cause"] = err.Error()
		return nil, types.NewPaymentError(types.ErrUnknown, nil)
	}

	op.fields["count"] = len(payments)
	return payments, nil
}

func (p *PiNetwork) cachedPayment(paymentID string) *types.PaymentDTO {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentPayment != nil && p.currentPayment.Identifier == paymentID {
		return p.currentPayment
	}
	return nil
}

func (p *PiNetwork) setCurrentPayment(payment *types.PaymentDTO) {
	p.mu.Lock()
	p.currentPayment = payment
	p.mu.Unlock()
}

func (p *PiNetwork) clearCurrentPayment() {
	p.setCurrentPayment(nil)
}

type operation struct {
	name    string
	id      string
	start   time.Time
	network types.NetworkPassphrase
	fields  map[string]any
}

func (p *PiNetwork) begin(name string) *operation {
	return &operation{
		name:   name,
		id:     uuid.NewString(),
		start:  time.Now(),
		fields: make(map[string]any),
	}
}

// fail classifies err and keeps the unclassified cause for the log line.
func (op *operation) fail(err error, data errorDataFunc) *types.PaymentError {
	if _, ok := types.AsPaymentError(err); !ok {
		op.fields["cause"] = err.Error()
	}
	return toPaymentError(err, data)
}

func (p *PiNetwork) finish(op *operation, err error) {
	elapsed := time.Since(op.start)
	network := op.network.String()
	p.metrics.ObserveLatency(op.name, elapsed, map[string]string{"network": network})

	fields := map[string]any{
		"op_id":       op.id,
		"duration_ms": elapsed.Milliseconds(),
	}
	for k, v := range op.fields {
		fields[k] = v
	}
	if op.network != "" {
		fields["network"] = op.network.String()
	}

	if err == nil {
		p.metrics.IncCounter(op.name+"_total", map[string]string{"network": network})
		p.logger.Info(op.name+" succeeded", fields)
		return
	}

	code := types.ErrUnknown
	if pe, ok := types.AsPaymentError(err); ok {
		code = pe.Code
	}
	fields["code"] = string(code)
	fields["error"] = err.Error()

	p.metrics.IncCounter(op.name+"_error_total", map[string]string{
		"network": network,
		"code":    string(code),
	})
	p.logger.Error(op.name+" failed", fields)
}
