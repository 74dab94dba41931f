package settlement

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/stellar/go/txnbuild"
	"github.com/vitwit/pinetwork/clients"
	"github.com/vitwit/pinetwork/config"
	"github.com/vitwit/pinetwork/types"
)

// LedgerFactory returns the Ledger for a Horizon server URL.
type LedgerFactory func(horizonURL string) clients.Ledger

// SettlementService builds, signs and submits app-to-user payments on the
// network each payment belongs to.
type SettlementService struct {
	builder   *TransactionBuilder
	config    *config.Config
	newLedger LedgerFactory

	mu      sync.Mutex
	ledgers map[string]clients.Ledger
}

// NewSettlementService creates a new settlement service
func NewSettlementService(builder *TransactionBuilder, cfg *config.Config, factory LedgerFactory) *SettlementService {
	return &SettlementService{
		builder:   builder,
		config:    cfg,
		newLedger: factory,
		ledgers:   make(map[string]clients.Ledger),
	}
}

// Settle pays out payment on its ledger network and returns the transaction id.
func (s *SettlementService) Settle(ctx context.Context, payment *types.PaymentDTO) (string, error) {
	ledger := s.ledgerFor(payment.Network)

	tx, err := s.builder.BuildA2UTransaction(ctx, ledger, payment.TransactionData(), payment.Network)
	if err != nil {
		return "", err
	}

	return SubmitTransaction(ctx, ledger, tx)
}

func (s *SettlementService) ledgerFor(network types.NetworkPassphrase) clients.Ledger {
	url := s.config.HorizonURL(network)

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgers[url]
	if !ok {
		ledger = s.newLedger(url)
		s.ledgers[url] = ledger
	}
	return ledger
}

// SubmitTransaction submits tx and returns its id. A rejected transaction is
// reported with the most specific ledger result code available.
func SubmitTransaction(ctx context.Context, ledger clients.Ledger, tx *txnbuild.Transaction) (string, error) {
	res, err := ledger.SubmitTransaction(ctx, tx)
	if err != nil {
		return "", err
	}

	if !res.Successful {
		return "", ResultCodeError(res.ResultCodes)
	}

	if res.ID == "" {
		return "", types.NewPaymentError(types.ErrUnknown, &types.AdditionalData{
			MessageOverride: "Transaction was submitted but no transaction id was returned.",
		})
	}

	return res.ID, nil
}

// ResultCodeError picks the first operation code, then the transaction code.
// Codes outside the catalog become unknown_error with the raw codes in the
// message.
func ResultCodeError(codes *clients.ResultCodes) *types.PaymentError {
	if codes == nil {
		return types.NewPaymentError(types.ErrUnknown, nil)
	}

	if len(codes.Operations) > 0 {
		if code := types.ErrorCode(codes.Operations[0]); types.IsLedgerResultCode(code) {
			return types.NewPaymentError(code, nil)
		}
	}

	if code := types.ErrorCode(codes.Transaction); types.IsLedgerResultCode(code) {
		return types.NewPaymentError(code, nil)
	}

	var raw []string
	for _, c := range append([]string{codes.Transaction}, codes.Operations...) {
		if c != "" {
			raw = append(raw, c)
		}
	}
	if len(raw) == 0 {
		return types.NewPaymentError(types.ErrUnknown, nil)
	}
	return types.NewPaymentError(types.ErrUnknown, &types.AdditionalData{
		MessageOverride: fmt.Sprintf("Transaction failed with result codes: %s", strings.Join(raw, ", ")),
	})
}
