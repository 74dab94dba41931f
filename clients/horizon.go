package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/txnbuild"
)

// HorizonLedger implements Ledger against a Horizon server. The context is
// checked before each request only; a request in flight is bounded by the HTTP
// client's timeout.
type HorizonLedger struct {
	client *horizonclient.Client
}

// NewHorizonLedger creates a Ledger for the Horizon server at horizonURL.
func NewHorizonLedger(horizonURL string, httpClient *http.Client) *HorizonLedger {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HorizonLedger{
		client: &horizonclient.Client{
			HorizonURL: horizonURL,
			HTTP:       httpClient,
		},
	}
}

func (h *HorizonLedger) LoadAccount(ctx context.Context, accountID string) (txnbuild.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	account, err := h.client.AccountDetail(horizonclient.AccountRequest{AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return &account, nil
}

func (h *HorizonLedger) FetchBaseFee(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	fee, err := h.client.FetchBaseFee()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch base fee: %w", err)
	}
	return fee, nil
}

func (h *HorizonLedger) FetchTimebounds(ctx context.Context, seconds int64) (txnbuild.TimeBounds, error) {
	if err := ctx.Err(); err != nil {
		return txnbuild.TimeBounds{}, err
	}

	tb, err := h.client.FetchTimebounds(seconds)
	if err != nil {
		return txnbuild.TimeBounds{}, fmt.Errorf("failed to fetch timebounds: %w", err)
	}
	return tb, nil
}

func (h *HorizonLedger) SubmitTransaction(ctx context.Context, tx *txnbuild.Transaction) (*SubmitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The transaction always carries a memo, so the memo-required lookup of
	// the destination account is redundant.
	resp, err := h.client.SubmitTransactionWithOptions(tx, horizonclient.SubmitTxOpts{
		SkipMemoRequiredCheck: true,
	})
	if err != nil {
		if herr := horizonclient.GetError(err); herr != nil {
			codes, cerr := herr.ResultCodes()
			if cerr == nil && codes != nil {
				return &SubmitResult{
					Successful: false,
					ResultCodes: &ResultCodes{
						Transaction: codes.TransactionCode,
						Operations:  codes.OperationCodes,
					},
				}, nil
			}
		}
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}

	return &SubmitResult{
		Successful: resp.Successful,
		ID:         resp.ID,
	}, nil
}
