package pinetwork

import (
	"github.com/vitwit/pinetwork/clients"
	"github.com/vitwit/pinetwork/types"
)

// errorDataFunc selects the payload an API error carries for one endpoint.
// The platform's error bodies differ per endpoint.
type errorDataFunc func(apiErr *clients.APIError) *types.ErrorData

// toPaymentError classifies err: a *types.PaymentError is returned
// unchanged, a structured platform error keeps its code and message, and
// anything else becomes unknown_error.
func toPaymentError(err error, data errorDataFunc) *types.PaymentError {
	if pe, ok := types.AsPaymentError(err); ok {
		return pe
	}

	if apiErr, ok := clients.IsAPIError(err); ok {
		extra := &types.AdditionalData{MessageOverride: apiErr.Message}
		if data != nil {
			extra.Data = data(apiErr)
		}
		return types.NewPaymentError(types.ErrorCode(apiErr.Code), extra)
	}

	return types.NewPaymentError(types.ErrUnknown, nil)
}

func createErrorData(apiErr *clients.APIError) *types.ErrorData {
	if types.ErrorCode(apiErr.Code) == types.ErrOngoingPaymentFound {
		return &types.ErrorData{Payment: apiErr.Payment}
	}
	return nil
}

func completeErrorData(apiErr *clients.APIError) *types.ErrorData {
	if types.ErrorCode(apiErr.Code) == types.ErrVerificationFailed {
		return &types.ErrorData{VerificationError: apiErr.VerificationError}
	}
	return nil
}

func cancelErrorData(apiErr *clients.APIError) *types.ErrorData {
	switch types.ErrorCode(apiErr.Code) {
	case types.ErrAlreadyCompleted, types.ErrCancelledPayment, types.ErrForbidden:
		return &types.ErrorData{Payment: apiErr.Payment}
	}
	return nil
}
