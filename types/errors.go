package types

import (
	"errors"
	"fmt"
)

// ErrorCode identifies one entry of the closed payment error catalog.
type ErrorCode string

// Local validation codes
const (
	ErrMissingAPIKey                   ErrorCode = "missing_api_key"
	ErrAPIKeyNotString                 ErrorCode = "api_key_not_string"
	ErrMissingWalletPrivateSeed        ErrorCode = "missing_wallet_private_seed"
	ErrWalletPrivateSeedNotString      ErrorCode = "wallet_private_seed_not_string"
	ErrWalletPrivateSeedNotStartsWithS ErrorCode = "wallet_private_seed_not_starts_with_S"
	ErrWalletPrivateSeedNot56CharsLong ErrorCode = "wallet_private_seed_not_56_chars_long"
	ErrInvalidWalletPrivateSeed        ErrorCode = "invalid_wallet_private_seed"
	ErrPaymentDataNotObject            ErrorCode = "payment_data_not_object"
	ErrMissingAmount                   ErrorCode = "missing_amount"
	ErrAmountNotNumber                 ErrorCode = "amount_not_number"
	ErrMissingMemo                     ErrorCode = "missing_memo"
	ErrMemoNotString                   ErrorCode = "memo_not_string"
	ErrMissingMetadata                 ErrorCode = "missing_metadata"
	ErrMetadataNotObject               ErrorCode = "metadata_not_object"
	ErrMissingUID                      ErrorCode = "missing_uid"
	ErrUIDNotString                    ErrorCode = "uid_not_string"
	ErrPrivateSeedMismatch             ErrorCode = "private_seed_mismatch"
	ErrPaymentAlreadyHasLinkedTxid     ErrorCode = "payment_already_has_linked_txid"
)

// Ledger transaction result codes
const (
	ErrTxFailed              ErrorCode = "tx_failed"
	ErrTxTooEarly            ErrorCode = "tx_too_early"
	ErrTxTooLate             ErrorCode = "tx_too_late"
	ErrTxMissingOperation    ErrorCode = "tx_missing_operation"
	ErrTxBadSeq              ErrorCode = "tx_bad_seq"
	ErrTxBadAuth             ErrorCode = "tx_bad_auth"
	ErrTxInsufficientBalance ErrorCode = "tx_insufficient_balance"
	ErrTxNoSourceAccount     ErrorCode = "tx_no_source_accout"
	ErrTxInsufficientFee     ErrorCode = "tx_insufficient_fee"
	ErrTxBadAuthExtra        ErrorCode = "tx_bad_auth_extra"
	ErrTxInternalError       ErrorCode = "tx_internal_error"
)

// Ledger operation result codes
const (
	ErrOpBadAuth           ErrorCode = "op_bad_auth"
	ErrOpNoSourceAccount   ErrorCode = "op_no_source_account"
	ErrOpNotSupported      ErrorCode = "op_not_supported"
	ErrOpTooManySubentries ErrorCode = "op_too_many_subentries"
	ErrOpExceededWorkLimit ErrorCode = "op_exceeded_work_limit"
)

// Platform API codes. Their messages come from the remote side.
const (
	ErrPaymentNotFound          ErrorCode = "payment_not_found"
	ErrAlteredAmount            ErrorCode = "altered_amount"
	ErrInvalidAddress           ErrorCode = "invalid_address"
	ErrMissingScope             ErrorCode = "missing_scope"
	ErrMissingWallet            ErrorCode = "missing_wallet"
	ErrOngoingPaymentFound      ErrorCode = "ongoing_payment_found"
	ErrFeatureNotAvailable      ErrorCode = "feature_not_available"
	ErrTooManyCancelledPayments ErrorCode = "too_many_cancelled_payments"
	ErrTooManyPayments          ErrorCode = "too_many_payments"
	ErrUserNotFound             ErrorCode = "user_not_found"
	ErrInvalidAmount            ErrorCode = "invalid_amount"
	ErrInvalidArguments         ErrorCode = "invalid_arguments"
	ErrInvalidMetadata          ErrorCode = "invalid_metadata"
	ErrAlreadyCompleted         ErrorCode = "already_completed"
	ErrCancelledPayment         ErrorCode = "cancelled_payment"
	ErrMissingParam             ErrorCode = "missing_param"
	ErrMissingTxid              ErrorCode = "missing_txid"
	ErrNotVerified              ErrorCode = "not_verified"
	ErrTxidMismatch             ErrorCode = "txid_mismatch"
	ErrVerificationFailed       ErrorCode = "verification_failed"
	ErrForbidden                ErrorCode = "forbidden"
	ErrPaymentTxPresent         ErrorCode = "payment_tx_present"
	ErrUnknown                  ErrorCode = "unknown_error"
)

const unknownErrorMessage = "Unknown error"

var errorMessages = map[ErrorCode]string{
	ErrAmountNotNumber:                 "Amount must be a number.",
	ErrAPIKeyNotString:                 "API key must be a string.",
	ErrInvalidWalletPrivateSeed:        "Invalid wallet private seed.",
	ErrMemoNotString:                   "Memo must be a string.",
	ErrMetadataNotObject:               "Metadata must be an object.",
	ErrMissingAmount:                   "Missing amount.",
	ErrMissingAPIKey:                   "Missing API key.",
	ErrMissingMemo:                     "Missing memo.",
	ErrMissingMetadata:                 "Missing metadata.",
	ErrMissingUID:                      "Missing uid.",
	ErrMissingWalletPrivateSeed:        "Missing wallet private seed.",
	ErrPaymentAlreadyHasLinkedTxid:     "This payment already has a linked txid.",
	ErrPaymentDataNotObject:            "Payment data must be an object.",
	ErrPrivateSeedMismatch:             "You should use a private seed of your app wallet.",
	ErrUIDNotString:                    "Uid must be a string.",
	ErrWalletPrivateSeedNot56CharsLong: "Wallet private seed must be 56-character long.",
	ErrWalletPrivateSeedNotStartsWithS: "Wallet private seed must starts with 'S'.",
	ErrWalletPrivateSeedNotString:      "Wallet private seed must be a string.",

	ErrTxFailed:              "Transaction failed.",
	ErrTxTooEarly:            "Transaction submitted too early.",
	ErrTxTooLate:             "Transaction submitted too late.",
	ErrTxMissingOperation:    "Transaction is missing operation.",
	ErrTxBadSeq:              "Transaction was submitted with invalid sequence number.",
	ErrTxBadAuth:             "Transaction contains too few valid signatures.",
	ErrTxInsufficientBalance: "Source account doesn't have enough balance for this transaction.",
	ErrTxNoSourceAccount:     "Transaction has no source account.",
	ErrTxInsufficientFee:     "Transaction was submitted with insufficient fee.",
	ErrTxBadAuthExtra:        "Transaction contains unused signatures attached.",
	ErrTxInternalError:       "Transaction internal error.",

	ErrOpBadAuth:           "Transaction contains too few valid signatures or was submitted to the wrong network.",
	ErrOpNoSourceAccount:   "Operation is missing source account.",
	ErrOpNotSupported:      "Operation is not supported.",
	ErrOpTooManySubentries: "Account reached max number (1000) of subentries.",
	ErrOpExceededWorkLimit: "Operation exceeded the work limit.",
}

// DefaultMessage returns the canonical message for code, or "Unknown error"
// for codes whose text is supplied by the platform API.
func DefaultMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return unknownErrorMessage
}

// ErrorData is the optional payload carried by a PaymentError.
type ErrorData struct {
	Payment           *PaymentDTO
	PaymentID         string
	Txid              string
	VerificationError string
}

// AdditionalData is the optional argument bag of NewPaymentError.
type AdditionalData struct {
	Data            *ErrorData
	MessageOverride string
}

// PaymentError is the only error type returned by the public payment
// operations. Callers branch on Code; Message is for display.
type PaymentError struct {
	Code              ErrorCode   `json:"code"`
	Message           string      `json:"message"`
	Payment           *PaymentDTO `json:"payment,omitempty"`
	PaymentID         string      `json:"paymentId,omitempty"`
	Txid              string      `json:"txid,omitempty"`
	VerificationError string      `json:"verificationError,omitempty"`
}

// NewPaymentError builds a PaymentError for code. extra may be nil.
func NewPaymentError(code ErrorCode, extra *AdditionalData) *PaymentError {
	e := &PaymentError{Code: code, Message: DefaultMessage(code)}
	if extra == nil {
		return e
	}
	if extra.MessageOverride != "" {
		e.Message = extra.MessageOverride
	}
	if d := extra.Data; d != nil {
		e.Payment = d.Payment
		e.PaymentID = d.PaymentID
		e.Txid = d.Txid
		e.VerificationError = d.VerificationError
	}
	return e
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a PaymentError with the same code.
func (e *PaymentError) Is(target error) bool {
	other, ok := target.(*PaymentError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// AsPaymentError unwraps err into a *PaymentError if it is one.
func AsPaymentError(err error) (*PaymentError, bool) {
	var pe *PaymentError
	ok := errors.As(err, &pe)
	return pe, ok
}

// IsLedgerResultCode reports whether code mirrors a ledger transaction or
// operation result.
func IsLedgerResultCode(code ErrorCode) bool {
	switch code {
	case ErrTxFailed, ErrTxTooEarly, ErrTxTooLate, ErrTxMissingOperation, ErrTxBadSeq,
		ErrTxBadAuth, ErrTxInsufficientBalance, ErrTxNoSourceAccount, ErrTxInsufficientFee,
		ErrTxBadAuthExtra, ErrTxInternalError,
		ErrOpBadAuth, ErrOpNoSourceAccount, ErrOpNotSupported, ErrOpTooManySubentries,
		ErrOpExceededWorkLimit:
		return true
	}
	return false
}
