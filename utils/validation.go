package utils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
	"github.com/vitwit/pinetwork/types"
)

const walletPrivateSeedLength = 56

// ValidateAPIKey checks the platform API key given to the constructor.
func ValidateAPIKey(apiKey interface{}) error {
	if isEmpty(apiKey) {
		return types.NewPaymentError(types.ErrMissingAPIKey, nil)
	}
	if _, ok := apiKey.(string); !ok {
		return types.NewPaymentError(types.ErrAPIKeyNotString, nil)
	}
	return nil
}

// ValidateSeedFormat checks the app wallet secret seed. Cheaper checks run
// first; the checksum is verified last.
func ValidateSeedFormat(seed interface{}) error {
	if isEmpty(seed) {
		return types.NewPaymentError(types.ErrMissingWalletPrivateSeed, nil)
	}

	s, ok := seed.(string)
	if !ok {
		return types.NewPaymentError(types.ErrWalletPrivateSeedNotString, nil)
	}

	if !strings.HasPrefix(s, "S") {
		return types.NewPaymentError(types.ErrWalletPrivateSeedNotStartsWithS, nil)
	}

	if len(s) != walletPrivateSeedLength {
		return types.NewPaymentError(types.ErrWalletPrivateSeedNot56CharsLong, nil)
	}

	if !strkey.IsValidEd25519SecretSeed(s) {
		return types.NewPaymentError(types.ErrInvalidWalletPrivateSeed, nil)
	}

	return nil
}

// ValidatePaymentData checks payment creation input. data may be a
// types.PaymentArgs (or pointer to one) or a decoded JSON object. Each field
// is checked for presence, then type, stopping at the first violation.
func ValidatePaymentData(data interface{}) error {
	fields, ok := paymentFields(data)
	if !ok {
		return types.NewPaymentError(types.ErrPaymentDataNotObject, nil)
	}

	amount, ok := fields["amount"]
	if !ok {
		return types.NewPaymentError(types.ErrMissingAmount, nil)
	}
	if !isNumber(amount) {
		return types.NewPaymentError(types.ErrAmountNotNumber, nil)
	}

	memo, ok := fields["memo"]
	if !ok {
		return types.NewPaymentError(types.ErrMissingMemo, nil)
	}
	if _, isString := memo.(string); !isString {
		return types.NewPaymentError(types.ErrMemoNotString, nil)
	}

	metadata, ok := fields["metadata"]
	if !ok {
		return types.NewPaymentError(types.ErrMissingMetadata, nil)
	}
	if !isObject(metadata) {
		return types.NewPaymentError(types.ErrMetadataNotObject, nil)
	}

	uid, ok := fields["uid"]
	if !ok {
		return types.NewPaymentError(types.ErrMissingUID, nil)
	}
	if _, isString := uid.(string); !isString {
		return types.NewPaymentError(types.ErrUIDNotString, nil)
	}

	return nil
}

// paymentFields returns the present fields of data as a JSON-like object.
// A struct always has amount, memo and uid; only a nil Metadata is absent.
func paymentFields(data interface{}) (map[string]interface{}, bool) {
	switch v := data.(type) {
	case map[string]interface{}:
		return v, v != nil
	case *types.PaymentArgs:
		if v == nil {
			return nil, false
		}
		return argsFields(*v), true
	case types.PaymentArgs:
		return argsFields(v), true
	default:
		return nil, false
	}
}

func argsFields(args types.PaymentArgs) map[string]interface{} {
	fields := map[string]interface{}{
		"amount": args.Amount,
		"memo":   args.Memo,
		"uid":    args.UID,
	}
	if args.Metadata != nil {
		fields["metadata"] = args.Metadata
	}
	return fields
}

func isNumber(v interface{}) bool {
	switch n := v.(type) {
	case decimal.Decimal, float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	case *decimal.Decimal:
		return n != nil
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}

// isObject accepts key/value objects only; arrays cannot decode into
// PaymentArgs.Metadata.
func isObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	return ok && m != nil
}

// isEmpty mirrors a falsy check: nil, "", 0, false and nil pointers.
func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
