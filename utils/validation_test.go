package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/pinetwork/types"
)

func codeOf(t *testing.T, err error) types.ErrorCode {
	t.Helper()
	if err == nil {
		return ""
	}
	pe, ok := types.AsPaymentError(err)
	require.True(t, ok, "expected *types.PaymentError, got %v", err)
	return pe.Code
}

func TestValidateAPIKey(t *testing.T) {
	assert.Equal(t, types.ErrMissingAPIKey, codeOf(t, ValidateAPIKey(nil)))
	assert.Equal(t, types.ErrMissingAPIKey, codeOf(t, ValidateAPIKey("")))
	assert.Equal(t, types.ErrAPIKeyNotString, codeOf(t, ValidateAPIKey(42)))
	assert.NoError(t, ValidateAPIKey("key"))
}

func TestValidateSeedFormat(t *testing.T) {
	seed := keypair.MustRandom().Seed()
	last := "A"
	if seed[55] == 'A' {
		last = "B"
	}

	tests := []struct {
		name string
		seed interface{}
		want types.ErrorCode
	}{
		{"nil", nil, types.ErrMissingWalletPrivateSeed},
		{"empty", "", types.ErrMissingWalletPrivateSeed},
		{"not a string", 12345, types.ErrWalletPrivateSeedNotString},
		{"prefix checked before length", "GABC", types.ErrWalletPrivateSeedNotStartsWithS},
		{"too short", "S123", types.ErrWalletPrivateSeedNot56CharsLong},
		{"too long", seed + "A", types.ErrWalletPrivateSeedNot56CharsLong},
		{"bad checksum", seed[:55] + last, types.ErrInvalidWalletPrivateSeed},
		{"valid", seed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codeOf(t, ValidateSeedFormat(tt.seed)))
		})
	}
}

func TestValidatePaymentData(t *testing.T) {
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"amount":   1.5,
			"memo":     "refund",
			"metadata": map[string]interface{}{},
			"uid":      "user-1",
		}
	}
	with := func(key string, value interface{}) map[string]interface{} {
		m := valid()
		m[key] = value
		return m
	}
	without := func(keys ...string) map[string]interface{} {
		m := valid()
		for _, k := range keys {
			delete(m, k)
		}
		return m
	}

	tests := []struct {
		name string
		data interface{}
		want types.ErrorCode
	}{
		{"not an object", "payment", types.ErrPaymentDataNotObject},
		{"nil", nil, types.ErrPaymentDataNotObject},
		{"missing amount", without("amount"), types.ErrMissingAmount},
		{"amount string", with("amount", "1.5"), types.ErrAmountNotNumber},
		{"missing memo", without("memo"), types.ErrMissingMemo},
		{"memo number", with("memo", 7), types.ErrMemoNotString},
		{"missing metadata", without("metadata"), types.ErrMissingMetadata},
		{"metadata string", with("metadata", "x"), types.ErrMetadataNotObject},
		{"missing uid", without("uid"), types.ErrMissingUID},
		{"uid number", with("uid", 9), types.ErrUIDNotString},
		{"amount checked first", without("amount", "uid"), types.ErrMissingAmount},
		{"valid map", valid(), ""},
		{"empty memo allowed", with("memo", ""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codeOf(t, ValidatePaymentData(tt.data)))
		})
	}
}

func TestValidatePaymentArgs(t *testing.T) {
	with := func(key string, value interface{}) map[string]interface{} {
		m := map[string]interface{}{
			"amount":   1,
			"memo":     "m",
			"metadata": map[string]interface{}{},
			"uid":      "u",
		}
		m[key] = value
		return m
	}
	args := types.PaymentArgs{
		Amount:   decimal.RequireFromString("0.25"),
		Memo:     "refund",
		Metadata: map[string]interface{}{"order": 1},
		UID:      "user-1",
	}
	assert.NoError(t, ValidatePaymentData(args))
	assert.NoError(t, ValidatePaymentData(&args))

	noMeta := args
	noMeta.Metadata = nil
	assert.Equal(t, types.ErrMissingMetadata, codeOf(t, ValidatePaymentData(noMeta)))

	// A typed struct always carries amount, memo and uid, as a decoded
	// object with those keys does.
	zeroAmount := args
	zeroAmount.Amount = decimal.Zero
	assert.NoError(t, ValidatePaymentData(zeroAmount))
	assert.NoError(t, ValidatePaymentData(with("amount", 0)))

	emptyUID := args
	emptyUID.UID = ""
	assert.NoError(t, ValidatePaymentData(emptyUID))
	assert.NoError(t, ValidatePaymentData(with("uid", "")))

	var nilArgs *types.PaymentArgs
	assert.Equal(t, types.ErrPaymentDataNotObject, codeOf(t, ValidatePaymentData(nilArgs)))
}

func TestParsePaymentArgs(t *testing.T) {
	args, err := ParsePaymentArgs([]byte(`{"amount": 3.14, "memo": "m", "metadata": {"k": "v"}, "uid": "u"}`))
	require.NoError(t, err)
	assert.True(t, args.Amount.Equal(decimal.RequireFromString("3.14")))
	assert.Equal(t, "u", args.UID)
	assert.Equal(t, "v", args.Metadata["k"])

	_, err = ParsePaymentArgs([]byte(`{"amount": "3.14", "memo": "m", "metadata": {}, "uid": "u"}`))
	assert.Equal(t, types.ErrAmountNotNumber, codeOf(t, err))

	zero, err := ParsePaymentArgs([]byte(`{"amount": 0, "memo": "", "metadata": {}, "uid": ""}`))
	require.NoError(t, err)
	assert.NoError(t, ValidatePaymentData(zero))

	_, err = ParsePaymentArgs([]byte(`{"amount": 1, "memo": "m", "metadata": [], "uid": "u"}`))
	assert.Equal(t, types.ErrMetadataNotObject, codeOf(t, err))

	_, err = ParsePaymentArgs([]byte(`[1, 2]`))
	assert.Equal(t, types.ErrPaymentDataNotObject, codeOf(t, err))

	_, err = ParsePaymentArgs([]byte(`{not json`))
	assert.Equal(t, types.ErrPaymentDataNotObject, codeOf(t, err))
}
