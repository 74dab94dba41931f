package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vitwit/pinetwork/types"
)

// ParsePaymentArgs decodes payment creation input from JSON, applying the
// same checks as ValidatePaymentData before decoding into PaymentArgs.
func ParsePaymentArgs(data []byte) (*types.PaymentArgs, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, types.NewPaymentError(types.ErrPaymentDataNotObject, &types.AdditionalData{
			MessageOverride: fmt.Sprintf("failed to parse payment data: %v", err),
		})
	}

	if err := ValidatePaymentData(raw); err != nil {
		return nil, err
	}

	var args types.PaymentArgs
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, types.NewPaymentError(types.ErrAmountNotNumber, &types.AdditionalData{
			MessageOverride: fmt.Sprintf("failed to decode payment data: %v", err),
		})
	}

	return &args, nil
}
