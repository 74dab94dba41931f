package clients

import (
	"errors"
	"fmt"

	"github.com/vitwit/pinetwork/types"
)

// APIError is a structured error body returned by the platform API.
type APIError struct {
	StatusCode        int
	Code              string
	Message           string
	Payment           *types.PaymentDTO
	VerificationError string
}

type apiErrorResponse struct {
	Error             string            `json:"error"`
	ErrorMessage      string            `json:"error_message"`
	Payment           *types.PaymentDTO `json:"payment,omitempty"`
	VerificationError string            `json:"verification_error,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
