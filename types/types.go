package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentArgs is the caller's request to create an app-to-user payment.
type PaymentArgs struct {
	// Amount in Pi, at ledger precision.
	Amount decimal.Decimal `json:"amount"`

	// Memo shown to the user.
	Memo string `json:"memo"`

	// Metadata is stored by the platform alongside the payment.
	Metadata map[string]interface{} `json:"metadata"`

	// UID of the user receiving the payment.
	UID string `json:"uid"`
}

// MarshalJSON sends the amount as a JSON number, which is what the platform
// API expects.
func (a PaymentArgs) MarshalJSON() ([]byte, error) {
	type wire struct {
		Amount   json.Number            `json:"amount"`
		Memo     string                 `json:"memo"`
		Metadata map[string]interface{} `json:"metadata"`
		UID      string                 `json:"uid"`
	}
	return json.Marshal(wire{
		Amount:   json.Number(a.Amount.String()),
		Memo:     a.Memo,
		Metadata: a.Metadata,
		UID:      a.UID,
	})
}

// PaymentStatus holds the independent status flags of a payment. Platform and
// user actions may set them asynchronously.
type PaymentStatus struct {
	DeveloperApproved   bool `json:"developer_approved"`
	TransactionVerified bool `json:"transaction_verified"`
	DeveloperCompleted  bool `json:"developer_completed"`
	Cancelled           bool `json:"cancelled"`
	UserCancelled       bool `json:"user_cancelled"`
}

// PaymentTransaction is the ledger transaction linked to a payment.
type PaymentTransaction struct {
	Txid     string `json:"txid"`
	Verified bool   `json:"verified"`
	Link     string `json:"_link"`
}

// PaymentDTO is a payment as known to the platform API.
type PaymentDTO struct {
	Identifier  string                 `json:"identifier"`
	UserUID     string                 `json:"user_uid"`
	Amount      decimal.Decimal        `json:"amount"`
	Memo        string                 `json:"memo"`
	Metadata    map[string]interface{} `json:"metadata"`
	FromAddress string                 `json:"from_address"`
	ToAddress   string                 `json:"to_address"`
	Direction   Direction              `json:"direction"`
	Status      PaymentStatus          `json:"status"`
	Transaction *PaymentTransaction    `json:"transaction"`
	CreatedAt   string                 `json:"created_at"`
	Network     NetworkPassphrase      `json:"network"`
}

// LinkedTxid returns the id of the linked ledger transaction, or "".
func (p *PaymentDTO) LinkedTxid() string {
	if p == nil || p.Transaction == nil {
		return ""
	}
	return p.Transaction.Txid
}

// TransactionData returns the fields the transaction builder needs.
func (p *PaymentDTO) TransactionData() TransactionData {
	return TransactionData{
		Amount:            p.Amount,
		PaymentIdentifier: p.Identifier,
		FromAddress:       p.FromAddress,
		ToAddress:         p.ToAddress,
	}
}

// TransactionData is the projection of a payment used to build the ledger
// transaction.
type TransactionData struct {
	Amount            decimal.Decimal
	PaymentIdentifier string
	FromAddress       string
	ToAddress         string
}

// IncompleteServerPayments is the body of the incomplete payments listing.
type IncompleteServerPayments struct {
	IncompleteServerPayments []PaymentDTO `json:"incomplete_server_payments"`
}
