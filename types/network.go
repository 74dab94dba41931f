package types

// NetworkPassphrase identifies the ledger network a payment settles on.
type NetworkPassphrase string

const (
	NetworkMainnet NetworkPassphrase = "Pi Network"
	NetworkTestnet NetworkPassphrase = "Pi Testnet"
)

func (n NetworkPassphrase) String() string {
	return string(n)
}

// Direction of a payment.
type Direction string

const (
	DirectionUserToApp Direction = "user_to_app"
	DirectionAppToUser Direction = "app_to_user"
)
