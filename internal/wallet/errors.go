package wallet

import "errors"

// Error kinds returned by the wallet. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrValidation marks malformed user input: a short seed phrase, an
	// empty password, a bad amount or address.
	ErrValidation = errors.New("invalid input")

	// ErrAuthentication is returned when a record cannot be decrypted with
	// the supplied password.
	ErrAuthentication = errors.New("incorrect password or corrupted record")

	// ErrCorruptRecord is returned when the record file is missing fields or
	// holds malformed values.
	ErrCorruptRecord = errors.New("corrupt secret record")

	// ErrInsufficientFunds is returned before broadcast when the amount
	// exceeds the on-chain balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnsupportedChain is returned before signing when the endpoint
	// cannot decode the typed transaction envelopes Transfer produces.
	ErrUnsupportedChain = errors.New("endpoint does not accept typed transaction envelopes")

	// ErrTransferFailed is returned by Wait when the transaction was mined
	// but reverted.
	ErrTransferFailed = errors.New("transaction failed")
)
