package wallet

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/log"
	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

// MaxAddressScan bounds the child index search in DeriveAccount.
const MaxAddressScan = 10_000

// Account is one derived signing address.
type Account struct {
	Account uint32
	Index   uint32
	Zone    types.Zone
	Address types.Address

	key *HDKey
}

// PrivateKey returns the signing key of the account.
func (a *Account) PrivateKey() (*ecdsa.PrivateKey, error) {
	if a.key == nil {
		return nil, fmt.Errorf("account %s has no private key", a.Address.Hex())
	}
	return a.key.PrivateKey()
}

// DeriveAccount returns the first address of account that lives in zone on
// the Quai ledger, scanning child indices from zero. The BIP-39 passphrase
// selects the wallet: empty for the main wallet, non-empty for a derived one.
func DeriveAccount(mnemonic, passphrase string, account uint32, zone types.Zone) (*Account, error) {
	if !zone.Valid() {
		return nil, fmt.Errorf("%w: unknown zone 0x%02x", ErrValidation, byte(zone))
	}
	defer log.Benchmark("derive account")()

	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	chain, err := master.DeriveExternalChain(account)
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < MaxAddressScan; i++ {
		child, err := chain.DeriveChild(i)
		if err != nil {
			return nil, err
		}
		addr, err := child.Address()
		if err != nil {
			return nil, err
		}
		if types.InZone(addr, zone) {
			log.Wallet.Debug().
				Uint32("account", account).
				Uint32("index", i).
				Str("zone", zone.String()).
				Msg("Derived address")
			return &Account{
				Account: account,
				Index:   i,
				Zone:    zone,
				Address: addr,
				key:     child,
			}, nil
		}
	}
	return nil, fmt.Errorf("no %s address found in the first %d indices of account %d", zone, MaxAddressScan, account)
}
