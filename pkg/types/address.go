// Package types holds the Quai-specific value types shared by the wallet,
// the RPC client and the shell.
package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a 20-byte Quai account address.
type Address = common.Address

// Zone identifies one of the nine Quai execution shards. The value is the
// first byte an address must carry to live in that zone: high nibble is the
// region, low nibble the zone within the region.
type Zone byte

// Quai zones.
const (
	Cyprus1 Zone = 0x00
	Cyprus2 Zone = 0x01
	Cyprus3 Zone = 0x02
	Paxos1  Zone = 0x10
	Paxos2  Zone = 0x11
	Paxos3  Zone = 0x12
	Hydra1  Zone = 0x20
	Hydra2  Zone = 0x21
	Hydra3  Zone = 0x22
)

var zoneNames = map[Zone]string{
	Cyprus1: "cyprus1",
	Cyprus2: "cyprus2",
	Cyprus3: "cyprus3",
	Paxos1:  "paxos1",
	Paxos2:  "paxos2",
	Paxos3:  "paxos3",
	Hydra1:  "hydra1",
	Hydra2:  "hydra2",
	Hydra3:  "hydra3",
}

// String returns the lowercase zone name, e.g. "cyprus1".
func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("zone(0x%02x)", byte(z))
}

// Valid reports whether z is one of the nine known zones.
func (z Zone) Valid() bool {
	_, ok := zoneNames[z]
	return ok
}

// ParseZone parses a zone name ("cyprus1") or its hex byte ("0x00").
func ParseZone(s string) (Zone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for z, name := range zoneNames {
		if s == name || s == fmt.Sprintf("0x%02x", byte(z)) {
			return z, nil
		}
	}
	return 0, fmt.Errorf("unknown zone %q", s)
}

// ZoneOf returns the zone encoded in the first byte of addr.
func ZoneOf(addr Address) Zone {
	return Zone(addr[0])
}

// IsQuaiLedger reports whether addr belongs to the Quai (account) ledger
// rather than the Qi (UTXO) ledger: bit 7 of the second byte is clear.
func IsQuaiLedger(addr Address) bool {
	return addr[1]&0x80 == 0
}

// InZone reports whether addr is a Quai-ledger address in zone z.
func InZone(addr Address, z Zone) bool {
	return ZoneOf(addr) == z && IsQuaiLedger(addr)
}

// ParseAddress parses a 0x-prefixed hex address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// SameAddress compares two address strings case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
