package sdk

import "strings"

type AddressDomain string

const (
	AddressDomainUser     AddressDomain = "user"
	AddressDomainContract AddressDomain = "contract"
	AddressDomainSystem   AddressDomain = "system"
)

// TreasuryAddress is the ledger account holding the pooled charity funds.
const TreasuryAddress Address = "system:treasury"

type Address string

// String returns the literal representation (like alice or contract:faucet) of the address.
// Example payload: sdk.Address("alice").String()
func (a Address) String() string {
	return string(a)
}

// Domain checks the prefix to tell user accounts from contract or system accounts.
// Example payload: sdk.Address("contract:lottery").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), "contract:") {
		return AddressDomainContract
	}
	return AddressDomainUser
}

// IsValid is a light sanity check: non-empty, no whitespace and no payload delimiters.
// Example payload: sdk.Address("bob").IsValid()
func (a Address) IsValid() bool {
	s := a.String()
	if s == "" || len(s) > 256 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n|")
}
