package common

import (
	"crypto/rand"
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// AccountAddressPrefix is the bech32 human readable part of account addresses
	AccountAddressPrefix = "bounty"

	// DefaultDenom is the denom used by the CLI when none is given
	DefaultDenom = "ubty"
)

// RandHexString returns a random hex string of length n.
func RandHexString(n int) string {
	bz := make([]byte, (n+1)/2)
	if _, err := rand.Read(bz); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bz)[:n]
}

// ParseCoins parses a comma separated coin list such as "500ubty,10stake".
// An empty string is an empty list.
func ParseCoins(s string) (sdk.Coins, error) {
	if s == "" {
		return sdk.NewCoins(), nil
	}
	return sdk.ParseCoinsNormalized(s)
}
