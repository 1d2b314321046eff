package testutil

import (
	"github.com/btcq-org/bounty/common"
	"github.com/cometbft/cometbft/crypto"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// GetRandomAccAddress returns a random account address for test purpose.
func GetRandomAccAddress() sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(common.RandHexString(10))))
}

// GetRandomBech32Address returns a random account address encoded with the
// chain's account prefix.
func GetRandomBech32Address() string {
	str, _ := bech32.ConvertAndEncode(common.AccountAddressPrefix, GetRandomAccAddress())
	return str
}

// Bech32 encodes addr with the chain's account prefix.
func Bech32(addr sdk.AccAddress) string {
	str, _ := bech32.ConvertAndEncode(common.AccountAddressPrefix, addr)
	return str
}
