package common

import (
	"fmt"
	"strings"

	"github.com/cosmos/btcutil/bech32"
	sdk "github.com/cosmos/cosmos-sdk/types"
	bech32types "github.com/cosmos/cosmos-sdk/types/bech32"
)

type Address string

const NoAddress = Address("")

// NewAddress accepts a bech32 account address carrying AccountAddressPrefix.
// The empty string is NoAddress.
func NewAddress(address string) (Address, error) {
	address = strings.TrimSpace(address)
	if len(address) == 0 {
		return NoAddress, nil
	}
	hrp, _, err := bech32.DecodeNoLimit(address)
	if err != nil {
		return NoAddress, fmt.Errorf("address format not supported: %s", address)
	}
	if hrp != AccountAddressPrefix {
		return NoAddress, fmt.Errorf("address prefix %s not supported: %s", hrp, address)
	}
	return Address(strings.ToLower(address)), nil
}

// AddressFromAcc encodes an account address with AccountAddressPrefix.
func AddressFromAcc(acc sdk.AccAddress) (Address, error) {
	str, err := bech32types.ConvertAndEncode(AccountAddressPrefix, acc)
	if err != nil {
		return NoAddress, err
	}
	return Address(str), nil
}

func (addr Address) AccAddress() (sdk.AccAddress, error) {
	_, bz, err := bech32types.DecodeAndConvert(addr.String())
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(bz), nil
}

func (addr Address) Equals(addr2 Address) bool {
	return addr.String() == addr2.String()
}

func (addr Address) IsEmpty() bool {
	return strings.TrimSpace(addr.String()) == ""
}

func (addr Address) String() string {
	return string(addr)
}
