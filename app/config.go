package app

import (
	"github.com/btcq-org/bounty/common"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// DefaultChainID is reported in the block info of every invocation unless
	// the host is configured otherwise.
	DefaultChainID = "bounty-local-1"
)

func init() {
	sdk.DefaultBondDenom = common.DefaultDenom

	// Set address prefixes
	accountPubKeyPrefix := common.AccountAddressPrefix + "pub"
	validatorAddressPrefix := common.AccountAddressPrefix + "valoper"
	validatorPubKeyPrefix := common.AccountAddressPrefix + "valoperpub"
	consNodeAddressPrefix := common.AccountAddressPrefix + "valcons"
	consNodePubKeyPrefix := common.AccountAddressPrefix + "valconspub"

	// Set and seal config
	config := sdk.GetConfig()
	config.SetBech32PrefixForAccount(common.AccountAddressPrefix, accountPubKeyPrefix)
	config.SetBech32PrefixForValidator(validatorAddressPrefix, validatorPubKeyPrefix)
	config.SetBech32PrefixForConsensusNode(consNodeAddressPrefix, consNodePubKeyPrefix)
	config.Seal()
}
