package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "custody"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// BalanceKeys is the prefix for account balances, keyed by (address, denom)
var BalanceKeys = collections.NewPrefix("balance")
