package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "bounty"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// ContractName is recorded at instantiation alongside ContractVersion.
	ContractName = "btcq-org:bounty-ledger"

	// ContractVersion is the version of the bounty ledger state layout.
	ContractVersion = "1.0.0"

	// DefaultStartBountyID is the first id handed out when instantiation does
	// not supply one.
	DefaultStartBountyID uint64 = 1
)

var (
	// BountyKeys is the prefix for bounty records, keyed by id
	BountyKeys = collections.NewPrefix("bounty")

	// NextBountyIDKey is the key of the id counter
	NextBountyIDKey = collections.NewPrefix("next_bounty_id")

	// ContractInfoKey is the key of the contract name/version record
	ContractInfoKey = collections.NewPrefix("contract_info")
)
