package types

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// GenesisState is the exported ledger state.
type GenesisState struct {
	ContractInfo *ContractInfo `json:"contract_info,omitempty"`
	NextBountyID uint64        `json:"next_bounty_id"`
	Bounties     []Bounty      `json:"bounties"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		NextBountyID: DefaultStartBountyID,
		Bounties:     []Bounty{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	var result error
	seen := make(map[uint64]struct{}, len(gs.Bounties))
	for _, bounty := range gs.Bounties {
		if _, ok := seen[bounty.ID]; ok {
			result = multierror.Append(result, fmt.Errorf("duplicate bounty id %d", bounty.ID))
			continue
		}
		seen[bounty.ID] = struct{}{}
		if bounty.ID >= gs.NextBountyID {
			result = multierror.Append(result, fmt.Errorf("bounty id %d is not below next_bounty_id %d", bounty.ID, gs.NextBountyID))
		}
		if err := bounty.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}
