package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"github.com/btcq-org/bounty/x/bounty/types"
)

// InitGenesis initializes the module's state from a provided genesis state.
// A zero NextBountyID leaves the ledger uninstantiated.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid bounty genesis: %w", err)
	}
	if genState.ContractInfo != nil {
		if err := k.ContractInfo.Set(ctx, *genState.ContractInfo); err != nil {
			return fmt.Errorf("failed to set contract info: %w", err)
		}
	}
	if genState.NextBountyID != 0 {
		if err := k.NextBountyID.Set(ctx, genState.NextBountyID); err != nil {
			return fmt.Errorf("failed to set next bounty id: %w", err)
		}
	}
	for _, bounty := range genState.Bounties {
		if err := k.Bounties.Set(ctx, bounty.ID, bounty); err != nil {
			return fmt.Errorf("failed to set bounty %d: %w", bounty.ID, err)
		}
	}
	return nil
}

// ExportGenesis returns the module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := &types.GenesisState{Bounties: []types.Bounty{}}

	info, err := k.ContractInfo.Get(ctx)
	switch {
	case err == nil:
		genesis.ContractInfo = &info
	case !errors.Is(err, collections.ErrNotFound):
		return nil, fmt.Errorf("failed to export contract info: %w", err)
	}

	next, err := k.NextBountyID.Get(ctx)
	switch {
	case err == nil:
		genesis.NextBountyID = next
	case !errors.Is(err, collections.ErrNotFound):
		return nil, fmt.Errorf("failed to export next bounty id: %w", err)
	}

	bounties, err := k.GetAllBounties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export bounties: %w", err)
	}
	genesis.Bounties = bounties
	return genesis, nil
}
