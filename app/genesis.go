package app

import (
	"encoding/json"
	"fmt"
	"os"

	bountytypes "github.com/btcq-org/bounty/x/bounty/types"
	custodytypes "github.com/btcq-org/bounty/x/custody/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-multierror"
)

// GenesisState is the state of every module, keyed by module name.
type GenesisState struct {
	Custody *custodytypes.GenesisState `json:"custody"`
	Bounty  *bountytypes.GenesisState  `json:"bounty"`
}

// NewDefaultGenesisState returns the genesis of an uninstantiated ledger with
// no balances.
func NewDefaultGenesisState() *GenesisState {
	return &GenesisState{
		Custody: custodytypes.DefaultGenesis(),
		Bounty:  &bountytypes.GenesisState{Bounties: []bountytypes.Bounty{}},
	}
}

// Validate checks every module section.
func (gs GenesisState) Validate() error {
	var result error
	if gs.Custody != nil {
		if err := gs.Custody.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", custodytypes.ModuleName, err))
		}
	}
	if gs.Bounty != nil {
		if err := gs.Bounty.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", bountytypes.ModuleName, err))
		}
	}
	return result
}

// ReadGenesisFile loads a genesis JSON document.
func ReadGenesisFile(path string) (*GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file: %w", err)
	}
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, fmt.Errorf("failed to decode genesis file %s: %w", path, err)
	}
	return &gs, nil
}

// InitGenesis imports gs as the first block. It fails once anything has been
// committed.
func (a *App) InitGenesis(gs *GenesisState) error {
	if gs == nil {
		return fmt.Errorf("genesis state cannot be nil")
	}
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if height := a.LastBlockHeight(); height != 0 {
		return fmt.Errorf("genesis already applied, last height %d", height)
	}
	_, err := a.deliver(func(ctx sdk.Context) error {
		if gs.Custody != nil {
			if err := a.CustodyKeeper.InitGenesis(ctx, *gs.Custody); err != nil {
				return err
			}
		}
		if gs.Bounty != nil {
			if err := a.BountyKeeper.InitGenesis(ctx, *gs.Bounty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.logger.Info("genesis imported", "height", a.LastBlockHeight())
	return nil
}

// ExportGenesis returns the committed state of every module.
func (a *App) ExportGenesis() (*GenesisState, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	gs := &GenesisState{}
	err := a.query(func(ctx sdk.Context) error {
		var err error
		if gs.Custody, err = a.CustodyKeeper.ExportGenesis(ctx); err != nil {
			return err
		}
		gs.Bounty, err = a.BountyKeeper.ExportGenesis(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}
