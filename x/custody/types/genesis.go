package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-multierror"
)

// Balance is the holdings of one account.
type Balance struct {
	Address string    `json:"address"`
	Coins   sdk.Coins `json:"coins"`
}

// GenesisState holds every non-zero balance.
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []Balance{}}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	var result error
	seen := make(map[string]struct{}, len(gs.Balances))
	for _, balance := range gs.Balances {
		if balance.Address == "" {
			result = multierror.Append(result, fmt.Errorf("balance address cannot be empty"))
			continue
		}
		if _, ok := seen[balance.Address]; ok {
			result = multierror.Append(result, fmt.Errorf("duplicate balance for %s", balance.Address))
		}
		seen[balance.Address] = struct{}{}
		if err := balance.Coins.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("balance of %s: %w", balance.Address, err))
		}
	}
	return result
}
