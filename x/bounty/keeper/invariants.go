package keeper

import (
	"fmt"

	"github.com/btcq-org/bounty/x/bounty/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EscrowInvariant checks that the escrow account holds exactly the balances
// of the Open bounties and that closed bounties hold nothing.
func EscrowInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)
		expected := sdk.NewCoins()
		err := k.Bounties.Walk(ctx, nil, func(id uint64, bounty types.Bounty) (stop bool, err error) {
			switch {
			case bounty.Status == types.StatusOpen:
				expected = expected.Add(bounty.Escrowed()...)
			case !bounty.Balance.IsNil() && !bounty.Balance.IsZero():
				broken = true
				msg += fmt.Sprintf("\tbounty %d is %s but still holds %s\n", id, bounty.Status, bounty.Balance)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow", fmt.Sprintf("failed to walk bounties: %v", err)), true
		}

		held := k.bankKeeper.GetAllBalances(ctx, k.EscrowAddress())
		if !held.Equal(expected) {
			broken = true
			msg += fmt.Sprintf("\tescrow account holds %s, open bounties require %s\n", held, expected)
		}
		return sdk.FormatInvariant(types.ModuleName, "escrow", msg), broken
	}
}

// AllInvariants runs all invariants of the bounty module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		return EscrowInvariant(k)(ctx)
	}
}
