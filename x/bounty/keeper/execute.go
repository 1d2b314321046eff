package keeper

import (
	"context"

	"github.com/btcq-org/bounty/x/bounty/types"
	sdkerror "github.com/cosmos/cosmos-sdk/types/errors"
)

// Execute applies a state-changing message. It only touches ledger state;
// moving funds is left to the caller through the returned BankSend messages.
func (k Keeper) Execute(ctx context.Context, env types.Env, info types.MessageInfo, msg types.ExecuteMsg) (*types.Response, error) {
	switch msg := msg.(type) {
	case *types.MsgCreateBounty:
		return k.CreateBounty(ctx, env, info, msg)
	case *types.MsgFinalizeBounty:
		return k.FinalizeBounty(ctx, env, info, msg)
	case *types.MsgExpireBounty:
		return k.ExpireBounty(ctx, env, info, msg)
	default:
		return nil, sdkerror.ErrUnknownRequest.Wrapf("unrecognized %s message type: %T", types.ModuleName, msg)
	}
}
