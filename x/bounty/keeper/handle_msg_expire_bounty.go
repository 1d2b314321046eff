package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	"github.com/btcq-org/bounty/x/bounty/types"
)

// ExpireBounty refunds the issuer once the bounty is past its deadline.
func (k Keeper) ExpireBounty(ctx context.Context, env types.Env, info types.MessageInfo, msg *types.MsgExpireBounty) (*types.Response, error) {
	bounty, err := k.GetBounty(ctx, msg.BountyID)
	if err != nil {
		return nil, err
	}
	if info.Sender != bounty.Issuer {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the issuer of bounty %d", info.Sender, bounty.ID)
	}
	if err := bounty.EnsureOpen(); err != nil {
		return nil, err
	}
	if !bounty.IsExpired(env.Block) {
		return nil, types.ErrNotYetExpired.Wrapf("bounty %d at height %d", bounty.ID, env.Block.Height)
	}

	refund := types.BankSend{ToAddress: bounty.Issuer, Amount: bounty.Escrowed()}
	bounty.Status = types.StatusExpired
	bounty.Balance = math.ZeroInt()
	if err := k.Bounties.Set(ctx, bounty.ID, bounty); err != nil {
		return nil, err
	}

	return types.NewResponse().
		AddMessage(refund).
		AddAttribute(types.AttributeKeyAction, types.ActionExpireBounty).
		AddAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bounty.ID, 10)).
		AddAttribute(types.AttributeKeyStatus, bounty.Status.String()).
		SetData(&types.ExpireBountyResponse{
			BountyID: bounty.ID,
			Refund:   refund,
		}), nil
}
