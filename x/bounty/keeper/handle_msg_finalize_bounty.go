package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	"github.com/btcq-org/bounty/x/bounty/types"
)

// FinalizeBounty closes an Open bounty on the issuer's decision. A bounty past
// its deadline is refunded to the issuer whatever success says.
func (k Keeper) FinalizeBounty(ctx context.Context, env types.Env, info types.MessageInfo, msg *types.MsgFinalizeBounty) (*types.Response, error) {
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

	var payTo string
	switch {
	case bounty.IsExpired(env.Block):
		bounty.Status = types.StatusExpired
		payTo = bounty.Issuer
	case msg.Success:
		if !bounty.HasRecipient() {
			return nil, types.ErrRecipientNotSet.Wrapf("bounty %d", bounty.ID)
		}
		bounty.Status = types.StatusCompleted
		payTo = bounty.Recipient
	default:
		bounty.Status = types.StatusExpired
		payTo = bounty.Issuer
	}

	payout := types.BankSend{ToAddress: payTo, Amount: bounty.Escrowed()}
	bounty.Balance = math.ZeroInt()
	if err := k.Bounties.Set(ctx, bounty.ID, bounty); err != nil {
		return nil, err
	}

	return types.NewResponse().
		AddMessage(payout).
		AddAttribute(types.AttributeKeyAction, types.ActionFinalizeBounty).
		AddAttribute(types.AttributeKeyBountyID, strconv.FormatUint(bounty.ID, 10)).
		AddAttribute(types.AttributeKeyStatus, bounty.Status.String()).
		SetData(&types.FinalizeBountyResponse{
			BountyID: bounty.ID,
			Status:   bounty.Status,
			Payout:   payout,
		}), nil
}
