package keeper

import (
	"context"
	"strconv"

	"github.com/btcq-org/bounty/x/bounty/types"
)

// CreateBounty records the single attached coin as the escrowed balance of a
// new Open bounty.
func (k Keeper) CreateBounty(ctx context.Context, env types.Env, info types.MessageInfo, msg *types.MsgCreateBounty) (*types.Response, error) {
	if len(info.Funds) != 1 || info.Funds[0].Denom != msg.TokenDenom {
		return nil, types.ErrInvalidFunds.Wrapf("expected exactly one %s coin, got %q", msg.TokenDenom, info.Funds.String())
	}
	attached := info.Funds[0]
	if attached.Amount.LT(msg.Quantity) {
		return nil, types.ErrInsufficientFunds.Wrapf("attached %s, required %s%s", attached, msg.Quantity, msg.TokenDenom)
	}

	var recipient string
	if msg.Recipient != "" {
		bz, err := k.addressCodec.StringToBytes(msg.Recipient)
		if err != nil {
			return nil, types.ErrInvalidRecipient.Wrapf("%s: %v", msg.Recipient, err)
		}
		recipient, err = k.addressCodec.BytesToString(bz)
		if err != nil {
			return nil, types.ErrInvalidRecipient.Wrapf("%s: %v", msg.Recipient, err)
		}
	}

	id, err := k.allocateBountyID(ctx)
	if err != nil {
		return nil, err
	}
	bounty := types.Bounty{
		ID:          id,
		Title:       msg.Title,
		Description: msg.Description,
		Status:      types.StatusOpen,
		Issuer:      info.Sender,
		Recipient:   recipient,
		EndHeight:   msg.EndHeight,
		EndTime:     msg.EndTime,
		TokenDenom:  msg.TokenDenom,
		Quantity:    msg.Quantity,
		Balance:     attached.Amount,
	}
	if err := k.Bounties.Set(ctx, id, bounty); err != nil {
		return nil, err
	}

	return types.NewResponse().
		AddAttribute(types.AttributeKeyAction, types.ActionCreateBounty).
		AddAttribute(types.AttributeKeyBountyID, strconv.FormatUint(id, 10)).
		AddAttribute(types.AttributeKeyIssuer, info.Sender).
		SetData(&types.CreateBountyResponse{BountyID: id}), nil
}
