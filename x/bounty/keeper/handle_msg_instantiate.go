package keeper

import (
	"context"

	"github.com/btcq-org/bounty/x/bounty/types"
)

// Instantiate seeds the id counter and records the contract name and version.
// It may run only once.
func (k Keeper) Instantiate(ctx context.Context, info types.MessageInfo, msg *types.InstantiateMsg) (*types.Response, error) {
	instantiated, err := k.NextBountyID.Has(ctx)
	if err != nil {
		return nil, err
	}
	if instantiated {
		return nil, types.ErrAlreadyInstantiated
	}

	startID := msg.StartBountyID()
	if err := k.NextBountyID.Set(ctx, startID); err != nil {
		return nil, err
	}
	if err := k.ContractInfo.Set(ctx, types.ContractInfo{
		Contract: types.ContractName,
		Version:  types.ContractVersion,
		Owner:    info.Sender,
	}); err != nil {
		return nil, err
	}

	return types.NewResponse().
		AddAttribute(types.AttributeKeyMethod, types.ActionInstantiate).
		AddAttribute(types.AttributeKeyOwner, info.Sender).
		SetData(&types.InstantiateResponse{NextBountyID: startID}), nil
}
