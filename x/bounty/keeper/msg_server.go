package keeper

import (
	"context"

	"github.com/btcq-org/bounty/x/bounty/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerror "github.com/cosmos/cosmos-sdk/types/errors"
)

type msgServer struct {
	k *Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(k *Keeper) types.MsgServer {
	return &msgServer{
		k: k,
	}
}

var _ types.MsgServer = &msgServer{}

func (s *msgServer) Instantiate(ctx context.Context, info types.MessageInfo, msg *types.InstantiateMsg) (*types.Response, error) {
	if msg == nil {
		return nil, sdkerror.ErrInvalidRequest.Wrap("instantiate message cannot be nil")
	}
	owner, err := s.k.addressCodec.StringToBytes(info.Sender)
	if err != nil {
		return nil, sdkerror.ErrInvalidAddress.Wrapf("invalid sender address: %v", err)
	}
	if info.Sender, err = s.k.addressCodec.BytesToString(owner); err != nil {
		return nil, sdkerror.ErrInvalidAddress.Wrapf("invalid sender address: %v", err)
	}
	if !info.Funds.Empty() {
		return nil, types.ErrInvalidFunds.Wrap("instantiate does not accept funds")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	resp, err := s.k.Instantiate(sdkCtx, info, msg)
	if err != nil {
		return nil, err
	}
	sdkCtx.EventManager().EmitEvent(resp.Event())
	sdkCtx.Logger().Info("bounty ledger instantiated", "owner", info.Sender, "start_id", msg.StartBountyID())
	return resp, nil
}

// Execute runs msg against the ledger and settles funds with the bank: the
// attached funds move into the escrow account and every BankSend returned by
// the ledger is paid out of it. Nothing is written unless all steps succeed.
func (s *msgServer) Execute(ctx context.Context, info types.MessageInfo, msg types.ExecuteMsg) (*types.Response, error) {
	if msg == nil {
		return nil, sdkerror.ErrInvalidRequest.Wrap("execute message cannot be nil")
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := s.k.addressCodec.StringToBytes(info.Sender)
	if err != nil {
		return nil, sdkerror.ErrInvalidAddress.Wrapf("invalid sender address: %v", err)
	}
	if info.Sender, err = s.k.addressCodec.BytesToString(sender); err != nil {
		return nil, sdkerror.ErrInvalidAddress.Wrapf("invalid sender address: %v", err)
	}
	if err := info.Funds.Validate(); err != nil {
		return nil, types.ErrInvalidFunds.Wrap(err.Error())
	}
	if _, ok := msg.(*types.MsgCreateBounty); !ok && !info.Funds.Empty() {
		return nil, types.ErrInvalidFunds.Wrapf("%s does not accept funds", msg.Action())
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	resp, err := s.k.Execute(cacheCtx, types.EnvFromContext(cacheCtx), info, msg)
	if err != nil {
		return nil, err
	}

	if !info.Funds.Empty() {
		if err := s.k.bankKeeper.SendCoinsFromAccountToModule(cacheCtx, sender, types.ModuleName, info.Funds); err != nil {
			return nil, err
		}
	}

	bountyID, _ := resp.Attribute(types.AttributeKeyBountyID)
	for _, send := range resp.Messages {
		if send.Amount.Empty() {
			continue
		}
		to, err := s.k.addressCodec.StringToBytes(send.ToAddress)
		if err != nil {
			return nil, sdkerror.ErrInvalidAddress.Wrapf("invalid payout address %s: %v", send.ToAddress, err)
		}
		if err := s.k.bankKeeper.SendCoinsFromModuleToAccount(cacheCtx, types.ModuleName, to, send.Amount); err != nil {
			return nil, err
		}
		cacheCtx.EventManager().EmitEvent(types.PayoutEvent(bountyID, send))
	}
	cacheCtx.EventManager().EmitEvent(resp.Event())
	write()

	sdkCtx.Logger().Info("bounty message executed",
		"action", msg.Action(),
		"sender", info.Sender,
		"bounty_id", bountyID,
		"payouts", len(resp.Messages),
	)
	return resp, nil
}
