package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"github.com/btcq-org/bounty/x/bounty/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var _ types.QueryServer = queryServer{}

// NewQueryServerImpl returns an implementation of the QueryServer interface
// for the provided Keeper.
func NewQueryServerImpl(k Keeper) types.QueryServer {
	return queryServer{k}
}

type queryServer struct {
	k Keeper
}

func (qs queryServer) Bounty(ctx context.Context, req *types.QueryBountyRequest) (*types.QueryBountyResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest.Wrap("empty request")
	}
	bounty, err := qs.k.GetBounty(ctx, req.BountyID)
	if err != nil {
		return nil, err
	}
	return &types.QueryBountyResponse{Bounty: bounty}, nil
}

// Bounties returns every bounty in ascending id order, unpaginated.
func (qs queryServer) Bounties(ctx context.Context, _ *types.QueryBountiesRequest) (*types.QueryBountiesResponse, error) {
	bounties, err := qs.k.GetAllBounties(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryBountiesResponse{Bounties: bounties}, nil
}

func (qs queryServer) ContractInfo(ctx context.Context, _ *types.QueryContractInfoRequest) (*types.QueryContractInfoResponse, error) {
	info, err := qs.k.ContractInfo.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, types.ErrNotInstantiated
		}
		return nil, err
	}
	next, err := qs.k.NextBountyID.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryContractInfoResponse{ContractInfo: info, NextBountyID: next}, nil
}

// Query dispatches a tagged query message.
func (qs queryServer) Query(ctx context.Context, req types.QueryMsg) (types.QueryResponse, error) {
	var (
		resp types.QueryResponse
		err  error
	)
	switch req := req.(type) {
	case *types.QueryBountyRequest:
		var r *types.QueryBountyResponse
		r, err = qs.Bounty(ctx, req)
		resp = r
	case *types.QueryBountiesRequest:
		var r *types.QueryBountiesResponse
		r, err = qs.Bounties(ctx, req)
		resp = r
	case *types.QueryContractInfoRequest:
		var r *types.QueryContractInfoResponse
		r, err = qs.ContractInfo(ctx, req)
		resp = r
	default:
		return nil, sdkerrors.ErrUnknownRequest.Wrapf("unrecognized %s query type: %T", types.ModuleName, req)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}
