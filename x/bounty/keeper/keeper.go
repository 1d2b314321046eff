package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"
	"github.com/btcq-org/bounty/x/bounty/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec

	// Keepers
	bankKeeper types.BankKeeper

	// Collections
	Schema       collections.Schema
	Bounties     collections.Map[uint64, types.Bounty]
	NextBountyID collections.Item[uint64]
	ContractInfo collections.Item[types.ContractInfo]
}

func NewKeeper(
	storeService corestore.KVStoreService,
	addressCodec address.Codec,
	bankKeeper types.BankKeeper,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,
		bankKeeper:   bankKeeper,
		Bounties:     collections.NewMap(sb, types.BountyKeys, "bounties", collections.Uint64Key, types.BountyValue),
		NextBountyID: collections.NewItem(sb, types.NextBountyIDKey, "next_bounty_id", collections.Uint64Value),
		ContractInfo: collections.NewItem(sb, types.ContractInfoKey, "contract_info", types.ContractInfoValue),
	}
	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// AddressCodec returns the codec used to validate account addresses.
func (k Keeper) AddressCodec() address.Codec {
	return k.addressCodec
}

// EscrowAddress is the module account holding every open bounty's balance.
func (k Keeper) EscrowAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// GetBounty loads a bounty by id.
func (k Keeper) GetBounty(ctx context.Context, id uint64) (types.Bounty, error) {
	bounty, err := k.Bounties.Get(ctx, id)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Bounty{}, types.ErrBountyNotFound.Wrapf("bounty %d", id)
		}
		return types.Bounty{}, err
	}
	return bounty, nil
}

// GetAllBounties returns every bounty in ascending id order.
func (k Keeper) GetAllBounties(ctx context.Context) ([]types.Bounty, error) {
	bounties := make([]types.Bounty, 0)
	err := k.Bounties.Walk(ctx, nil, func(_ uint64, bounty types.Bounty) (stop bool, err error) {
		bounties = append(bounties, bounty)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return bounties, nil
}

// allocateBountyID returns the next id and advances the counter.
func (k Keeper) allocateBountyID(ctx context.Context) (uint64, error) {
	id, err := k.NextBountyID.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, types.ErrNotInstantiated
		}
		return 0, err
	}
	if err := k.NextBountyID.Set(ctx, id+1); err != nil {
		return 0, err
	}
	return id, nil
}
