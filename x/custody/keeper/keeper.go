package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/math"
	"github.com/btcq-org/bounty/x/custody/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// Keeper holds account balances. It is the funds custody used by the host:
// accounts are funded out of band and modules move coins between accounts
// and their module accounts.
type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec

	Schema   collections.Schema
	Balances collections.Map[collections.Pair[sdk.AccAddress, string], math.Int]
}

func NewKeeper(storeService corestore.KVStoreService, addressCodec address.Codec) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,
		Balances: collections.NewMap(sb, types.BalanceKeys, "balances",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey), sdk.IntValue),
	}
	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	return k
}

// GetBalance returns the balance of denom held by addr; zero when absent.
func (k Keeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	amount, err := k.Balances.Get(ctx, collections.Join(addr, denom))
	if err != nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	return sdk.NewCoin(denom, amount)
}

// GetAllBalances returns every non-zero balance held by addr, sorted by denom.
func (k Keeper) GetAllBalances(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	coins := sdk.NewCoins()
	rng := collections.NewPrefixedPairRange[sdk.AccAddress, string](addr)
	err := k.Balances.Walk(ctx, rng, func(key collections.Pair[sdk.AccAddress, string], amount math.Int) (stop bool, err error) {
		coins = coins.Add(sdk.NewCoin(key.K2(), amount))
		return false, nil
	})
	if err != nil {
		return sdk.NewCoins()
	}
	return coins
}

// FundAccount credits amt to addr. It is used for genesis and faucet funding.
func (k Keeper) FundAccount(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if err := amt.Validate(); err != nil {
		return sdkerrors.ErrInvalidCoins.Wrap(err.Error())
	}
	return k.addCoins(ctx, addr, amt)
}

// SendCoins moves amt from one account to another.
func (k Keeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if err := amt.Validate(); err != nil {
		return sdkerrors.ErrInvalidCoins.Wrap(err.Error())
	}
	if err := k.subCoins(ctx, fromAddr, amt); err != nil {
		return err
	}
	return k.addCoins(ctx, toAddr, amt)
}

// SendCoinsFromAccountToModule moves amt from an account into a module account.
func (k Keeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return k.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount moves amt out of a module account.
func (k Keeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return k.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

func (k Keeper) subCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		balance := k.GetBalance(ctx, addr, coin.Denom)
		if balance.Amount.LT(coin.Amount) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("spendable balance %s is smaller than %s", balance, coin)
		}
		if err := k.setBalance(ctx, addr, balance.Sub(coin)); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) addCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		balance := k.GetBalance(ctx, addr, coin.Denom)
		if err := k.setBalance(ctx, addr, balance.Add(coin)); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) setBalance(ctx context.Context, addr sdk.AccAddress, balance sdk.Coin) error {
	key := collections.Join(addr, balance.Denom)
	if balance.IsZero() {
		err := k.Balances.Remove(ctx, key)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		return nil
	}
	return k.Balances.Set(ctx, key, balance.Amount)
}

// InitGenesis initializes the module's state from a provided genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid custody genesis: %w", err)
	}
	for _, balance := range genState.Balances {
		addr, err := k.addressCodec.StringToBytes(balance.Address)
		if err != nil {
			return fmt.Errorf("invalid address %s: %w", balance.Address, err)
		}
		if err := k.addCoins(ctx, addr, balance.Coins); err != nil {
			return fmt.Errorf("failed to fund %s: %w", balance.Address, err)
		}
	}
	return nil
}

// ExportGenesis returns the module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	byAddress := make(map[string]int)
	err := k.Balances.Walk(ctx, nil, func(key collections.Pair[sdk.AccAddress, string], amount math.Int) (stop bool, err error) {
		addr, err := k.addressCodec.BytesToString(key.K1())
		if err != nil {
			return true, err
		}
		idx, ok := byAddress[addr]
		if !ok {
			idx = len(genesis.Balances)
			byAddress[addr] = idx
			genesis.Balances = append(genesis.Balances, types.Balance{Address: addr, Coins: sdk.NewCoins()})
		}
		genesis.Balances[idx].Coins = genesis.Balances[idx].Coins.Add(sdk.NewCoin(key.K2(), amount))
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export balances: %w", err)
	}
	return genesis, nil
}
