package keeper_test

import (
	"testing"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/store/types"
	"github.com/btcq-org/bounty/common"
	"github.com/btcq-org/bounty/x/custody/keeper"
	"github.com/btcq-org/bounty/x/custody/types"
	bountytestutil "github.com/btcq-org/bounty/x/bounty/testutil"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx    sdk.Context
	keeper keeper.Keeper
}

func initFixture(t *testing.T) *fixture {
	t.Helper()
	sdk.GetConfig().SetBech32PrefixForAccount(common.AccountAddressPrefix, common.AccountAddressPrefix+sdk.PrefixPublic)
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	k := keeper.NewKeeper(runtime.NewKVStoreService(storeKey), addresscodec.NewBech32Codec(common.AccountAddressPrefix))
	return &fixture{ctx: ctx, keeper: k}
}

func TestFundAndSend(t *testing.T) {
	f := initFixture(t)
	alice := bountytestutil.GetRandomAccAddress()
	bob := bountytestutil.GetRandomAccAddress()

	require.True(t, f.keeper.GetAllBalances(f.ctx, alice).Empty())
	require.True(t, f.keeper.GetBalance(f.ctx, alice, "ubty").IsZero())

	require.NoError(t, f.keeper.FundAccount(f.ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("ubty", 100), sdk.NewInt64Coin("uatom", 5))))
	assert.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("uatom", 5), sdk.NewInt64Coin("ubty", 100)), f.keeper.GetAllBalances(f.ctx, alice))

	require.NoError(t, f.keeper.SendCoins(f.ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("ubty", 40))))
	assert.Equal(t, int64(60), f.keeper.GetBalance(f.ctx, alice, "ubty").Amount.Int64())
	assert.Equal(t, int64(40), f.keeper.GetBalance(f.ctx, bob, "ubty").Amount.Int64())

	err := f.keeper.SendCoins(f.ctx, bob, alice, sdk.NewCoins(sdk.NewInt64Coin("ubty", 41)))
	require.ErrorIs(t, err, sdkerrors.ErrInsufficientFunds)
	assert.Equal(t, int64(40), f.keeper.GetBalance(f.ctx, bob, "ubty").Amount.Int64())

	// a drained denom is removed from the store
	require.NoError(t, f.keeper.SendCoins(f.ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("uatom", 5))))
	assert.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ubty", 60)), f.keeper.GetAllBalances(f.ctx, alice))
	has, err := f.keeper.Balances.Has(f.ctx, collections.Join(alice, "uatom"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestFundAccountRejectsInvalidCoins(t *testing.T) {
	f := initFixture(t)
	err := f.keeper.FundAccount(f.ctx, bountytestutil.GetRandomAccAddress(), sdk.Coins{sdk.NewInt64Coin("ubty", 0)})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidCoins)
}

func TestModuleAccounts(t *testing.T) {
	f := initFixture(t)
	alice := bountytestutil.GetRandomAccAddress()
	coins := sdk.NewCoins(sdk.NewInt64Coin("ubty", 10))
	require.NoError(t, f.keeper.FundAccount(f.ctx, alice, coins))

	require.NoError(t, f.keeper.SendCoinsFromAccountToModule(f.ctx, alice, "bounty", coins))
	assert.Equal(t, coins, f.keeper.GetAllBalances(f.ctx, authtypes.NewModuleAddress("bounty")))
	assert.True(t, f.keeper.GetAllBalances(f.ctx, alice).Empty())

	err := f.keeper.SendCoinsFromModuleToAccount(f.ctx, "bounty", alice, coins.Add(coins...))
	require.ErrorIs(t, err, sdkerrors.ErrInsufficientFunds)

	require.NoError(t, f.keeper.SendCoinsFromModuleToAccount(f.ctx, "bounty", alice, coins))
	assert.Equal(t, coins, f.keeper.GetAllBalances(f.ctx, alice))
}

func TestGenesis(t *testing.T) {
	f := initFixture(t)
	alice := bountytestutil.GetRandomBech32Address()
	bob := bountytestutil.GetRandomBech32Address()
	genesis := types.GenesisState{Balances: []types.Balance{
		{Address: alice, Coins: sdk.NewCoins(sdk.NewInt64Coin("ubty", 10))},
		{Address: bob, Coins: sdk.NewCoins(sdk.NewInt64Coin("ubty", 3), sdk.NewInt64Coin("uatom", 1))},
	}}
	require.NoError(t, f.keeper.InitGenesis(f.ctx, genesis))

	got, err := f.keeper.ExportGenesis(f.ctx)
	require.NoError(t, err)
	require.Len(t, got.Balances, 2)
	byAddr := map[string]sdk.Coins{}
	for _, balance := range got.Balances {
		byAddr[balance.Address] = balance.Coins
	}
	assert.Equal(t, genesis.Balances[0].Coins, byAddr[alice])
	assert.Equal(t, genesis.Balances[1].Coins, byAddr[bob])

	require.Error(t, f.keeper.InitGenesis(f.ctx, types.GenesisState{Balances: []types.Balance{{Address: "bad", Coins: sdk.NewCoins()}}}))
}
