package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/core/address"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/btcq-org/bounty/common"
	"github.com/btcq-org/bounty/x/bounty/keeper"
	bountytestutil "github.com/btcq-org/bounty/x/bounty/testutil"
	"github.com/btcq-org/bounty/x/bounty/types"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testDenom = "ubty"

type fixture struct {
	ctx          sdk.Context
	keeper       keeper.Keeper
	addressCodec address.Codec
	bankKeeper   *bountytestutil.MockBankKeeper
}

func initFixture(t *testing.T) *fixture {
	t.Helper()
	sdk.GetConfig().SetBech32PrefixForAccount(common.AccountAddressPrefix, common.AccountAddressPrefix+sdk.PrefixPublic)
	addressCodec := addresscodec.NewBech32Codec(common.AccountAddressPrefix)
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	storeService := runtime.NewKVStoreService(storeKey)
	ctx := testutil.DefaultContextWithDB(t, storeKey, storetypes.NewTransientStoreKey("transient_test")).Ctx
	ctx = ctx.WithBlockHeight(100).WithBlockTime(time.Unix(1_700_000_000, 0).UTC())

	ctrl := gomock.NewController(t)
	bankKeeper := bountytestutil.NewMockBankKeeper(ctrl)

	k := keeper.NewKeeper(
		storeService,
		addressCodec,
		bankKeeper,
	)

	return &fixture{
		ctx:          ctx,
		keeper:       k,
		addressCodec: addressCodec,
		bankKeeper:   bankKeeper,
	}
}

// instantiate seeds the ledger the way the host does at genesis.
func (f *fixture) instantiate(t *testing.T, owner string) {
	t.Helper()
	_, err := f.keeper.Instantiate(f.ctx, types.MessageInfo{Sender: owner}, &types.InstantiateMsg{})
	require.NoError(t, err)
}

func (f *fixture) env() types.Env {
	return types.EnvFromContext(f.ctx)
}

func (f *fixture) envAt(height uint64, unix int64) types.Env {
	return types.Env{Block: types.BlockInfo{Height: height, Time: time.Unix(unix, 0).UTC()}}
}

// createBounty stores an Open bounty funded with amount and returns its id.
func (f *fixture) createBounty(t *testing.T, issuer, recipient string, amount int64, endHeight *uint64) uint64 {
	t.Helper()
	resp, err := f.keeper.CreateBounty(f.ctx, f.env(), types.MessageInfo{
		Sender: issuer,
		Funds:  sdk.NewCoins(sdk.NewInt64Coin(testDenom, amount)),
	}, &types.MsgCreateBounty{
		Title:      "fix the bug",
		Recipient:  recipient,
		EndHeight:  endHeight,
		TokenDenom: testDenom,
		Quantity:   math.NewInt(amount),
	})
	require.NoError(t, err)
	data, ok := resp.Data.(*types.CreateBountyResponse)
	require.True(t, ok)
	return data.BountyID
}

func uint64Ptr(v uint64) *uint64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestNewKeeper(t *testing.T) {
	f := initFixture(t)
	require.NotNil(t, f.keeper.Schema)
	require.Equal(t, f.addressCodec, f.keeper.AddressCodec())
	require.False(t, f.keeper.EscrowAddress().Empty())
}

func TestGetBountyNotFound(t *testing.T) {
	f := initFixture(t)
	_, err := f.keeper.GetBounty(f.ctx, 42)
	require.ErrorIs(t, err, types.ErrBountyNotFound)
}

func TestGetAllBountiesAscending(t *testing.T) {
	f := initFixture(t)
	issuer := bountytestutil.GetRandomBech32Address()
	f.instantiate(t, issuer)

	bounties, err := f.keeper.GetAllBounties(f.ctx)
	require.NoError(t, err)
	require.Empty(t, bounties)

	for i := 0; i < 12; i++ {
		f.createBounty(t, issuer, "", int64(10+i), nil)
	}
	bounties, err = f.keeper.GetAllBounties(f.ctx)
	require.NoError(t, err)
	require.Len(t, bounties, 12)
	for i, bounty := range bounties {
		require.Equal(t, uint64(i+1), bounty.ID)
		require.Equal(t, math.NewInt(int64(10+i)), bounty.Balance)
	}
}
