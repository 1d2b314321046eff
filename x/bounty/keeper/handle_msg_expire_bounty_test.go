package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	bountytestutil "github.com/btcq-org/bounty/x/bounty/testutil"
	"github.com/btcq-org/bounty/x/bounty/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleExpireBounty(t *testing.T) {
	issuer := bountytestutil.GetRandomBech32Address()
	recipient := bountytestutil.GetRandomBech32Address()

	tests := []struct {
		name      string
		setup     func(t *testing.T, f *fixture) uint64
		sender    string
		env       types.Env
		expectErr error
		checkFunc func(t *testing.T, f *fixture, id uint64, resp *types.Response)
	}{
		{
			name: "past end height",
			setup: func(t *testing.T, f *fixture) uint64 {
				return f.createBounty(t, issuer, recipient, 500, uint64Ptr(200))
			},
			sender: issuer,
			env:    types.Env{Block: types.BlockInfo{Height: 201}},
			checkFunc: func(t *testing.T, f *fixture, id uint64, resp *types.Response) {
				bounty, err := f.keeper.GetBounty(f.ctx, id)
				require.NoError(t, err)
				assert.Equal(t, types.StatusExpired, bounty.Status)
				assert.True(t, bounty.Balance.IsZero())

				require.Len(t, resp.Messages, 1)
				assert.Equal(t, issuer, resp.Messages[0].ToAddress)
				assert.Equal(t, sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500)), resp.Messages[0].Amount)
				action, _ := resp.Attribute(types.AttributeKeyAction)
				assert.Equal(t, types.ActionExpireBounty, action)
				status, _ := resp.Attribute(types.AttributeKeyStatus)
				assert.Equal(t, "expired", status)
				data, ok := resp.Data.(*types.ExpireBountyResponse)
				require.True(t, ok)
				assert.Equal(t, id, data.BountyID)
			},
		},
		{
			name: "at end height",
			setup: func(t *testing.T, f *fixture) uint64 {
				return f.createBounty(t, issuer, recipient, 500, uint64Ptr(200))
			},
			sender:    issuer,
			env:       types.Env{Block: types.BlockInfo{Height: 200}},
			expectErr: types.ErrNotYetExpired,
			checkFunc: func(t *testing.T, f *fixture, id uint64, _ *types.Response) {
				bounty, err := f.keeper.GetBounty(f.ctx, id)
				require.NoError(t, err)
				assert.Equal(t, types.StatusOpen, bounty.Status)
				assert.Equal(t, math.NewInt(500), bounty.Balance)
			},
		},
		{
			name: "no deadline never expires",
			setup: func(t *testing.T, f *fixture) uint64 {
				return f.createBounty(t, issuer, recipient, 500, nil)
			},
			sender:    issuer,
			env:       types.Env{Block: types.BlockInfo{Height: 1 << 40}},
			expectErr: types.ErrNotYetExpired,
		},
		{
			name: "caller is not the issuer",
			setup: func(t *testing.T, f *fixture) uint64 {
				return f.createBounty(t, issuer, recipient, 500, uint64Ptr(200))
			},
			sender:    recipient,
			env:       types.Env{Block: types.BlockInfo{Height: 201}},
			expectErr: types.ErrUnauthorized,
		},
		{
			name: "unknown bounty",
			setup: func(t *testing.T, f *fixture) uint64 {
				return 7
			},
			sender:    issuer,
			env:       types.Env{Block: types.BlockInfo{Height: 201}},
			expectErr: types.ErrBountyNotFound,
		},
		{
			name: "already expired",
			setup: func(t *testing.T, f *fixture) uint64 {
				id := f.createBounty(t, issuer, recipient, 500, uint64Ptr(200))
				_, err := f.keeper.ExpireBounty(f.ctx, f.envAt(201, 0), types.MessageInfo{Sender: issuer}, &types.MsgExpireBounty{BountyID: id})
				require.NoError(t, err)
				return id
			},
			sender:    issuer,
			env:       types.Env{Block: types.BlockInfo{Height: 202}},
			expectErr: types.ErrBountyExpired,
		},
		{
			name: "already completed",
			setup: func(t *testing.T, f *fixture) uint64 {
				id := f.createBounty(t, issuer, recipient, 500, uint64Ptr(200))
				_, err := f.keeper.FinalizeBounty(f.ctx, f.envAt(150, 0), types.MessageInfo{Sender: issuer}, &types.MsgFinalizeBounty{BountyID: id, Success: true})
				require.NoError(t, err)
				return id
			},
			sender:    issuer,
			env:       types.Env{Block: types.BlockInfo{Height: 300}},
			expectErr: types.ErrBountyClosed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := initFixture(t)
			f.instantiate(t, issuer)
			id := tc.setup(t, f)
			resp, err := f.keeper.ExpireBounty(f.ctx, tc.env, types.MessageInfo{Sender: tc.sender}, &types.MsgExpireBounty{BountyID: id})
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
			} else {
				require.NoError(t, err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, f, id, resp)
			}
		})
	}
}

func TestExpireBountyEndTime(t *testing.T) {
	f := initFixture(t)
	issuer := bountytestutil.GetRandomBech32Address()
	f.instantiate(t, issuer)

	resp, err := f.keeper.CreateBounty(f.ctx, f.env(), types.MessageInfo{
		Sender: issuer,
		Funds:  sdk.NewCoins(sdk.NewInt64Coin(testDenom, 10)),
	}, &types.MsgCreateBounty{
		EndTime:    int64Ptr(1_700_000_500),
		TokenDenom: testDenom,
		Quantity:   math.NewInt(10),
	})
	require.NoError(t, err)
	id := resp.Data.(*types.CreateBountyResponse).BountyID

	_, err = f.keeper.ExpireBounty(f.ctx, f.envAt(1, 1_700_000_500), types.MessageInfo{Sender: issuer}, &types.MsgExpireBounty{BountyID: id})
	require.ErrorIs(t, err, types.ErrNotYetExpired)

	_, err = f.keeper.ExpireBounty(f.ctx, f.envAt(1, 1_700_000_501), types.MessageInfo{Sender: issuer}, &types.MsgExpireBounty{BountyID: id})
	require.NoError(t, err)
}
