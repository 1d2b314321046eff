package keeper_test

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
	bountytestutil "github.com/btcq-org/bounty/x/bounty/testutil"
	"github.com/btcq-org/bounty/x/bounty/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCreateBounty(t *testing.T) {
	issuer := bountytestutil.GetRandomBech32Address()
	recipient := bountytestutil.GetRandomBech32Address()

	validMsg := func() *types.MsgCreateBounty {
		return &types.MsgCreateBounty{
			Title:       "Fix bug #12",
			Description: "crash on empty input",
			Recipient:   recipient,
			EndHeight:   uint64Ptr(200),
			TokenDenom:  testDenom,
			Quantity:    math.NewInt(500),
		}
	}

	tests := []struct {
		name      string
		skipInit  bool
		msg       func() *types.MsgCreateBounty
		funds     sdk.Coins
		expectErr error
		checkFunc func(t *testing.T, f *fixture, resp *types.Response)
	}{
		{
			name:  "create with exact funds",
			msg:   validMsg,
			funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500)),
			checkFunc: func(t *testing.T, f *fixture, resp *types.Response) {
				bounty, err := f.keeper.GetBounty(f.ctx, 1)
				require.NoError(t, err)
				assert.Equal(t, types.StatusOpen, bounty.Status)
				assert.Equal(t, issuer, bounty.Issuer)
				assert.Equal(t, recipient, bounty.Recipient)
				assert.Equal(t, math.NewInt(500), bounty.Balance)
				assert.Equal(t, math.NewInt(500), bounty.Quantity)
				require.NotNil(t, bounty.EndHeight)
				assert.Equal(t, uint64(200), *bounty.EndHeight)
				assert.Nil(t, bounty.EndTime)

				next, err := f.keeper.NextBountyID.Get(f.ctx)
				require.NoError(t, err)
				assert.Equal(t, uint64(2), next)

				action, _ := resp.Attribute(types.AttributeKeyAction)
				assert.Equal(t, types.ActionCreateBounty, action)
				id, _ := resp.Attribute(types.AttributeKeyBountyID)
				assert.Equal(t, "1", id)
				got, _ := resp.Attribute(types.AttributeKeyIssuer)
				assert.Equal(t, issuer, got)
				assert.Empty(t, resp.Messages)
			},
		},
		{
			name:  "surplus funds are escrowed in full",
			msg:   validMsg,
			funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 750)),
			checkFunc: func(t *testing.T, f *fixture, _ *types.Response) {
				bounty, err := f.keeper.GetBounty(f.ctx, 1)
				require.NoError(t, err)
				assert.Equal(t, math.NewInt(750), bounty.Balance)
				assert.Equal(t, math.NewInt(500), bounty.Quantity)
			},
		},
		{
			name: "no recipient and no deadline",
			msg: func() *types.MsgCreateBounty {
				msg := validMsg()
				msg.Recipient = ""
				msg.EndHeight = nil
				return msg
			},
			funds: sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500)),
			checkFunc: func(t *testing.T, f *fixture, _ *types.Response) {
				bounty, err := f.keeper.GetBounty(f.ctx, 1)
				require.NoError(t, err)
				assert.False(t, bounty.HasRecipient())
				assert.Nil(t, bounty.EndHeight)
			},
		},
		{
			name:      "no funds attached",
			msg:       validMsg,
			funds:     sdk.NewCoins(),
			expectErr: types.ErrInvalidFunds,
		},
		{
			name:      "wrong denom",
			msg:       validMsg,
			funds:     sdk.NewCoins(sdk.NewInt64Coin("uatom", 500)),
			expectErr: types.ErrInvalidFunds,
		},
		{
			name:      "multiple coins",
			msg:       validMsg,
			funds:     sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500), sdk.NewInt64Coin("uatom", 1)),
			expectErr: types.ErrInvalidFunds,
		},
		{
			name:      "insufficient funds",
			msg:       validMsg,
			funds:     sdk.NewCoins(sdk.NewInt64Coin(testDenom, 499)),
			expectErr: types.ErrInsufficientFunds,
		},
		{
			name: "invalid recipient",
			msg: func() *types.MsgCreateBounty {
				msg := validMsg()
				msg.Recipient = "not-an-address"
				return msg
			},
			funds:     sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500)),
			expectErr: types.ErrInvalidRecipient,
		},
		{
			name:      "ledger not instantiated",
			skipInit:  true,
			msg:       validMsg,
			funds:     sdk.NewCoins(sdk.NewInt64Coin(testDenom, 500)),
			expectErr: types.ErrNotInstantiated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := initFixture(t)
			if !tc.skipInit {
				f.instantiate(t, issuer)
			}
			resp, err := f.keeper.CreateBounty(f.ctx, f.env(), types.MessageInfo{Sender: issuer, Funds: tc.funds}, tc.msg())
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				// a rejected creation consumes no id and stores nothing
				bounties, err := f.keeper.GetAllBounties(f.ctx)
				require.NoError(t, err)
				assert.Empty(t, bounties)
				if !tc.skipInit {
					next, err := f.keeper.NextBountyID.Get(f.ctx)
					require.NoError(t, err)
					assert.Equal(t, types.DefaultStartBountyID, next)
				}
			} else {
				require.NoError(t, err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, f, resp)
			}
		})
	}
}

func TestCreateBountyIDsIncrement(t *testing.T) {
	f := initFixture(t)
	issuer := bountytestutil.GetRandomBech32Address()
	_, err := f.keeper.Instantiate(f.ctx, types.MessageInfo{Sender: issuer}, &types.InstantiateMsg{StartID: uint64Ptr(40)})
	require.NoError(t, err)

	require.Equal(t, uint64(40), f.createBounty(t, issuer, "", 1, nil))
	require.Equal(t, uint64(41), f.createBounty(t, issuer, "", 2, nil))
	require.Equal(t, uint64(42), f.createBounty(t, issuer, "", 3, nil))

	next, err := f.keeper.NextBountyID.Get(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(43), next)
}

func TestCreateBountyCanonicalRecipient(t *testing.T) {
	f := initFixture(t)
	issuer := bountytestutil.GetRandomBech32Address()
	f.instantiate(t, issuer)
	addr := bountytestutil.GetRandomAccAddress()
	canonical := bountytestutil.Bech32(addr)

	id := f.createBounty(t, issuer, strings.ToUpper(canonical), 10, nil)
	bounty, err := f.keeper.GetBounty(f.ctx, id)
	require.NoError(t, err)
	require.Equal(t, canonical, bounty.Recipient)
}
