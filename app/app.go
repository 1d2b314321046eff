package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/core/address"
	"cosmossdk.io/log"
	"cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"
	"github.com/btcq-org/bounty/common"
	bountykeeper "github.com/btcq-org/bounty/x/bounty/keeper"
	bountytypes "github.com/btcq-org/bounty/x/bounty/types"
	custodykeeper "github.com/btcq-org/bounty/x/custody/keeper"
	custodytypes "github.com/btcq-org/bounty/x/custody/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ErrInvariantBroken is returned when an invocation would leave the escrow
// out of balance. The invocation is discarded.
var ErrInvariantBroken = errors.New("invariant broken")

// Telemetry receives one observation per state-changing invocation.
type Telemetry interface {
	ObserveExecute(action string, err error)
	SetHeight(height int64)
}

type nopTelemetry struct{}

func (nopTelemetry) ObserveExecute(string, error) {}
func (nopTelemetry) SetHeight(int64)              {}

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock used as block time.
func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// WithChainID sets the chain id reported in block info.
func WithChainID(chainID string) Option {
	return func(a *App) {
		a.chainID = chainID
	}
}

// WithTelemetry reports every invocation to t.
func WithTelemetry(t Telemetry) Option {
	return func(a *App) {
		a.telemetry = t
	}
}

// WithInvariantCheck asserts the module invariants after every invocation.
func WithInvariantCheck(enabled bool) Option {
	return func(a *App) {
		a.invariantCheck = enabled
	}
}

// App hosts the bounty ledger on a committed multistore. Each successful
// state-changing invocation is one block: its writes are committed and the
// height advances by one. Invocations are serialised.
type App struct {
	mtx    sync.Mutex
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore

	chainID        string
	clock          func() time.Time
	telemetry      Telemetry
	invariantCheck bool

	keys map[string]*storetypes.KVStoreKey

	AddressCodec  address.Codec
	CustodyKeeper custodykeeper.Keeper
	BountyKeeper  bountykeeper.Keeper

	msgServer   bountytypes.MsgServer
	queryServer bountytypes.QueryServer
}

// New mounts the module stores on db and loads the latest committed version.
func New(logger log.Logger, db dbm.DB, opts ...Option) (*App, error) {
	a := &App{
		logger:    logger.With("module", "app"),
		db:        db,
		chainID:   DefaultChainID,
		clock:     time.Now,
		telemetry: nopTelemetry{},
		keys: map[string]*storetypes.KVStoreKey{
			bountytypes.StoreKey:  storetypes.NewKVStoreKey(bountytypes.StoreKey),
			custodytypes.StoreKey: storetypes.NewKVStoreKey(custodytypes.StoreKey),
		},
		AddressCodec: addresscodec.NewBech32Codec(common.AccountAddressPrefix),
	}
	for _, opt := range opts {
		opt(a)
	}

	cms := rootmulti.NewStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range a.keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}
	a.cms = cms

	a.CustodyKeeper = custodykeeper.NewKeeper(
		runtime.NewKVStoreService(a.keys[custodytypes.StoreKey]),
		a.AddressCodec,
	)
	a.BountyKeeper = bountykeeper.NewKeeper(
		runtime.NewKVStoreService(a.keys[bountytypes.StoreKey]),
		a.AddressCodec,
		a.CustodyKeeper,
	)
	a.msgServer = bountykeeper.NewMsgServerImpl(&a.BountyKeeper)
	a.queryServer = bountykeeper.NewQueryServerImpl(a.BountyKeeper)

	a.telemetry.SetHeight(a.LastBlockHeight())
	return a, nil
}

// Close releases the database.
func (a *App) Close() error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.db.Close()
}

// LastBlockHeight is the height of the last committed invocation.
func (a *App) LastBlockHeight() int64 {
	return a.cms.LastCommitID().Version
}

// Result is the outcome of a committed invocation.
type Result struct {
	Height   int64                 `json:"height"`
	Response *bountytypes.Response `json:"response,omitempty"`
	Events   sdk.Events            `json:"events"`
}

func (a *App) newContext(ms storetypes.MultiStore, height int64) sdk.Context {
	header := cmtproto.Header{
		ChainID: a.chainID,
		Height:  height,
		Time:    a.clock().UTC(),
	}
	return sdk.NewContext(ms, header, false, a.logger)
}

// deliver runs fn on a cache of the committed state as the next block and
// commits only when fn succeeds and the invariants hold.
func (a *App) deliver(fn func(ctx sdk.Context) error) (sdk.Context, error) {
	cache := a.cms.CacheMultiStore()
	ctx := a.newContext(cache, a.LastBlockHeight()+1)
	if err := fn(ctx); err != nil {
		return ctx, err
	}
	if a.invariantCheck {
		if msg, broken := bountykeeper.AllInvariants(a.BountyKeeper)(ctx); broken {
			a.logger.Error("invariant broken, discarding block", "height", ctx.BlockHeight(), "msg", msg)
			return ctx, fmt.Errorf("%w: %s", ErrInvariantBroken, msg)
		}
	}
	cache.Write()
	commitID := a.cms.Commit()
	a.telemetry.SetHeight(commitID.Version)
	return ctx, nil
}

// query runs fn against the committed state.
func (a *App) query(fn func(ctx sdk.Context) error) error {
	ctx := a.newContext(a.cms.CacheMultiStore(), a.LastBlockHeight())
	return fn(ctx)
}

// Instantiate initialises the ledger with owner as the contract owner.
func (a *App) Instantiate(owner string, msg *bountytypes.InstantiateMsg) (*Result, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	var resp *bountytypes.Response
	ctx, err := a.deliver(func(ctx sdk.Context) error {
		var err error
		resp, err = a.msgServer.Instantiate(ctx, bountytypes.MessageInfo{Sender: owner}, msg)
		return err
	})
	a.telemetry.ObserveExecute(bountytypes.ActionInstantiate, err)
	if err != nil {
		return nil, err
	}
	return &Result{Height: ctx.BlockHeight(), Response: resp, Events: ctx.EventManager().Events()}, nil
}

// Execute runs msg on behalf of sender with funds attached.
func (a *App) Execute(sender string, funds sdk.Coins, msg bountytypes.ExecuteMsg) (*Result, error) {
	if msg == nil {
		return nil, sdkerrors.ErrInvalidRequest.Wrap("execute message cannot be nil")
	}
	a.mtx.Lock()
	defer a.mtx.Unlock()

	var resp *bountytypes.Response
	ctx, err := a.deliver(func(ctx sdk.Context) error {
		var err error
		resp, err = a.msgServer.Execute(ctx, bountytypes.MessageInfo{Sender: sender, Funds: funds}, msg)
		return err
	})
	a.telemetry.ObserveExecute(msg.Action(), err)
	if err != nil {
		a.logger.Debug("execute failed", "action", msg.Action(), "sender", sender, "err", err)
		return nil, err
	}
	return &Result{Height: ctx.BlockHeight(), Response: resp, Events: ctx.EventManager().Events()}, nil
}

// ExecuteJSON decodes a tagged execute message and runs it.
func (a *App) ExecuteJSON(sender string, funds sdk.Coins, bz []byte) (*Result, error) {
	msg, err := bountytypes.DecodeExecuteMsg(bz)
	if err != nil {
		return nil, err
	}
	return a.Execute(sender, funds, msg)
}

// Query answers a read-only request against the committed state.
func (a *App) Query(req bountytypes.QueryMsg) (bountytypes.QueryResponse, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	var resp bountytypes.QueryResponse
	err := a.query(func(ctx sdk.Context) error {
		var err error
		resp, err = a.queryServer.Query(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// QueryJSON decodes a tagged query message and answers it.
func (a *App) QueryJSON(bz []byte) (bountytypes.QueryResponse, error) {
	req, err := bountytypes.DecodeQueryMsg(bz)
	if err != nil {
		return nil, err
	}
	return a.Query(req)
}

// Fund credits coins to addr out of thin air. It stands in for the chain's
// minting and is how accounts obtain funds to escrow.
func (a *App) Fund(addr string, coins sdk.Coins) (*Result, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	acc, err := a.AddressCodec.StringToBytes(addr)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid address %s: %v", addr, err)
	}
	ctx, err := a.deliver(func(ctx sdk.Context) error {
		return a.CustodyKeeper.FundAccount(ctx, acc, coins)
	})
	if err != nil {
		return nil, err
	}
	return &Result{Height: ctx.BlockHeight(), Events: ctx.EventManager().Events()}, nil
}

// Balances returns every coin held by addr.
func (a *App) Balances(addr string) (sdk.Coins, error) {
	acc, err := a.AddressCodec.StringToBytes(addr)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid address %s: %v", addr, err)
	}
	a.mtx.Lock()
	defer a.mtx.Unlock()

	var coins sdk.Coins
	err = a.query(func(ctx sdk.Context) error {
		coins = a.CustodyKeeper.GetAllBalances(ctx, acc)
		return nil
	})
	return coins, err
}

// EscrowBalance returns the coins held by the bounty module account.
func (a *App) EscrowBalance() (sdk.Coins, error) {
	addr, err := a.AddressCodec.BytesToString(a.BountyKeeper.EscrowAddress())
	if err != nil {
		return nil, err
	}
	return a.Balances(addr)
}

// SkipBlocks commits n empty blocks.
func (a *App) SkipBlocks(n int) int64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	for i := 0; i < n; i++ {
		commitID := a.cms.Commit()
		a.telemetry.SetHeight(commitID.Version)
	}
	return a.LastBlockHeight()
}

// CheckInvariants runs every module invariant against the committed state.
func (a *App) CheckInvariants() (string, bool) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	var (
		msg    string
		broken bool
	)
	_ = a.query(func(ctx sdk.Context) error {
		msg, broken = bountykeeper.AllInvariants(a.BountyKeeper)(ctx)
		return nil
	})
	return msg, broken
}
