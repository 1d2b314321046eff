package types

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BlockInfo is the logical clock supplied by the host for one invocation.
type BlockInfo struct {
	Height  uint64    `json:"height"`
	Time    time.Time `json:"time"`
	ChainID string    `json:"chain_id"`
}

// Env carries host supplied, tamper-proof inputs.
type Env struct {
	Block BlockInfo `json:"block"`
}

// EnvFromContext reads the block header of the executing context.
func EnvFromContext(ctx sdk.Context) Env {
	height := ctx.BlockHeight()
	if height < 0 {
		height = 0
	}
	return Env{
		Block: BlockInfo{
			Height:  uint64(height),
			Time:    ctx.BlockTime(),
			ChainID: ctx.ChainID(),
		},
	}
}

// MessageInfo is the verified sender and the funds attached to a message.
type MessageInfo struct {
	Sender string    `json:"sender"`
	Funds  sdk.Coins `json:"funds"`
}
