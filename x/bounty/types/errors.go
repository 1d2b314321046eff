package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/bounty module sentinel errors
var (
	ErrInvalidFunds        = errorsmod.Register(ModuleName, 2, "invalid funds")
	ErrInsufficientFunds   = errorsmod.Register(ModuleName, 3, "insufficient funds")
	ErrUnauthorized        = errorsmod.Register(ModuleName, 4, "unauthorized")
	ErrRecipientNotSet     = errorsmod.Register(ModuleName, 5, "recipient not set")
	ErrBountyExpired       = errorsmod.Register(ModuleName, 6, "bounty already expired")
	ErrNotYetExpired       = errorsmod.Register(ModuleName, 7, "not yet expired")
	ErrBountyNotFound      = errorsmod.Register(ModuleName, 8, "bounty not found")
	ErrInvalidRecipient    = errorsmod.Register(ModuleName, 9, "invalid recipient")
	ErrBountyClosed        = errorsmod.Register(ModuleName, 10, "bounty already completed")
	ErrNotInstantiated     = errorsmod.Register(ModuleName, 11, "ledger not instantiated")
	ErrAlreadyInstantiated = errorsmod.Register(ModuleName, 12, "ledger already instantiated")
)
