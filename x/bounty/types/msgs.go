package types

import (
	"encoding/json"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	se "github.com/cosmos/cosmos-sdk/types/errors"
)

// InstantiateMsg initialises the ledger. StartID defaults to
// DefaultStartBountyID.
type InstantiateMsg struct {
	StartID *uint64 `json:"start_id,omitempty"`
}

// StartBountyID returns the first id to hand out.
func (m InstantiateMsg) StartBountyID() uint64 {
	if m.StartID == nil {
		return DefaultStartBountyID
	}
	return *m.StartID
}

// ExecuteMsg is the closed set of state-changing requests. Only the message
// types of this package implement it.
type ExecuteMsg interface {
	// Action names the message on the wire and in event attributes.
	Action() string
	ValidateBasic() error
	isExecuteMsg()
}

var (
	_ ExecuteMsg = &MsgCreateBounty{}
	_ ExecuteMsg = &MsgFinalizeBounty{}
	_ ExecuteMsg = &MsgExpireBounty{}
)

// MsgCreateBounty escrows the attached funds as a new bounty.
type MsgCreateBounty struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Recipient   string   `json:"recipient,omitempty"`
	EndHeight   *uint64  `json:"end_height,omitempty"`
	EndTime     *int64   `json:"end_time,omitempty"`
	TokenDenom  string   `json:"token_denom"`
	Quantity    math.Int `json:"quantity"`
}

func (*MsgCreateBounty) isExecuteMsg() {}

func (*MsgCreateBounty) Action() string { return ActionCreateBounty }

// ValidateBasic performs stateless validation of MsgCreateBounty.
func (m *MsgCreateBounty) ValidateBasic() error {
	if err := sdk.ValidateDenom(m.TokenDenom); err != nil {
		return se.ErrInvalidRequest.Wrapf("invalid token_denom: %v", err)
	}
	if m.Quantity.IsNil() {
		return se.ErrInvalidRequest.Wrap("quantity is required")
	}
	if m.Quantity.IsNegative() {
		return se.ErrInvalidRequest.Wrapf("quantity cannot be negative: %s", m.Quantity)
	}
	return nil
}

// MsgFinalizeBounty closes a bounty, paying the recipient on success or
// refunding the issuer otherwise.
type MsgFinalizeBounty struct {
	BountyID uint64 `json:"bounty_id"`
	Success  bool   `json:"success"`
}

func (*MsgFinalizeBounty) isExecuteMsg() {}

func (*MsgFinalizeBounty) Action() string { return ActionFinalizeBounty }

func (m *MsgFinalizeBounty) ValidateBasic() error {
	return nil
}

// MsgExpireBounty refunds the issuer of a bounty past its deadline.
type MsgExpireBounty struct {
	BountyID uint64 `json:"bounty_id"`
}

func (*MsgExpireBounty) isExecuteMsg() {}

func (*MsgExpireBounty) Action() string { return ActionExpireBounty }

func (m *MsgExpireBounty) ValidateBasic() error {
	return nil
}

// ExecuteResponse is the closed set of typed results, one per ExecuteMsg
// plus instantiation.
type ExecuteResponse interface {
	isExecuteResponse()
}

type InstantiateResponse struct {
	NextBountyID uint64 `json:"next_bounty_id"`
}

type CreateBountyResponse struct {
	BountyID uint64 `json:"bounty_id"`
}

type FinalizeBountyResponse struct {
	BountyID uint64       `json:"bounty_id"`
	Status   BountyStatus `json:"status"`
	Payout   BankSend     `json:"payout"`
}

type ExpireBountyResponse struct {
	BountyID uint64   `json:"bounty_id"`
	Refund   BankSend `json:"refund"`
}

func (*InstantiateResponse) isExecuteResponse()    {}
func (*CreateBountyResponse) isExecuteResponse()   {}
func (*FinalizeBountyResponse) isExecuteResponse() {}
func (*ExpireBountyResponse) isExecuteResponse()   {}

// EncodeExecuteMsg writes msg in its externally tagged form, e.g.
// {"create_bounty":{...}}.
func EncodeExecuteMsg(msg ExecuteMsg) ([]byte, error) {
	if msg == nil {
		return nil, se.ErrInvalidRequest.Wrap("message cannot be nil")
	}
	return json.Marshal(map[string]ExecuteMsg{msg.Action(): msg})
}

// DecodeExecuteMsg parses the externally tagged form written by
// EncodeExecuteMsg.
func DecodeExecuteMsg(bz []byte) (ExecuteMsg, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(bz, &tagged); err != nil {
		return nil, se.ErrJSONUnmarshal.Wrapf("execute message: %v", err)
	}
	if len(tagged) != 1 {
		return nil, se.ErrInvalidRequest.Wrapf("execute message must have exactly one variant, got %d", len(tagged))
	}
	var (
		action string
		body   json.RawMessage
	)
	for k, v := range tagged {
		action, body = k, v
	}
	var msg ExecuteMsg
	switch action {
	case ActionCreateBounty:
		msg = &MsgCreateBounty{}
	case ActionFinalizeBounty:
		msg = &MsgFinalizeBounty{}
	case ActionExpireBounty:
		msg = &MsgExpireBounty{}
	default:
		return nil, se.ErrUnknownRequest.Wrapf("unknown execute message: %s", action)
	}
	if err := json.Unmarshal(body, msg); err != nil {
		return nil, se.ErrJSONUnmarshal.Wrapf("%s: %v", action, err)
	}
	return msg, nil
}
