package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeBounty = ModuleName
	EventTypePayout = "bounty_payout"

	AttributeKeyMethod    = "method"
	AttributeKeyOwner     = "owner"
	AttributeKeyAction    = "action"
	AttributeKeyBountyID  = "bounty_id"
	AttributeKeyIssuer    = "issuer"
	AttributeKeyStatus    = "status"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"

	ActionInstantiate    = "instantiate"
	ActionCreateBounty   = "create_bounty"
	ActionFinalizeBounty = "finalize_bounty"
	ActionExpireBounty   = "expire_bounty"
)

// Attribute is a key/value pair reported to the caller and emitted as an
// event attribute.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BankSend instructs the host to move escrowed funds out of the module.
type BankSend struct {
	ToAddress string    `json:"to_address"`
	Amount    sdk.Coins `json:"amount"`
}

// Response is the acknowledgment of a state-changing call.
type Response struct {
	Attributes []Attribute     `json:"attributes"`
	Messages   []BankSend      `json:"messages,omitempty"`
	Data       ExecuteResponse `json:"data,omitempty"`
}

// NewResponse returns an empty Response.
func NewResponse() *Response {
	return &Response{Attributes: []Attribute{}}
}

// AddAttribute appends a key/value attribute.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// AddMessage appends a payout instruction.
func (r *Response) AddMessage(msg BankSend) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// SetData attaches the typed result.
func (r *Response) SetData(data ExecuteResponse) *Response {
	r.Data = data
	return r
}

// Attribute returns the value stored under key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Event converts the attributes into an sdk event of EventTypeBounty.
func (r *Response) Event() sdk.Event {
	attrs := make([]sdk.Attribute, 0, len(r.Attributes))
	for _, attr := range r.Attributes {
		attrs = append(attrs, sdk.NewAttribute(attr.Key, attr.Value))
	}
	return sdk.NewEvent(EventTypeBounty, attrs...)
}

// PayoutEvent describes an executed BankSend.
func PayoutEvent(bountyID string, send BankSend) sdk.Event {
	return sdk.NewEvent(
		EventTypePayout,
		sdk.NewAttribute(AttributeKeyBountyID, bountyID),
		sdk.NewAttribute(AttributeKeyRecipient, send.ToAddress),
		sdk.NewAttribute(AttributeKeyAmount, send.Amount.String()),
	)
}
