package types

import (
	"encoding/json"

	se "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	QueryGetBounty    = "get_bounty"
	QueryListBounties = "list_bounties"
	QueryContractInfo = "contract_info"
)

// QueryMsg is the closed set of read-only requests.
type QueryMsg interface {
	Route() string
	isQueryMsg()
}

type QueryBountyRequest struct {
	BountyID uint64 `json:"bounty_id"`
}

type QueryBountiesRequest struct{}

type QueryContractInfoRequest struct{}

func (*QueryBountyRequest) isQueryMsg()       {}
func (*QueryBountiesRequest) isQueryMsg()     {}
func (*QueryContractInfoRequest) isQueryMsg() {}

func (*QueryBountyRequest) Route() string       { return QueryGetBounty }
func (*QueryBountiesRequest) Route() string     { return QueryListBounties }
func (*QueryContractInfoRequest) Route() string { return QueryContractInfo }

// QueryResponse is the closed set of query results, parallel to QueryMsg.
type QueryResponse interface {
	isQueryResponse()
}

type QueryBountyResponse struct {
	Bounty Bounty `json:"bounty"`
}

type QueryBountiesResponse struct {
	Bounties []Bounty `json:"bounties"`
}

type QueryContractInfoResponse struct {
	ContractInfo ContractInfo `json:"contract_info"`
	NextBountyID uint64       `json:"next_bounty_id"`
}

func (*QueryBountyResponse) isQueryResponse()       {}
func (*QueryBountiesResponse) isQueryResponse()     {}
func (*QueryContractInfoResponse) isQueryResponse() {}

// DecodeQueryMsg parses the externally tagged form, e.g.
// {"get_bounty":{"bounty_id":1}}.
func DecodeQueryMsg(bz []byte) (QueryMsg, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(bz, &tagged); err != nil {
		return nil, se.ErrJSONUnmarshal.Wrapf("query message: %v", err)
	}
	if len(tagged) != 1 {
		return nil, se.ErrInvalidRequest.Wrapf("query message must have exactly one variant, got %d", len(tagged))
	}
	var (
		route string
		body  json.RawMessage
	)
	for k, v := range tagged {
		route, body = k, v
	}
	var msg QueryMsg
	switch route {
	case QueryGetBounty:
		msg = &QueryBountyRequest{}
	case QueryListBounties:
		msg = &QueryBountiesRequest{}
	case QueryContractInfo:
		msg = &QueryContractInfoRequest{}
	default:
		return nil, se.ErrUnknownRequest.Wrapf("unknown query: %s", route)
	}
	if err := json.Unmarshal(body, msg); err != nil {
		return nil, se.ErrJSONUnmarshal.Wrapf("%s: %v", route, err)
	}
	return msg, nil
}
