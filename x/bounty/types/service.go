package types

import "context"

// MsgServer is the state-changing entry point used by the host.
type MsgServer interface {
	Instantiate(ctx context.Context, info MessageInfo, msg *InstantiateMsg) (*Response, error)
	Execute(ctx context.Context, info MessageInfo, msg ExecuteMsg) (*Response, error)
}

// QueryServer is the read-only entry point used by the host.
type QueryServer interface {
	Bounty(ctx context.Context, req *QueryBountyRequest) (*QueryBountyResponse, error)
	Bounties(ctx context.Context, req *QueryBountiesRequest) (*QueryBountiesResponse, error)
	ContractInfo(ctx context.Context, req *QueryContractInfoRequest) (*QueryContractInfoResponse, error)
	Query(ctx context.Context, req QueryMsg) (QueryResponse, error)
}
