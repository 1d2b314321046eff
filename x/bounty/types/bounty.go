package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BountyStatus is the lifecycle state of a bounty.
type BountyStatus int32

const (
	StatusUnspecified BountyStatus = iota
	StatusOpen
	// StatusInProgress is reserved for a claim step; no transition reaches it.
	StatusInProgress
	StatusCompleted
	StatusExpired
)

var statusNames = map[BountyStatus]string{
	StatusUnspecified: "unspecified",
	StatusOpen:        "open",
	StatusInProgress:  "in_progress",
	StatusCompleted:   "completed",
	StatusExpired:     "expired",
}

func (s BountyStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BountyStatus(%d)", int32(s))
}

// IsTerminal reports whether no further transition is allowed.
func (s BountyStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusExpired
}

// ParseBountyStatus is the inverse of BountyStatus.String.
func ParseBountyStatus(s string) (BountyStatus, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return StatusUnspecified, fmt.Errorf("unknown bounty status: %s", s)
}

func (s BountyStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BountyStatus) UnmarshalJSON(bz []byte) error {
	var name string
	if err := json.Unmarshal(bz, &name); err != nil {
		return err
	}
	status, err := ParseBountyStatus(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Bounty is an escrowed-fund record awaiting a completion decision.
type Bounty struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      BountyStatus `json:"status"`
	Issuer      string       `json:"issuer"`
	Recipient   string       `json:"recipient,omitempty"`
	// EndHeight and EndTime are independent absolute bounds; EndTime is in
	// unix seconds.
	EndHeight  *uint64  `json:"end_height,omitempty"`
	EndTime    *int64   `json:"end_time,omitempty"`
	TokenDenom string   `json:"token_denom"`
	Quantity   math.Int `json:"quantity"`
	Balance    math.Int `json:"balance"`
}

// HasRecipient reports whether a recipient was named at creation.
func (b Bounty) HasRecipient() bool {
	return b.Recipient != ""
}

// IsExpired is true once the block is strictly past either bound. A bounty
// without bounds never expires.
func (b Bounty) IsExpired(block BlockInfo) bool {
	if b.EndHeight != nil && block.Height > *b.EndHeight {
		return true
	}
	if b.EndTime != nil && block.Time.Unix() > *b.EndTime {
		return true
	}
	return false
}

// EnsureOpen returns the terminal guard error for closed bounties.
func (b Bounty) EnsureOpen() error {
	switch b.Status {
	case StatusOpen:
		return nil
	case StatusCompleted:
		return ErrBountyClosed.Wrapf("bounty %d", b.ID)
	case StatusExpired:
		return ErrBountyExpired.Wrapf("bounty %d", b.ID)
	default:
		return ErrBountyClosed.Wrapf("bounty %d is %s", b.ID, b.Status)
	}
}

// Escrowed returns the coins currently held for the bounty.
func (b Bounty) Escrowed() sdk.Coins {
	if b.Balance.IsNil() || !b.Balance.IsPositive() {
		return sdk.NewCoins()
	}
	return sdk.NewCoins(sdk.NewCoin(b.TokenDenom, b.Balance))
}

// Validate checks the stored shape of a bounty, used for genesis import.
func (b Bounty) Validate() error {
	if _, ok := statusNames[b.Status]; !ok || b.Status == StatusUnspecified {
		return fmt.Errorf("bounty %d: invalid status %s", b.ID, b.Status)
	}
	if b.Issuer == "" {
		return fmt.Errorf("bounty %d: issuer cannot be empty", b.ID)
	}
	if err := sdk.ValidateDenom(b.TokenDenom); err != nil {
		return fmt.Errorf("bounty %d: %w", b.ID, err)
	}
	if b.Quantity.IsNil() || b.Quantity.IsNegative() {
		return fmt.Errorf("bounty %d: invalid quantity", b.ID)
	}
	if b.Balance.IsNil() || b.Balance.IsNegative() {
		return fmt.Errorf("bounty %d: invalid balance", b.ID)
	}
	if b.Status.IsTerminal() && !b.Balance.IsZero() {
		return fmt.Errorf("bounty %d: %s bounty still holds %s", b.ID, b.Status, b.Balance)
	}
	if b.Status == StatusOpen && b.Balance.LT(b.Quantity) {
		return fmt.Errorf("bounty %d: balance %s below quantity %s", b.ID, b.Balance, b.Quantity)
	}
	return nil
}

// ContractInfo names the code that owns the ledger state.
type ContractInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
	Owner    string `json:"owner"`
}
