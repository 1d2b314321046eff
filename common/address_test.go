package common

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	. "gopkg.in/check.v1"
)

func TestCommon(t *testing.T) {
	TestingT(t)
}

type AddressSuite struct{}

var _ = Suite(&AddressSuite{})

func (s *AddressSuite) TestNewAddress(c *C) {
	_, err := NewAddress("1lejrrtta9cgr49fuh7ktu3sddhe0ff7wenlpn6")
	c.Assert(err, NotNil)
	_, err = NewAddress("bogus")
	c.Assert(err, NotNil)
	_, err = NewAddress("cosmos1mw9p5ys9rfrlpcd5et7dqq5r7h4yzl9jgxz8z9")
	c.Assert(err, NotNil)

	empty, err := NewAddress("")
	c.Assert(err, IsNil)
	c.Assert(empty.IsEmpty(), Equals, true)
	c.Assert(empty, Equals, NoAddress)
}

func (s *AddressSuite) TestRoundTrip(c *C) {
	acc := sdk.AccAddress([]byte("bounty-address-bytes"))
	addr, err := AddressFromAcc(acc)
	c.Assert(err, IsNil)
	c.Assert(addr.IsEmpty(), Equals, false)

	parsed, err := NewAddress(addr.String())
	c.Assert(err, IsNil)
	c.Assert(parsed.Equals(addr), Equals, true)

	back, err := parsed.AccAddress()
	c.Assert(err, IsNil)
	c.Assert(back.Equals(acc), Equals, true)
}

func (s *AddressSuite) TestParseCoins(c *C) {
	coins, err := ParseCoins("")
	c.Assert(err, IsNil)
	c.Assert(coins.Empty(), Equals, true)

	coins, err = ParseCoins("500ubty")
	c.Assert(err, IsNil)
	c.Assert(coins.String(), Equals, "500ubty")

	_, err = ParseCoins("ubty500")
	c.Assert(err, NotNil)
}

func (s *AddressSuite) TestRandHexString(c *C) {
	c.Assert(RandHexString(10), HasLen, 10)
	c.Assert(RandHexString(7), HasLen, 7)
}
