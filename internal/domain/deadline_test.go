package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Expired(now.Add(time.Minute), now), "future deadline is not expired")
	assert.True(t, Expired(now.Add(-time.Minute), now), "past deadline is expired")
	assert.True(t, Expired(now, now), "deadline boundary counts as expired")
	assert.False(t, Expired(time.Time{}, now), "zero deadline never expires")
}

func TestOrderRoleHelpers(t *testing.T) {
	order := &Order{BuyerID: "buyer-1", SellerID: "seller-1"}

	assert.True(t, order.IsBuyer("buyer-1"))
	assert.False(t, order.IsBuyer("seller-1"))
	assert.True(t, order.IsSeller("seller-1"))
	assert.False(t, order.IsSeller(""), "empty user id matches nobody")

	anonymous := &Order{}
	assert.False(t, anonymous.IsBuyer(""), "unset buyer id matches nobody")
}

func TestOrderStatusHelpers(t *testing.T) {
	cases := []struct {
		status   OrderStatus
		terminal bool
		active   bool
	}{
		{StatusWaitingForSeller, false, true},
		{StatusWaitingForBuyer, false, true},
		{StatusCompleted, true, false},
		{StatusCancelled, true, false},
		{StatusDisputed, false, false},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.status}
		assert.Equal(t, tc.terminal, order.IsTerminal(), "IsTerminal for %s", tc.status)
		assert.Equal(t, tc.active, order.IsActive(), "IsActive for %s", tc.status)
	}
}
