package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusDraft, StatusCalculated, true},
		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusPaid, false},
		{StatusCalculated, StatusApproved, true},
		{StatusCalculated, StatusDraft, true},
		{StatusCalculated, StatusPaid, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusDraft, true},
		{StatusApproved, StatusCalculated, false},
		{StatusPaid, StatusDraft, false},
		{StatusPaid, StatusApproved, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestLocked(t *testing.T) {
	assert.False(t, (&Record{Status: StatusDraft}).Locked())
	assert.False(t, (&Record{Status: StatusCalculated}).Locked())
	assert.True(t, (&Record{Status: StatusApproved}).Locked())
	assert.True(t, (&Record{Status: StatusPaid}).Locked())
}
