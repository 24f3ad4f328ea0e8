package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckEligibility_NoPriorDonation(t *testing.T) {
	got := CheckEligibility(nil, date(2024, time.March, 1))

	assert.True(t, got.Eligible)
	assert.Equal(t, 0, got.DaysRemaining)
	assert.Nil(t, got.NextEligibleDate)
}

func TestCheckEligibility_InsideCooloff(t *testing.T) {
	last := date(2024, time.January, 1)
	now := date(2024, time.February, 1)

	got := CheckEligibility(&last, now)

	require.False(t, got.Eligible)
	require.NotNil(t, got.NextEligibleDate)
	assert.Equal(t, date(2024, time.March, 31), *got.NextEligibleDate)
	// 2024-02-01 to 2024-03-31 is 59 days.
	assert.Equal(t, 59, got.DaysRemaining)
}

func TestCheckEligibility_ExactBoundary(t *testing.T) {
	last := date(2024, time.January, 1)
	boundary := last.AddDate(0, 0, CooloffDays)

	justBefore := CheckEligibility(&last, boundary.Add(-time.Second))
	assert.False(t, justBefore.Eligible)
	assert.Equal(t, 1, justBefore.DaysRemaining)

	atBoundary := CheckEligibility(&last, boundary)
	assert.True(t, atBoundary.Eligible)
	assert.Equal(t, 0, atBoundary.DaysRemaining)

	after := CheckEligibility(&last, boundary.AddDate(0, 0, 30))
	assert.True(t, after.Eligible)
}

func TestCheckEligibility_DaysRemainingRoundsUp(t *testing.T) {
	last := date(2024, time.January, 1)
	next := last.AddDate(0, 0, CooloffDays)

	// Half a day left still counts as a full waiting day.
	got := CheckEligibility(&last, next.Add(-12*time.Hour))
	assert.Equal(t, 1, got.DaysRemaining)

	got = CheckEligibility(&last, next.Add(-36*time.Hour))
	assert.Equal(t, 2, got.DaysRemaining)
}

func TestExpiryDate(t *testing.T) {
	assert.Equal(t, date(2024, time.January, 8), ExpiryDate(date(2024, time.January, 1)))
	assert.Equal(t, date(2024, time.March, 3), ExpiryDate(date(2024, time.February, 25)))
}

func TestBadgeFor_Thresholds(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "None"},
		{1, "First Donation"},
		{4, "First Donation"},
		{5, "Life Saver"},
		{9, "Life Saver"},
		{10, "Hero Donor"},
		{19, "Hero Donor"},
		{20, "Platinum Donor"},
		{57, "Platinum Donor"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BadgeFor(tc.count), "count %d", tc.count)
	}
}
