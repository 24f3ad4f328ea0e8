package lifecycle

import (
	"math"
	"time"
)

// CooloffDays is the interval after a donation during which the donor may not
// post another one.
const CooloffDays = 90

// PostExpiryDays is how long an unfulfilled donation post stays available.
const PostExpiryDays = 7

// Eligibility is the result of a cooloff check against a donor's last
// donation date.
type Eligibility struct {
	Eligible         bool       `json:"eligible"`
	DaysRemaining    int        `json:"daysRemaining"`
	NextEligibleDate *time.Time `json:"nextEligibleDate"`
}

// CheckEligibility reports whether a donor whose most recent donation was at
// lastDonation may donate again at now. A donor with no prior donation is
// always eligible.
func CheckEligibility(lastDonation *time.Time, now time.Time) Eligibility {
	if lastDonation == nil {
		return Eligibility{Eligible: true}
	}

	next := lastDonation.AddDate(0, 0, CooloffDays)
	if !now.Before(next) {
		return Eligibility{Eligible: true}
	}

	remaining := int(math.Ceil(next.Sub(now).Hours() / 24))
	return Eligibility{
		Eligible:         false,
		DaysRemaining:    remaining,
		NextEligibleDate: &next,
	}
}

// ExpiryDate returns the date an unfulfilled donation post posted for
// donationDate stops being available.
func ExpiryDate(donationDate time.Time) time.Time {
	return donationDate.AddDate(0, 0, PostExpiryDays)
}

// BadgeFor maps a lifetime donation count to a donor badge. Counts only ever
// grow, so badges never regress.
func BadgeFor(count int) string {
	switch {
	case count >= 20:
		return "Platinum Donor"
	case count >= 10:
		return "Hero Donor"
	case count >= 5:
		return "Life Saver"
	case count >= 1:
		return "First Donation"
	default:
		return "None"
	}
}
