package models

// User roles.
const (
	RoleAdmin    = "admin"
	RoleDonor    = "donor"
	RoleReceiver = "receiver"
)

// Donation post statuses. Expired and fulfilled are terminal.
const (
	DonationAvailable = "available"
	DonationExpired   = "expired"
	DonationFulfilled = "fulfilled"
)

// Request post statuses. Fulfilled and cancelled are terminal.
const (
	RequestActive    = "active"
	RequestFulfilled = "fulfilled"
	RequestCancelled = "cancelled"
)

// Request urgency.
const (
	RequestNormal    = "normal"
	RequestEmergency = "emergency"
)

// Donation history statuses.
const (
	HistoryCompleted = "completed"
	HistoryExpired   = "expired"
)

// Notification types and post kinds.
const (
	NotificationNewDonation       = "new_donation"
	NotificationNewRequest        = "new_request"
	NotificationDonationFulfilled = "donation_fulfilled"

	PostTypeDonation = "donation"
	PostTypeRequest  = "request"
)

// BloodTypes lists the eight ABO/Rh groups accepted everywhere a blood type
// is required. User profiles may additionally leave the field empty.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Hospitals is the fixed list a donation or request must name.
var Hospitals = []string{
	"Shifa International Hospital, Islamabad",
	"Pakistan Institute of Medical Sciences (PIMS), Islamabad",
	"Aga Khan University Hospital, Karachi",
	"Jinnah Hospital, Lahore",
	"Lahore General Hospital, Lahore",
	"Combined Military Hospital (CMH), Rawalpindi",
	"Holy Family Hospital, Rawalpindi",
	"Services Hospital, Lahore",
	"Mayo Hospital, Lahore",
	"Civil Hospital, Karachi",
}

func ValidBloodType(bt string) bool {
	for _, t := range BloodTypes {
		if t == bt {
			return true
		}
	}
	return false
}

func ValidHospital(h string) bool {
	for _, known := range Hospitals {
		if known == h {
			return true
		}
	}
	return false
}
