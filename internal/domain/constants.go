package domain

const (
	RequestStatusActive    = "active"
	RequestStatusDismissed = "dismissed"
)

// BloodGroups are the valid ABO/Rh values for profiles and requests.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodGroup reports whether g is one of the eight ABO/Rh groups.
func ValidBloodGroup(g string) bool {
	for _, b := range BloodGroups {
		if g == b {
			return true
		}
	}
	return false
}

// DefaultRadiusKm is the proximity cutoff used for both the request feed
// and the nearby-hospital search.
const DefaultRadiusKm = 20.0

const (
	NotifTypeBloodRequest     = "BLOOD_REQUEST"
	NotifTypeRequestDismissed = "REQUEST_DISMISSED"
)
