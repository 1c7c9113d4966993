package lab

import "fmt"

// Student is a lab member who may borrow equipment.
type Student struct {
	UID                string `json:"uid"`
	Name               string `json:"name"`
	FineAmount         int    `json:"fine_amount"`
	CurrentBorrowCount int    `json:"current_borrow_count"`
}

// Asset is a piece of lab equipment and its current availability.
// SecurityLevel ranges from 1 to 3; level 3 is restricted.
type Asset struct {
	AssetID       string `json:"asset_id"`
	AssetName     string `json:"asset_name"`
	Available     bool   `json:"available"`
	SecurityLevel int    `json:"security_level"`
}

// CheckoutRequest asks for an asset on behalf of a student for a number of hours.
// It can only be built through NewCheckoutRequest.
type CheckoutRequest struct {
	uid     string
	assetID string
	hours   int
}

// NewCheckoutRequest rejects hours outside [1,6] before the request can reach a service.
func NewCheckoutRequest(uid, assetID string, hours int) (CheckoutRequest, error) {
	if hours < MinHours || hours > MaxHours {
		return CheckoutRequest{}, fmt.Errorf("%w: hours must be %d to %d", ErrInvalidArgument, MinHours, MaxHours)
	}
	return CheckoutRequest{uid: uid, assetID: assetID, hours: hours}, nil
}

func (r CheckoutRequest) UID() string     { return r.uid }
func (r CheckoutRequest) AssetID() string { return r.assetID }
func (r CheckoutRequest) Hours() int      { return r.hours }

// Receipt confirms a successful checkout.
type Receipt struct {
	ID             string   `json:"id"`
	UID            string   `json:"uid"`
	AssetID        string   `json:"asset_id"`
	RequestedHours int      `json:"requested_hours"`
	EffectiveHours int      `json:"effective_hours"`
	Notes          []string `json:"notes,omitempty"`
}

func (r Receipt) String() string { return r.ID }
