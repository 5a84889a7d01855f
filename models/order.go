package models

// CustomerDetails is the first checkout step's form. All fields are free-form
// strings and must be non-empty before the wizard moves on.
type CustomerDetails struct {
	Name    string
	Phone   string
	Address string
	City    string
	Pincode string
}

// OrderLineItem is a cart entry joined against the catalog. Derived at read
// time, except inside a placed Order where it is a snapshot.
type OrderLineItem struct {
	ID       string
	Name     string
	Price    int64
	Quantity int
}

func (li OrderLineItem) LineTotal() int64 {
	return li.Price * int64(li.Quantity)
}

type LatLng struct {
	Lat float64
	Lng float64
}

// LocationResult is the outcome of one distance resolution for a locked
// delivery point.
type LocationResult struct {
	Position     LatLng
	MapLink      string
	DistanceText string
	DurationText string
	DistanceKm   float64
	DeliveryFee  int64 // taxi-style: per-km rate, floored at the minimum fee
}

const (
	PaymentCash       = "cash"
	PaymentUPI        = "upi"
	PaymentCard       = "card"
	PaymentNetBanking = "netbanking"
)

// Order is assembled once at submission time and never persisted; its only
// lifecycle is being formatted into the outgoing message.
type Order struct {
	ID                  string
	Customer            CustomerDetails
	Items               []OrderLineItem
	Subtotal            int64
	DeliveryFee         int64
	Total               int64
	DistanceText        string
	DurationText        string
	MapLink             string
	PaymentMethod       string
	PaymentProofRef     string
	SpecialInstructions string
}
