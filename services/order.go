package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"crispy-corner/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentRequired = errors.New("payment proof is required")
)

// CalcDeliveryFee is taxi-style: distance rounded up to 0.1 km, times the
// per-km rate, floored at the minimum fee.
func CalcDeliveryFee(distanceKm float64, ratePerKm, minFee int64) int64 {
	rounded := math.Ceil(distanceKm*10) / 10
	fee := int64(math.Round(rounded * float64(ratePerKm)))
	if fee < minFee {
		return minFee
	}
	return fee
}

func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(R*c*100) / 100
}

// BuildOrder snapshots the cart, customer details and resolved location into
// a final Order. It rejects an empty cart and a missing proof reference; the
// wizard must have reached Payment with a resolved location.
func BuildOrder(cart *Cart, catalog *Catalog, co *Checkout, loc *models.LocationResult) (*models.Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if co.Step() != StepPayment {
		return nil, ErrWrongStep
	}
	if loc == nil {
		return nil, ErrLocationNotResolved
	}
	if co.ProofRef == "" {
		return nil, ErrPaymentRequired
	}
	subtotal := cart.Subtotal(catalog)
	return &models.Order{
		ID:                  uuid.NewString(),
		Customer:            co.Details,
		Items:               cart.LineItems(catalog),
		Subtotal:            subtotal,
		DeliveryFee:         loc.DeliveryFee,
		Total:               subtotal + loc.DeliveryFee,
		DistanceText:        loc.DistanceText,
		DurationText:        loc.DurationText,
		MapLink:             loc.MapLink,
		PaymentMethod:       co.PaymentMethod,
		PaymentProofRef:     co.ProofRef,
		SpecialInstructions: co.SpecialInstructions,
	}, nil
}

func PaymentMethodLabel(method string) string {
	switch method {
	case models.PaymentCash:
		return "Cash on Delivery"
	case models.PaymentUPI:
		return "UPI Payment"
	case models.PaymentCard:
		return "Credit/Debit Card"
	case models.PaymentNetBanking:
		return "Net Banking"
	default:
		return method
	}
}

// FormatOrderMessage renders the single human-readable summary sent over the
// messaging deep link.
func FormatOrderMessage(o *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 New Order #%s\n\n", shortID(o.ID))
	fmt.Fprintf(&b, "👤 %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "📞 %s\n", o.Customer.Phone)
	fmt.Fprintf(&b, "🏠 %s, %s - %s\n", o.Customer.Address, o.Customer.City, o.Customer.Pincode)
	if o.MapLink != "" {
		fmt.Fprintf(&b, "📍 %s", o.MapLink)
		if o.DistanceText != "" {
			fmt.Fprintf(&b, " (%s, %s)", o.DistanceText, o.DurationText)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n🛒 Items:\n")
	for _, li := range o.Items {
		fmt.Fprintf(&b, "• %d x %s — ₹%d\n", li.Quantity, li.Name, li.LineTotal())
	}
	fmt.Fprintf(&b, "\nSubtotal: ₹%d\n", o.Subtotal)
	fmt.Fprintf(&b, "Delivery Fee: ₹%d\n", o.DeliveryFee)
	fmt.Fprintf(&b, "Total: ₹%d\n\n", o.Total)
	fmt.Fprintf(&b, "💳 Payment: %s\n", PaymentMethodLabel(o.PaymentMethod))
	fmt.Fprintf(&b, "🖼 Payment proof: %s\n", o.PaymentProofRef)
	if o.SpecialInstructions != "" {
		fmt.Fprintf(&b, "📝 %s\n", o.SpecialInstructions)
	}
	return b.String()
}

// WhatsAppLink builds the fire-and-forget deep link the summary is handed to.
func WhatsAppLink(number, text string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
