package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"crispy-corner/models"
)

func TestCalcDeliveryFee(t *testing.T) {
	tests := []struct {
		km        float64
		ratePerKm int64
		minFee    int64
		want      int64
	}{
		{0, 20, 50, 50},      // floor applies
		{1, 20, 50, 50},      // 20 < 50 floor
		{2.5, 20, 50, 50},    // exactly the floor
		{4, 20, 50, 80},      // 4.0 x 20
		{4.04, 20, 50, 82},   // rounds distance up to 4.1
		{12.34, 20, 50, 248}, // 12.4 x 20
		{3, 20, 0, 60},       // no floor
	}
	for _, tt := range tests {
		got := CalcDeliveryFee(tt.km, tt.ratePerKm, tt.minFee)
		if got != tt.want {
			t.Errorf("CalcDeliveryFee(%v, %d, %d) = %d, want %d", tt.km, tt.ratePerKm, tt.minFee, got, tt.want)
		}
	}
}

func TestHaversineDistanceKm(t *testing.T) {
	// Same point.
	if got := HaversineDistanceKm(17.38, 78.48, 17.38, 78.48); got != 0 {
		t.Errorf("same point = %v, want 0", got)
	}
	// One degree of latitude is ~111 km.
	got := HaversineDistanceKm(17, 78, 18, 78)
	if got < 110 || got > 112 {
		t.Errorf("one degree latitude = %v km, want ~111", got)
	}
}

func placedCheckout(t *testing.T) (*Checkout, *Resolver) {
	t.Helper()
	co := NewCheckout()
	if err := co.SubmitDetails(validDetails()); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(models.LatLng{Lat: 17.38, Lng: 78.48}, 20, 50)
	r.Lock()
	if _, err := r.Resolve(context.Background(), stubRoutes{km: 4}); err != nil {
		t.Fatal(err)
	}
	if err := co.ConfirmLocation(r); err != nil {
		t.Fatal(err)
	}
	if err := co.SetPayment(models.PaymentUPI, "no onions"); err != nil {
		t.Fatal(err)
	}
	return co, r
}

func TestBuildOrderRejectsEmptyCart(t *testing.T) {
	catalog := DefaultCatalog()
	co, r := placedCheckout(t)
	co.SetProofRef("https://cdn.example/p.jpg")

	_, err := BuildOrder(NewCart(), catalog, co, r.Result())
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}

func TestBuildOrderRequiresProof(t *testing.T) {
	catalog := DefaultCatalog()
	co, r := placedCheckout(t)
	cart := NewCart()
	cart.AddToCart("1")

	_, err := BuildOrder(cart, catalog, co, r.Result())
	if !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("err = %v, want ErrPaymentRequired", err)
	}
}

func TestBuildOrderAssemblesTotals(t *testing.T) {
	catalog := DefaultCatalog()
	co, r := placedCheckout(t)
	co.SetProofRef("https://cdn.example/p.jpg")

	cart := NewCart()
	cart.AddToCart("1")
	cart.AddToCart("1")
	cart.AddToCart("8")

	o, err := BuildOrder(cart, catalog, co, r.Result())
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if o.Subtotal != 540 {
		t.Errorf("subtotal = %d, want 540", o.Subtotal)
	}
	if o.DeliveryFee != 80 {
		t.Errorf("fee = %d, want 80", o.DeliveryFee)
	}
	if o.Total != 620 {
		t.Errorf("total = %d, want 620", o.Total)
	}
	if o.ID == "" {
		t.Error("order id empty")
	}
	if len(o.Items) != 2 {
		t.Errorf("items = %d, want 2", len(o.Items))
	}
	if o.Customer != co.Details {
		t.Error("customer snapshot mismatch")
	}
}

func TestFormatOrderMessage(t *testing.T) {
	catalog := DefaultCatalog()
	co, r := placedCheckout(t)
	co.SetProofRef("https://cdn.example/p.jpg")
	cart := NewCart()
	cart.AddToCart("1")
	o, err := BuildOrder(cart, catalog, co, r.Result())
	if err != nil {
		t.Fatal(err)
	}

	m := FormatOrderMessage(o)
	for _, want := range []string{
		"Asha",
		"9876543210",
		"Crispy Chicken Burger",
		"Subtotal: ₹180",
		"Delivery Fee: ₹80",
		"Total: ₹260",
		"UPI Payment",
		"https://cdn.example/p.jpg",
		"no onions",
		"4.0 km",
	} {
		if !strings.Contains(m, want) {
			t.Errorf("message missing %q:\n%s", want, m)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("919876543210", "Order #1\nTotal: ₹590")
	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Fatalf("link = %q", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("text"); got != "Order #1\nTotal: ₹590" {
		t.Errorf("decoded text = %q", got)
	}
}
