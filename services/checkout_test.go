package services

import (
	"context"
	"errors"
	"testing"

	"crispy-corner/models"
	"crispy-corner/routing"
)

func validDetails() models.CustomerDetails {
	return models.CustomerDetails{
		Name:    "Asha",
		Phone:   "9876543210",
		Address: "12 MG Road",
		City:    "Hyderabad",
		Pincode: "500001",
	}
}

func TestSubmitDetailsValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CustomerDetails)
		wantField string
	}{
		{"missing name", func(d *models.CustomerDetails) { d.Name = "" }, "name"},
		{"missing phone", func(d *models.CustomerDetails) { d.Phone = "" }, "phone"},
		{"missing address", func(d *models.CustomerDetails) { d.Address = "" }, "address"},
		{"missing city", func(d *models.CustomerDetails) { d.City = "" }, "city"},
		{"missing pincode", func(d *models.CustomerDetails) { d.Pincode = "" }, "pincode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			co := NewCheckout()
			d := validDetails()
			tt.mutate(&d)
			err := co.SubmitDetails(d)
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("SubmitDetails error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
			if co.Step() != StepDetails {
				t.Errorf("step advanced to %v on invalid details", co.Step())
			}
		})
	}
}

func TestSubmitDetailsAdvances(t *testing.T) {
	co := NewCheckout()
	if err := co.SubmitDetails(validDetails()); err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}
	if co.Step() != StepLocation {
		t.Errorf("step = %v, want StepLocation", co.Step())
	}
	// Resubmitting from a later step only updates the stored details.
	d := validDetails()
	d.Name = "Asha K"
	if err := co.SubmitDetails(d); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if co.Step() != StepLocation {
		t.Errorf("resubmit moved step to %v", co.Step())
	}
	if co.Details.Name != "Asha K" {
		t.Errorf("details not updated: %q", co.Details.Name)
	}
}

func TestConfirmLocationGuards(t *testing.T) {
	co := NewCheckout()
	r := NewResolver(models.LatLng{Lat: 17.38, Lng: 78.48}, 20, 50)

	// Wrong step.
	if err := co.ConfirmLocation(r); !errors.Is(err, ErrWrongStep) {
		t.Errorf("at Details: err = %v, want ErrWrongStep", err)
	}

	if err := co.SubmitDetails(validDetails()); err != nil {
		t.Fatal(err)
	}

	// Not locked.
	if err := co.ConfirmLocation(r); !errors.Is(err, ErrLocationNotLocked) {
		t.Errorf("unlocked: err = %v, want ErrLocationNotLocked", err)
	}

	// Locked but not resolved.
	r.Lock()
	if err := co.ConfirmLocation(r); !errors.Is(err, ErrLocationNotResolved) {
		t.Errorf("unresolved: err = %v, want ErrLocationNotResolved", err)
	}

	if _, err := r.Resolve(context.Background(), stubRoutes{km: 4}); err != nil {
		t.Fatal(err)
	}
	if err := co.ConfirmLocation(r); err != nil {
		t.Fatalf("ConfirmLocation: %v", err)
	}
	if co.Step() != StepPayment {
		t.Errorf("step = %v, want StepPayment", co.Step())
	}
}

func TestBackNeverBelowDetails(t *testing.T) {
	co := NewCheckout()
	co.Back()
	if co.Step() != StepDetails {
		t.Errorf("Back at Details moved to %v", co.Step())
	}
	_ = co.SubmitDetails(validDetails())
	co.Back()
	if co.Step() != StepDetails {
		t.Errorf("Back from Location = %v, want StepDetails", co.Step())
	}
}

func TestSetPayment(t *testing.T) {
	co := NewCheckout()
	if err := co.SetPayment("bitcoin", ""); err == nil {
		t.Error("invalid payment method accepted")
	}
	if err := co.SetPayment(models.PaymentUPI, "ring the bell"); err != nil {
		t.Fatalf("SetPayment: %v", err)
	}
	if co.PaymentMethod != models.PaymentUPI || co.SpecialInstructions != "ring the bell" {
		t.Errorf("payment state = %q/%q", co.PaymentMethod, co.SpecialInstructions)
	}
}

func TestCanPlaceOrder(t *testing.T) {
	co := NewCheckout()
	if co.CanPlaceOrder() {
		t.Error("fresh checkout can place order")
	}
	_ = co.SubmitDetails(validDetails())
	r := NewResolver(models.LatLng{}, 20, 50)
	r.Lock()
	if _, err := r.Resolve(context.Background(), stubRoutes{km: 2}); err != nil {
		t.Fatal(err)
	}
	_ = co.ConfirmLocation(r)
	if co.CanPlaceOrder() {
		t.Error("can place order without proof reference")
	}
	co.SetProofRef("https://cdn.example/proof.jpg")
	if !co.CanPlaceOrder() {
		t.Error("cannot place order with proof set at Payment step")
	}
}

// stubRoutes returns a fixed route or error.
type stubRoutes struct {
	km  float64
	err error
}

func (s stubRoutes) Route(_ context.Context, _, _ models.LatLng) (routing.Route, error) {
	if s.err != nil {
		return routing.Route{}, s.err
	}
	return routing.Route{
		DistanceText:    "4.0 km",
		DurationText:    "12 mins",
		DistanceMeters:  int64(s.km * 1000),
		DurationSeconds: 720,
	}, nil
}
