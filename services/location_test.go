package services

import (
	"context"
	"errors"
	"testing"

	"crispy-corner/models"
)

func TestResolverLockRejectsReposition(t *testing.T) {
	r := NewResolver(models.LatLng{Lat: 17.38, Lng: 78.48}, 20, 50)

	p := models.LatLng{Lat: 17.30, Lng: 78.10}
	if err := r.SetPosition(p); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	r.Lock()
	if err := r.SetPosition(models.LatLng{Lat: 1, Lng: 1}); !errors.Is(err, ErrLocationLocked) {
		t.Errorf("locked SetPosition err = %v, want ErrLocationLocked", err)
	}
	if r.Position() != p {
		t.Errorf("position moved while locked: %+v", r.Position())
	}

	r.Unlock()
	if err := r.SetPosition(models.LatLng{Lat: 1, Lng: 1}); err != nil {
		t.Errorf("unlocked SetPosition: %v", err)
	}
}

func TestResolveRequiresLock(t *testing.T) {
	r := NewResolver(models.LatLng{}, 20, 50)
	if _, err := r.Resolve(context.Background(), stubRoutes{km: 3}); !errors.Is(err, ErrLocationNotLocked) {
		t.Errorf("err = %v, want ErrLocationNotLocked", err)
	}
}

func TestResolveComputesFee(t *testing.T) {
	r := NewResolver(models.LatLng{Lat: 17.38, Lng: 78.48}, 20, 50)
	r.Lock()
	res, err := r.Resolve(context.Background(), stubRoutes{km: 4})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.DeliveryFee != 80 {
		t.Errorf("fee = %d, want 80 (4 km x 20)", res.DeliveryFee)
	}
	if res.DistanceText != "4.0 km" || res.DurationText != "12 mins" {
		t.Errorf("texts = %q/%q", res.DistanceText, res.DurationText)
	}
	if r.Result() != res {
		t.Error("Result() should return the last resolution")
	}
	if res.MapLink == "" {
		t.Error("map link empty")
	}
}

func TestResolveFailureKeepsPriorResult(t *testing.T) {
	r := NewResolver(models.LatLng{}, 20, 50)
	r.Lock()
	prior, err := r.Resolve(context.Background(), stubRoutes{km: 2})
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Resolve(context.Background(), stubRoutes{err: errors.New("service down")})
	if err == nil {
		t.Fatal("expected resolve failure")
	}
	if r.Result() != prior {
		t.Error("failed resolve must leave the prior result untouched")
	}
}

func TestRepositionDropsStaleResult(t *testing.T) {
	r := NewResolver(models.LatLng{}, 20, 50)
	r.Lock()
	if _, err := r.Resolve(context.Background(), stubRoutes{km: 2}); err != nil {
		t.Fatal(err)
	}
	r.Unlock()
	if r.Result() != nil {
		t.Error("unlock should invalidate the resolved distance")
	}
}

func TestMapLink(t *testing.T) {
	got := MapLink(models.LatLng{Lat: 17.335109, Lng: 78})
	want := "https://www.google.com/maps?q=17.335109,78.000000"
	if got != want {
		t.Errorf("MapLink = %q, want %q", got, want)
	}
}
