package services

import (
	"context"
	"errors"
	"fmt"

	"crispy-corner/models"
	"crispy-corner/routing"
)

// DefaultPosition is the map center used before the client shares a real
// position.
var DefaultPosition = models.LatLng{Lat: 17.335109, Lng: 78.0}

var ErrLocationLocked = errors.New("delivery point is locked")

// RouteFinder is what Resolve needs from the routing client.
type RouteFinder interface {
	Route(ctx context.Context, origin, dest models.LatLng) (routing.Route, error)
}

// Resolver owns the delivery point for one session: the marker position, the
// lock flag, and the last resolved distance/fee. Resolution failures leave
// the previous result intact; retry is always an explicit caller action.
type Resolver struct {
	origin    models.LatLng
	ratePerKm int64
	minFee    int64

	position models.LatLng
	locked   bool
	result   *models.LocationResult
}

func NewResolver(origin models.LatLng, ratePerKm, minFee int64) *Resolver {
	return &Resolver{
		origin:    origin,
		ratePerKm: ratePerKm,
		minFee:    minFee,
		position:  DefaultPosition,
	}
}

func (r *Resolver) Position() models.LatLng {
	return r.position
}

// SetPosition moves the marker and drops any stale resolution. Rejected once
// the point is locked.
func (r *Resolver) SetPosition(p models.LatLng) error {
	if r.locked {
		return ErrLocationLocked
	}
	r.position = p
	r.result = nil
	return nil
}

// Lock freezes the marker. The user confirms explicitly before this is called.
func (r *Resolver) Lock() {
	r.locked = true
}

// Unlock releases the marker for repositioning and invalidates the resolved
// distance, which was computed for the now-movable point.
func (r *Resolver) Unlock() {
	r.locked = false
	r.result = nil
}

func (r *Resolver) Locked() bool {
	return r.locked
}

// Result is the last successful resolution, nil if none.
func (r *Resolver) Result() *models.LocationResult {
	return r.result
}

// Resolve asks the routing service for the shop→marker distance and derives
// the delivery fee. The marker must be locked first.
func (r *Resolver) Resolve(ctx context.Context, rf RouteFinder) (*models.LocationResult, error) {
	if !r.locked {
		return nil, ErrLocationNotLocked
	}
	route, err := rf.Route(ctx, r.origin, r.position)
	if err != nil {
		return nil, fmt.Errorf("resolve distance: %w", err)
	}
	km := route.DistanceKm()
	res := &models.LocationResult{
		Position:     r.position,
		MapLink:      MapLink(r.position),
		DistanceText: route.DistanceText,
		DurationText: route.DurationText,
		DistanceKm:   km,
		DeliveryFee:  CalcDeliveryFee(km, r.ratePerKm, r.minFee),
	}
	r.result = res
	return res, nil
}

// MapLink renders a shareable map URL for the chosen point.
func MapLink(p models.LatLng) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", p.Lat, p.Lng)
}
