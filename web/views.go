package web

import (
	"crispy-corner/models"
	"crispy-corner/services"
)

// Lightweight DTOs for responses; core models stay untagged.

type menuItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsPopular   bool   `json:"is_popular,omitempty"`
	IsNew       bool   `json:"is_new,omitempty"`
}

func toMenuItemView(it models.MenuItem) menuItemView {
	return menuItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Category:    it.Category,
		Image:       it.Image,
		IsPopular:   it.IsPopular,
		IsNew:       it.IsNew,
	}
}

type lineItemView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type cartView struct {
	Items       []lineItemView `json:"items"`
	Subtotal    int64          `json:"subtotal"`
	DeliveryFee int64          `json:"delivery_fee"`
	Total       int64          `json:"total"`
}

type positionView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationView struct {
	Position     positionView `json:"position"`
	Locked       bool         `json:"locked"`
	MapLink      string       `json:"map_link,omitempty"`
	DistanceText string       `json:"distance_text,omitempty"`
	DurationText string       `json:"duration_text,omitempty"`
	DeliveryFee  int64        `json:"delivery_fee,omitempty"`
}

type checkoutView struct {
	Step          string       `json:"step"`
	Name          string       `json:"name,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Address       string       `json:"address,omitempty"`
	City          string       `json:"city,omitempty"`
	Pincode       string       `json:"pincode,omitempty"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	ProofRef      string       `json:"proof_ref,omitempty"`
	Location      locationView `json:"location"`
	CanPlaceOrder bool         `json:"can_place_order"`
}

type orderView struct {
	ID           string         `json:"id"`
	Items        []lineItemView `json:"items"`
	Subtotal     int64          `json:"subtotal"`
	DeliveryFee  int64          `json:"delivery_fee"`
	Total        int64          `json:"total"`
	Message      string         `json:"message"`
	WhatsAppLink string         `json:"whatsapp_link"`
}

func toLineItemViews(items []models.OrderLineItem) []lineItemView {
	out := make([]lineItemView, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemView{
			ID:        li.ID,
			Name:      li.Name,
			Price:     li.Price,
			Quantity:  li.Quantity,
			LineTotal: li.LineTotal(),
		})
	}
	return out
}

// deliveryFeeFor picks the resolved fee when one exists, otherwise the flat
// default.
func (s *Server) deliveryFeeFor(sess *services.Session) int64 {
	if res := sess.Resolver.Result(); res != nil {
		return res.DeliveryFee
	}
	return s.cfg.Delivery.MinFee
}

func (s *Server) toCartView(sess *services.Session) cartView {
	items := sess.Cart.LineItems(s.catalog)
	subtotal := sess.Cart.Subtotal(s.catalog)
	fee := s.deliveryFeeFor(sess)
	return cartView{
		Items:       toLineItemViews(items),
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}

func toLocationView(r *services.Resolver) locationView {
	v := locationView{
		Position: positionView{Lat: r.Position().Lat, Lng: r.Position().Lng},
		Locked:   r.Locked(),
	}
	if res := r.Result(); res != nil {
		v.MapLink = res.MapLink
		v.DistanceText = res.DistanceText
		v.DurationText = res.DurationText
		v.DeliveryFee = res.DeliveryFee
	}
	return v
}

func toCheckoutView(sess *services.Session) checkoutView {
	co := sess.Checkout
	return checkoutView{
		Step:          co.Step().String(),
		Name:          co.Details.Name,
		Phone:         co.Details.Phone,
		Address:       co.Details.Address,
		City:          co.Details.City,
		Pincode:       co.Details.Pincode,
		PaymentMethod: co.PaymentMethod,
		ProofRef:      co.ProofRef,
		Location:      toLocationView(sess.Resolver),
		CanPlaceOrder: co.CanPlaceOrder(),
	}
}
