package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"crispy-corner/models"
	"crispy-corner/services"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var ve services.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
		resp.Error = ve.Message
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	items := s.catalog.List(category)
	views := make([]menuItemView, 0, len(items))
	for _, it := range items {
		views = append(views, toMenuItemView(it))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": views})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.catalog.Categories()})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, s.toCartView(sess))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Cart.AddToCart(chi.URLParam(r, "id"))
	s.metrics.CartAdds.Inc()
	writeJSON(w, http.StatusOK, s.toCartView(sess))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Cart.RemoveFromCart(chi.URLParam(r, "id"))
	s.metrics.CartRemoves.Inc()
	writeJSON(w, http.StatusOK, s.toCartView(sess))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Cart.ClearCart()
	writeJSON(w, http.StatusOK, s.toCartView(sess))
}

func (s *Server) handleGetCheckout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, toCheckoutView(sess))
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()

	var body struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		City    string `json:"city"`
		Pincode string `json:"pincode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err := sess.Checkout.SubmitDetails(models.CustomerDetails{
		Name:    body.Name,
		Phone:   body.Phone,
		Address: body.Address,
		City:    body.City,
		Pincode: body.Pincode,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckoutView(sess))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Checkout.Back()
	writeJSON(w, http.StatusOK, toCheckoutView(sess))
}

func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()

	var body positionView
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := sess.Resolver.SetPosition(models.LatLng{Lat: body.Lat, Lng: body.Lng}); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, toLocationView(sess.Resolver))
}

func (s *Server) handleLockLocation(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Resolver.Lock()
	writeJSON(w, http.StatusOK, toLocationView(sess.Resolver))
}

func (s *Server) handleUnlockLocation(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()
	sess.Resolver.Unlock()
	writeJSON(w, http.StatusOK, toLocationView(sess.Resolver))
}

// handleResolveLocation is the Location step's submit action: resolve the
// distance/fee and, on success, advance the wizard to Payment.
func (s *Server) handleResolveLocation(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()

	start := time.Now()
	_, err := sess.Resolver.Resolve(r.Context(), s.routes)
	s.metrics.RoutingLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, services.ErrLocationNotLocked) {
			writeError(w, http.StatusConflict, err)
			return
		}
		s.metrics.RoutingFailures.Inc()
		s.log.Error("resolve_location", sess.Key, "distance resolution failed", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	if err := sess.Checkout.ConfirmLocation(sess.Resolver); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	s.log.Info("resolve_location", sess.Key, "location resolved")
	writeJSON(w, http.StatusOK, toCheckoutView(sess))
}

func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()

	var body struct {
		PaymentMethod       string `json:"payment_method"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := sess.Checkout.SetPayment(body.PaymentMethod, body.SpecialInstructions); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckoutView(sess))
}

func (s *Server) handleUploadProof(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	ref, err := s.uploads.UploadProof(r.Context(), header.Filename, file)
	if err != nil {
		s.metrics.UploadFailures.Inc()
		s.log.Error("upload_proof", sess.Key, "proof upload failed", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	sess.Checkout.SetProofRef(ref)
	s.log.Info("upload_proof", sess.Key, "proof uploaded")
	writeJSON(w, http.StatusOK, map[string]string{"proof_ref": ref})
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.Lock()
	defer sess.Unlock()

	order, err := services.BuildOrder(sess.Cart, s.catalog, sess.Checkout, sess.Resolver.Result())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Redirect: "/menu"})
		case errors.Is(err, services.ErrPaymentRequired):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "Payment Required"})
		default:
			writeError(w, http.StatusConflict, err)
		}
		return
	}

	message := services.FormatOrderMessage(order)
	link := services.WhatsAppLink(s.cfg.WhatsApp.Number, message)
	s.metrics.OrdersPlaced.Inc()
	s.log.Info("place_order", sess.Key, "order placed")
	s.sessions.ResetFlow(sess)

	writeJSON(w, http.StatusCreated, orderView{
		ID:           order.ID,
		Items:        toLineItemViews(order.Items),
		Subtotal:     order.Subtotal,
		DeliveryFee:  order.DeliveryFee,
		Total:        order.Total,
		Message:      message,
		WhatsAppLink: link,
	})
}
