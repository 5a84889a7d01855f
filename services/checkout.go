package services

import (
	"errors"
	"fmt"

	"crispy-corner/models"
)

// CheckoutStep is the wizard's position. Strictly sequential, forward-only
// except for Back.
type CheckoutStep int

const (
	StepDetails CheckoutStep = iota
	StepLocation
	StepPayment
)

func (s CheckoutStep) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepLocation:
		return "location"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// ValidationError blocks a step transition without advancing it.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	ErrLocationNotLocked   = errors.New("delivery point is not confirmed")
	ErrLocationNotResolved = errors.New("distance has not been resolved")
	ErrWrongStep           = errors.New("not available at this checkout step")
)

// Checkout is the 3-step wizard state for one session.
type Checkout struct {
	step CheckoutStep

	Details             models.CustomerDetails
	PaymentMethod       string
	SpecialInstructions string
	ProofRef            string // set only after a successful proof upload
}

func NewCheckout() *Checkout {
	return &Checkout{step: StepDetails}
}

func (c *Checkout) Step() CheckoutStep {
	return c.step
}

// SubmitDetails validates the customer form and, from the Details step,
// advances to Location. Resubmitting from a later step just updates the
// stored details.
func (c *Checkout) SubmitDetails(d models.CustomerDetails) error {
	if err := validateDetails(d); err != nil {
		return err
	}
	c.Details = d
	if c.step == StepDetails {
		c.step = StepLocation
	}
	return nil
}

func validateDetails(d models.CustomerDetails) error {
	if d.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if d.Phone == "" {
		return ValidationError{Field: "phone", Message: "phone is required"}
	}
	if d.Address == "" {
		return ValidationError{Field: "address", Message: "address is required"}
	}
	if d.City == "" {
		return ValidationError{Field: "city", Message: "city is required"}
	}
	if d.Pincode == "" {
		return ValidationError{Field: "pincode", Message: "pincode is required"}
	}
	return nil
}

// ConfirmLocation advances Location → Payment. The resolver must hold a
// locked position and a resolved distance/fee.
func (c *Checkout) ConfirmLocation(r *Resolver) error {
	if c.step != StepLocation {
		return ErrWrongStep
	}
	if !r.Locked() {
		return ErrLocationNotLocked
	}
	if r.Result() == nil {
		return ErrLocationNotResolved
	}
	c.step = StepPayment
	return nil
}

// Back steps the wizard one step back, never below Details.
func (c *Checkout) Back() {
	if c.step > StepDetails {
		c.step--
	}
}

func (c *Checkout) SetPayment(method, specialInstructions string) error {
	switch method {
	case models.PaymentCash, models.PaymentUPI, models.PaymentCard, models.PaymentNetBanking:
	default:
		return ValidationError{Field: "payment_method", Message: "invalid payment method"}
	}
	c.PaymentMethod = method
	c.SpecialInstructions = specialInstructions
	return nil
}

func (c *Checkout) SetProofRef(ref string) {
	c.ProofRef = ref
}

// CanPlaceOrder gates the final submit: Payment step reached and a proof
// reference recorded.
func (c *Checkout) CanPlaceOrder() bool {
	return c.step == StepPayment && c.ProofRef != ""
}
