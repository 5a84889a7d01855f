package services

import (
	"fmt"
	"sort"

	"crispy-corner/models"
)

// Cart maps item id to quantity for one session. Absent key means "not in
// cart"; a present quantity is always >= 1. The session owns the cart
// exclusively; nothing else mutates it.
type Cart struct {
	quantities map[string]int
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[string]int)}
}

// AddToCart increments the item's quantity, creating the entry at 1.
// Unknown ids are tracked numerically; LineItems degrades them at read time.
func (c *Cart) AddToCart(itemID string) {
	c.quantities[itemID]++
}

// RemoveFromCart decrements the item's quantity and deletes the entry when it
// would reach zero. Removing an absent item is a no-op.
func (c *Cart) RemoveFromCart(itemID string) {
	q, ok := c.quantities[itemID]
	if !ok {
		return
	}
	if q > 1 {
		c.quantities[itemID] = q - 1
		return
	}
	delete(c.quantities, itemID)
}

func (c *Cart) ClearCart() {
	c.quantities = make(map[string]int)
}

func (c *Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

// Quantity returns 0 for items not in the cart.
func (c *Cart) Quantity(itemID string) int {
	return c.quantities[itemID]
}

// Units is the total item count across all entries.
func (c *Cart) Units() int {
	n := 0
	for _, q := range c.quantities {
		n += q
	}
	return n
}

// LineItems joins current quantities against the catalog, in menu order.
// An id the catalog no longer knows becomes a zero-price placeholder line
// (sorted after known items) rather than an error.
func (c *Cart) LineItems(catalog *Catalog) []models.OrderLineItem {
	var items []models.OrderLineItem
	for _, it := range catalog.List(models.CategoryAll) {
		q, ok := c.quantities[it.ID]
		if !ok {
			continue
		}
		items = append(items, models.OrderLineItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: q,
		})
	}
	var unknown []string
	for id := range c.quantities {
		if _, ok := catalog.Find(id); !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		items = append(items, models.OrderLineItem{
			ID:       id,
			Name:     fmt.Sprintf("Unknown item (%s)", id),
			Price:    0,
			Quantity: c.quantities[id],
		})
	}
	return items
}

// Subtotal is recomputed on every read; there is no cached total to invalidate.
func (c *Cart) Subtotal(catalog *Catalog) int64 {
	var sum int64
	for id, q := range c.quantities {
		if it, ok := catalog.Find(id); ok {
			sum += it.Price * int64(q)
		}
	}
	return sum
}

func (c *Cart) Total(catalog *Catalog, deliveryFee int64) int64 {
	return c.Subtotal(catalog) + deliveryFee
}
