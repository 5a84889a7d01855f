package services

import "crispy-corner/models"

// Catalog is the static menu, loaded once at process start. Read-only.
type Catalog struct {
	items []models.MenuItem
	byID  map[string]models.MenuItem
}

func NewCatalog(items []models.MenuItem) *Catalog {
	byID := make(map[string]models.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return &Catalog{items: items, byID: byID}
}

func (c *Catalog) Find(id string) (models.MenuItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// List returns items in menu order. Empty category or "All" returns everything.
func (c *Catalog) List(category string) []models.MenuItem {
	if category == "" || category == models.CategoryAll {
		out := make([]models.MenuItem, len(c.items))
		copy(out, c.items)
		return out
	}
	var out []models.MenuItem
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Categories() []string {
	return []string{
		models.CategoryAll,
		models.CategoryBurgers,
		models.CategoryFriedChicken,
		models.CategoryFingerFoods,
		models.CategoryFitnessFood,
	}
}

func (c *Catalog) Len() int {
	return len(c.items)
}

const placeholderImage = "/api/placeholder/300/250"

// DefaultCatalog returns the compiled-in menu.
func DefaultCatalog() *Catalog {
	return NewCatalog([]models.MenuItem{
		{ID: "1", Category: models.CategoryBurgers, Name: "Crispy Chicken Burger", Description: "Crispy fried chicken breast with fresh lettuce, tomato, and special sauce", Price: 180, Image: placeholderImage, IsPopular: true},
		{ID: "2", Category: models.CategoryBurgers, Name: "Spicy Paneer Burger", Description: "Spiced paneer patty with fresh vegetables and mint chutney", Price: 180, Image: placeholderImage},
		{ID: "3", Category: models.CategoryBurgers, Name: "Fish Burger", Description: "Crispy fish fillet with tartar sauce and fresh lettuce", Price: 200, Image: placeholderImage},
		{ID: "4", Category: models.CategoryBurgers, Name: "Shrimp Burger", Description: "Golden fried shrimp with special mayo and crisp lettuce", Price: 200, Image: placeholderImage},
		{ID: "5", Category: models.CategoryBurgers, Name: "Classic Burger", Description: "Juicy beef patty with cheese, lettuce, tomato, and special sauce", Price: 180, Image: placeholderImage, IsPopular: true},
		{ID: "6", Category: models.CategoryBurgers, Name: "Double Decker Classic", Description: "Two beef patties with double cheese and signature sauce", Price: 280, Image: placeholderImage},
		{ID: "7", Category: models.CategoryBurgers, Name: "Mutton Burger", Description: "Tender mutton patty with fresh herbs and spicy sauce", Price: 200, Image: placeholderImage},
		{ID: "8", Category: models.CategoryFriedChicken, Name: "Broasted Fried Chicken - 2 Piece", Description: "Crispy golden fried chicken pieces with special seasoning", Price: 180, Image: placeholderImage, IsPopular: true},
		{ID: "9", Category: models.CategoryFriedChicken, Name: "Broasted Fried Chicken - 4 Piece", Description: "Four pieces of our signature crispy fried chicken", Price: 360, Image: placeholderImage},
		{ID: "10", Category: models.CategoryFriedChicken, Name: "Broasted Fried Chicken - 8 Piece", Description: "Perfect for sharing - eight pieces of crispy goodness", Price: 600, Image: placeholderImage},
		{ID: "11", Category: models.CategoryFriedChicken, Name: "Buffalo Wings", Description: "Spicy buffalo wings tossed in tangy sauce (5 pieces)", Price: 250, Image: placeholderImage},
		{ID: "12", Category: models.CategoryFriedChicken, Name: "Chicken Tenders", Description: "Crispy chicken strips perfect for dipping (4 pieces)", Price: 250, Image: placeholderImage},
		{ID: "13", Category: models.CategoryFingerFoods, Name: "Imitation Crab Claw Amritsari", Description: "Golden fried crab claw imitation with special spices (6 pieces)", Price: 200, Image: placeholderImage, IsNew: true},
		{ID: "14", Category: models.CategoryFingerFoods, Name: "Imitation Lobster Bites", Description: "Crispy lobster-style bites with herbs (8 pieces)", Price: 200, Image: placeholderImage, IsNew: true},
		{ID: "15", Category: models.CategoryFingerFoods, Name: "Jalapeno Poppers", Description: "Cheese-stuffed jalapenos in crispy coating (6 pieces)", Price: 180, Image: placeholderImage},
		{ID: "16", Category: models.CategoryFingerFoods, Name: "Cheese Fingers", Description: "Mozzarella sticks with marinara sauce (6 pieces)", Price: 180, Image: placeholderImage},
		{ID: "17", Category: models.CategoryFingerFoods, Name: "Dynamite Shrimps", Description: "Spicy fried shrimps with special sauce (7 pieces)", Price: 220, Image: placeholderImage},
		{ID: "18", Category: models.CategoryFitnessFood, Name: "Light Mutton Lettuce Wrap", Description: "Grilled mutton patty wrapped in fresh lettuce leaves", Price: 240, Image: placeholderImage},
		{ID: "19", Category: models.CategoryFitnessFood, Name: "Light Chicken Steak Wrap", Description: "Grilled chicken breast in lettuce wrap with herbs", Price: 200, Image: placeholderImage},
		{ID: "20", Category: models.CategoryFitnessFood, Name: "Gym Box", Description: "High protein meal with steak, lettuce, tomato, and special sauce", Price: 250, Image: placeholderImage},
		{ID: "21", Category: models.CategoryFitnessFood, Name: "Steak Salad", Description: "Fresh mixed greens with grilled steak and veggies (62g protein)", Price: 240, Image: placeholderImage},
	})
}
