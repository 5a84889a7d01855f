package services

import (
	"testing"

	"crispy-corner/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 21 {
		t.Errorf("Len = %d, want 21", c.Len())
	}

	it, ok := c.Find("1")
	if !ok {
		t.Fatal("item 1 not found")
	}
	if it.Name != "Crispy Chicken Burger" || it.Price != 180 || !it.IsPopular {
		t.Errorf("item 1 = %+v", it)
	}

	if _, ok := c.Find("999"); ok {
		t.Error("unexpected item 999")
	}
}

func TestCatalogList(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		category string
		want     int
	}{
		{models.CategoryAll, 21},
		{"", 21},
		{models.CategoryBurgers, 7},
		{models.CategoryFriedChicken, 5},
		{models.CategoryFingerFoods, 5},
		{models.CategoryFitnessFood, 4},
		{"Sushi", 0},
	}
	for _, tt := range tests {
		if got := len(c.List(tt.category)); got != tt.want {
			t.Errorf("List(%q) = %d items, want %d", tt.category, got, tt.want)
		}
	}
	for _, it := range c.List(models.CategoryBurgers) {
		if it.Category != models.CategoryBurgers {
			t.Errorf("List(Burgers) returned %s item %s", it.Category, it.ID)
		}
	}
}

func TestCatalogCategories(t *testing.T) {
	c := DefaultCatalog()
	cats := c.Categories()
	if len(cats) != 5 || cats[0] != models.CategoryAll {
		t.Errorf("Categories = %v", cats)
	}
}
