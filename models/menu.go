package models

type MenuItem struct {
	ID          string
	Category    string // "Burgers", "Fried Chicken", "Finger Foods", "Fitness Food"
	Name        string
	Description string
	Price       int64 // whole rupees
	Image       string
	IsPopular   bool
	IsNew       bool
}

const (
	CategoryAll          = "All"
	CategoryBurgers      = "Burgers"
	CategoryFriedChicken = "Fried Chicken"
	CategoryFingerFoods  = "Finger Foods"
	CategoryFitnessFood  = "Fitness Food"
)
