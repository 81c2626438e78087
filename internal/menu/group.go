// Package menu holds the display-side helpers shared by the storefront pages.
package menu

import "storefront/internal/model"

// SliderThreshold is the dish count above which a category renders as a
// horizontal slider instead of a static grid.
const SliderThreshold = 4

// Section is one category with the dishes that belong to it.
type Section struct {
	Category model.Category
	Dishes   []model.Dish
	Slider   bool
}

// GroupByCategory partitions dishes by categoryId in category order.
// Dishes whose category is unknown are left out of every section.
func GroupByCategory(categories []model.Category, dishes []model.Dish) []Section {
	byCategory := make(map[int][]model.Dish, len(categories))
	for _, d := range dishes {
		byCategory[d.CategoryID] = append(byCategory[d.CategoryID], d)
	}

	sections := make([]Section, 0, len(categories))
	for _, c := range categories {
		group := byCategory[c.ID]
		if group == nil {
			group = []model.Dish{}
		}
		sections = append(sections, Section{
			Category: c,
			Dishes:   group,
			Slider:   len(group) > SliderThreshold,
		})
		// A repeated category id must not receive the same dishes twice.
		delete(byCategory, c.ID)
	}
	return sections
}

// Visible drops dishes the guest menu must not show.
func Visible(dishes []model.Dish) []model.Dish {
	out := make([]model.Dish, 0, len(dishes))
	for _, d := range dishes {
		if d.Status != model.DishStatusHidden {
			out = append(out, d)
		}
	}
	return out
}

// FindDish returns the dish with the given id.
func FindDish(dishes []model.Dish, id int) (model.Dish, bool) {
	for _, d := range dishes {
		if d.ID == id {
			return d, true
		}
	}
	return model.Dish{}, false
}
