package storage

import (
	"sort"

	"github.com/jkosta95/recipe-app-api/internal/domain"
)

func sortIngredientsByNameDesc(ingredients []*domain.Ingredient) {
	sort.SliceStable(ingredients, func(i, j int) bool {
		return ingredients[i].Name > ingredients[j].Name
	})
}
