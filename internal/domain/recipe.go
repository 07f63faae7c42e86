package domain

import (
	"errors"
	"strings"
)

const MaxNameLength = 255

type Ingredient struct {
	ID     int64
	Name   string
	UserID int64
}

func (i *Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("name is required")
	}
	if len(i.Name) > MaxNameLength {
		return errors.New("name is too long")
	}
	return nil
}

type Recipe struct {
	ID            int64
	Name          string
	Text          string
	IngredientIDs []int64
	UserID        int64
}

// RecipeDetail is a recipe with its ingredients resolved.
type RecipeDetail struct {
	Recipe
	Ingredients []*Ingredient
}

func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if len(r.Name) > MaxNameLength {
		return errors.New("name is too long")
	}
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}
