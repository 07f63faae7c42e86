package api

import (
	"net/http"

	"github.com/jkosta95/recipe-app-api/internal/handlers"
)

func RegisterRoutes(mux *http.ServeMux, h handlers.Handler) {
	//* public
	mux.HandleFunc("POST /api/user/create", h.CreateUser)
	mux.HandleFunc("POST /api/user/token", h.CreateToken)
	mux.HandleFunc("GET /api/health", h.Health)

	//* token required
	mux.HandleFunc("GET /api/user/me", h.Authenticated(h.GetMe))
	mux.HandleFunc("GET /api/recipe/ingredients", h.Authenticated(h.GetIngredients))
	mux.HandleFunc("POST /api/recipe/ingredients", h.Authenticated(h.PostIngredient))
	mux.HandleFunc("GET /api/recipe/recipes", h.Authenticated(h.GetRecipes))
	mux.HandleFunc("POST /api/recipe/recipes", h.Authenticated(h.PostRecipe))
	mux.HandleFunc("GET /api/recipe/recipes/{id}", h.Authenticated(h.GetRecipe))
}
