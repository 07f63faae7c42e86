package handlers

import "net/http"

type Handler interface {
	//* user
	CreateUser(w http.ResponseWriter, r *http.Request)
	CreateToken(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	//* ingredients
	GetIngredients(w http.ResponseWriter, r *http.Request)
	PostIngredient(w http.ResponseWriter, r *http.Request)
	//* recipes
	GetRecipes(w http.ResponseWriter, r *http.Request)
	PostRecipe(w http.ResponseWriter, r *http.Request)
	GetRecipe(w http.ResponseWriter, r *http.Request)
	//* service
	Health(w http.ResponseWriter, r *http.Request)
	// Authenticated rejects requests without a valid token
	Authenticated(next http.HandlerFunc) http.HandlerFunc
}
