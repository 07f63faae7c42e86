package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jkosta95/recipe-app-api/internal/domain"
	errs "github.com/jkosta95/recipe-app-api/internal/errors"
)

// shortcut for `http.Error()`
func (h *HTTPHandler) error(w http.ResponseWriter, code int, msg string) {
	http.Error(w, msg, code)
}

// shortcut for `HttpHandler.error()` with code 500 and msg `internal server error`
func (h *HTTPHandler) internalError(w http.ResponseWriter) {
	h.error(w, http.StatusInternalServerError, "internal server error")
}

// Respond with the app error. Internal errors are logged, not exposed.
func (h *HTTPHandler) appError(w http.ResponseWriter, err *errs.AppError) {
	if err.Type == errs.TypeInternal {
		log.Printf("ERR: %v\n", err)
		h.internalError(w)
		return
	}
	h.error(w, err.Code, err.Msg)
}

// Decode request body to `v`.
// Response with BadRequest on decode error
func (h *HTTPHandler) decodeJSONRequestBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return err
	}
	return nil
}

// Encode `v` to `w` with `successCode`
func (h *HTTPHandler) encodeJSONResponse(w http.ResponseWriter, v any, successCode int) error {
	b, err := json.Marshal(v)
	if err != nil {
		h.internalError(w)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successCode)
	_, err = w.Write(append(b, '\n'))
	return err
}

func (h *HTTPHandler) domainUserToDTO(u *domain.User) *UserResponse {
	return &UserResponse{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func (h *HTTPHandler) domainIngredientToDTO(i *domain.Ingredient) *IngredientResponse {
	return &IngredientResponse{
		ID:   i.ID,
		Name: i.Name,
	}
}

func (h *HTTPHandler) domainRecipeToDTO(r *domain.Recipe) *RecipeResponse {
	ingredients := r.IngredientIDs
	if ingredients == nil {
		ingredients = []int64{}
	}
	return &RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Text:        r.Text,
		Ingredients: ingredients,
	}
}

func (h *HTTPHandler) domainRecipeDetailToDTO(r *domain.RecipeDetail) *RecipeDetailResponse {
	ingredients := make([]*IngredientResponse, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = h.domainIngredientToDTO(ing)
	}
	return &RecipeDetailResponse{
		ID:          r.ID,
		Name:        r.Name,
		Text:        r.Text,
		Ingredients: ingredients,
	}
}
