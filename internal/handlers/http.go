package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jkosta95/recipe-app-api/internal/domain"
	"github.com/jkosta95/recipe-app-api/internal/monitor"
	"github.com/jkosta95/recipe-app-api/internal/storage"
)

// HealthReporter exposes the latest datastore health.
type HealthReporter interface {
	Health() monitor.Health
}

type HTTPHandler struct {
	storage         storage.RecipeStorage
	health          HealthReporter
	responseTimeout time.Duration
}

func NewHTTPHandler(storage storage.RecipeStorage, health HealthReporter, responseTimeout time.Duration) *HTTPHandler {
	return &HTTPHandler{
		storage:         storage,
		health:          health,
		responseTimeout: responseTimeout,
	}
}

// POST /api/user/create
func (h *HTTPHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	//* decode request
	var req CreateUserRequest
	if err := h.decodeJSONRequestBody(w, r, &req); err != nil {
		return
	}

	//* check request
	email := domain.NormalizeEmail(req.Email)
	if err := domain.ValidateCredentials(email, req.Password); err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := domain.HashPassword(req.Password)
	if err != nil {
		h.internalError(w)
		return
	}

	//* storage request
	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	if _, appErr := h.storage.CreateUser(ctx, user); appErr != nil {
		h.appError(w, appErr)
		return
	}

	//* http response
	h.encodeJSONResponse(w, h.domainUserToDTO(user), http.StatusCreated)
}

// POST /api/user/token
func (h *HTTPHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	//* decode request
	var req CreateTokenRequest
	if err := h.decodeJSONRequestBody(w, r, &req); err != nil {
		return
	}

	//* check request
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	//* storage request
	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	user, appErr := h.storage.GetUserByEmail(ctx, domain.NormalizeEmail(req.Email))
	if appErr != nil && appErr.Code != http.StatusNotFound {
		h.appError(w, appErr)
		return
	}
	// unknown users and wrong passwords get the same answer
	if appErr != nil || !user.CheckPassword(req.Password) {
		h.error(w, http.StatusBadRequest, "unable to authenticate with provided credentials")
		return
	}

	token, appErr := h.storage.GetOrCreateToken(ctx, user.ID)
	if appErr != nil {
		h.appError(w, appErr)
		return
	}

	//* http response
	h.encodeJSONResponse(w, &TokenResponse{Token: token.Key}, http.StatusOK)
}

// GET /api/user/me
func (h *HTTPHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userId, ok := userIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	user, appErr := h.storage.GetUser(ctx, userId)
	if appErr != nil {
		h.appError(w, appErr)
		return
	}

	h.encodeJSONResponse(w, h.domainUserToDTO(user), http.StatusOK)
}

// GET /api/recipe/ingredients
func (h *HTTPHandler) GetIngredients(w http.ResponseWriter, r *http.Request) {
	userId, ok := userIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	domainIngredients, appErr := h.storage.ListIngredients(ctx, userId)
	if appErr != nil {
		h.appError(w, appErr)
		return
	}

	ingredients := make([]*IngredientResponse, len(domainIngredients))
	for i, ing := range domainIngredients {
		ingredients[i] = h.domainIngredientToDTO(ing)
	}

	h.encodeJSONResponse(w, ingredients, http.StatusOK)
}

// POST /api/recipe/ingredients
func (h *HTTPHandler) PostIngredient(w http.ResponseWriter, r *http.Request) {
	userId, ok := userIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	//* decode request
	var req CreateIngredientRequest
	if err := h.decodeJSONRequestBody(w, r, &req); err != nil {
		return
	}

	ingredient := &domain.Ingredient{
		Name:   strings.TrimSpace(req.Name),
		UserID: userId,
	}
	if err := ingredient.Validate(); err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return
	}

	//* storage request
	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	if _, appErr := h.storage.CreateIngredient(ctx, ingredient); appErr != nil {
		h.appError(w, appErr)
		return
	}

	h.encodeJSONResponse(w, h.domainIngredientToDTO(ingredient), http.StatusCreated)
}

// GET /api/recipe/recipes
func (h *HTTPHandler) GetRecipes(w http.ResponseWriter, r *http.Request) {
	userId, ok := userIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	domainRecipes, appErr := h.storage.ListRecipes(ctx, userId)
	if appErr != nil {
		h.appError(w, appErr)
		return
	}

	recipes := make([]*RecipeResponse, len(domainRecipes))
	for i, rec := range domainRecipes {
		recipes[i] = h.domainRecipeToDTO(rec)
	}

	h.encodeJSONResponse(w, recipes, http.StatusOK)
}

// POST /api/recipe/recipes
func (h *HTTPHandler) PostRecipe(w http.ResponseWriter, r *http.Request) {
	userId, ok := userIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	//* decode request
	var req CreateRecipeRequest
	if err := h.decodeJSONRequestBody(w, r, &req); err != nil {
		return
	}

	recipe := &domain.Recipe{
		Name:          strings.TrimSpace(req.Name),
		Text:          req.Text,
		IngredientIDs: dedupeIDs(req.Ingredients),
		UserID:        userId,
	}
	if err := recipe.Validate(); err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return
	}

	//* storage request
	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	if _, appErr := h.storage.CreateRecipe(ctx, recipe); appErr != nil {
		h.appError(w, appErr)
		return
	}

	h.encodeJSONResponse(w, h.domainRecipeToDTO(recipe), http.StatusCreated)
}

// GET /api/recipe/recipes/{id}
func (h *HTTPHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userId, ok := userIDFromContext(r.Context())
	if !ok {
		h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}

	//* get id from path
	recipeId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || recipeId <= 0 {
		h.error(w, http.StatusNotFound, "not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
	defer cancel()

	recipe, appErr := h.storage.GetRecipe(ctx, userId, recipeId)
	if appErr != nil {
		h.appError(w, appErr)
		return
	}

	h.encodeJSONResponse(w, h.domainRecipeDetailToDTO(recipe), http.StatusOK)
}

// GET /api/health
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health == nil {
		h.encodeJSONResponse(w, monitor.Health{Status: monitor.StatusUnknown}, http.StatusOK)
		return
	}

	health := h.health.Health()
	code := http.StatusOK
	if health.Status == monitor.StatusDown {
		code = http.StatusServiceUnavailable
	}
	h.encodeJSONResponse(w, health, code)
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
