package handlers

//* Request
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateIngredientRequest struct {
	Name string `json:"name"`
}

type CreateRecipeRequest struct {
	Name        string  `json:"name"`
	Text        string  `json:"text"`
	Ingredients []int64 `json:"ingredients"`
}

//* Response
type UserResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type IngredientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RecipeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Text        string  `json:"text"`
	Ingredients []int64 `json:"ingredients"`
}

type RecipeDetailResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Text        string                `json:"text"`
	Ingredients []*IngredientResponse `json:"ingredients"`
}
