package storage

import (
	"context"

	"github.com/jkosta95/recipe-app-api/internal/domain"
	errs "github.com/jkosta95/recipe-app-api/internal/errors"
)

type RecipeStorage interface {
	// Close storage connection
	Close() error
	// Probe checks the connection, see readiness.Provider
	Probe(ctx context.Context) error
	//* Users
	CreateUser(ctx context.Context, user *domain.User) (userId int64, appErr *errs.AppError)
	GetUser(ctx context.Context, userId int64) (user *domain.User, appErr *errs.AppError)
	GetUserByEmail(ctx context.Context, email string) (user *domain.User, appErr *errs.AppError)
	//* Tokens
	GetOrCreateToken(ctx context.Context, userId int64) (token *domain.Token, appErr *errs.AppError)
	GetUserIDByToken(ctx context.Context, key string) (userId int64, appErr *errs.AppError)
	//* Ingredients
	CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) (ingredientId int64, appErr *errs.AppError)
	ListIngredients(ctx context.Context, userId int64) (ingredients []*domain.Ingredient, appErr *errs.AppError)
	//* Recipes
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) (recipeId int64, appErr *errs.AppError)
	ListRecipes(ctx context.Context, userId int64) (recipes []*domain.Recipe, appErr *errs.AppError)
	GetRecipe(ctx context.Context, userId, recipeId int64) (recipe *domain.RecipeDetail, appErr *errs.AppError)
}
