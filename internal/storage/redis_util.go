package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/jkosta95/recipe-app-api/internal/domain"
	redis "github.com/redis/go-redis/v9"
)

// * user
func (s *RedisStorage) setNewUser_AddToPipe(ctx context.Context, pipe redis.Pipeliner, user *domain.User) {
	pipe.HSet(ctx, s.key_UserInfo(user.ID),
		User_HSet_Email, user.Email,
		User_HSet_Password, user.PasswordHash,
		User_HSet_FirstName, user.FirstName,
		User_HSet_LastName, user.LastName)
}

// * token
func (s *RedisStorage) setNewToken_AddToPipe(ctx context.Context, pipe redis.Pipeliner, token *domain.Token) {
	pipe.HSet(ctx, s.key_TokenInfo(token.Key),
		Token_HSet_UserID, token.UserID,
		Token_HSet_CreatedAt, token.CreatedAt)
}

// * ingredient
func (s *RedisStorage) setNewIngredient_AddToPipe(ctx context.Context, pipe redis.Pipeliner, ingredient *domain.Ingredient) {
	pipe.HSet(ctx, s.key_IngredientInfo(ingredient.ID),
		Ingredient_HSet_Name, ingredient.Name,
		Ingredient_HSet_UserID, ingredient.UserID)
	pipe.ZAdd(ctx, s.key_UserIngredients(ingredient.UserID), redis.Z{
		Score:  float64(ingredient.ID),
		Member: ingredient.ID,
	})
}

// * recipe
func (s *RedisStorage) setNewRecipe_AddToPipe(ctx context.Context, pipe redis.Pipeliner, recipe *domain.Recipe) {
	pipe.HSet(ctx, s.key_RecipeInfo(recipe.ID),
		Recipe_HSet_Name, recipe.Name,
		Recipe_HSet_Text, recipe.Text,
		Recipe_HSet_UserID, recipe.UserID)
	pipe.ZAdd(ctx, s.key_UserRecipes(recipe.UserID), redis.Z{
		Score:  float64(recipe.ID),
		Member: recipe.ID,
	})
	if len(recipe.IngredientIDs) == 0 {
		return
	}
	members := make([]redis.Z, len(recipe.IngredientIDs))
	for i, id := range recipe.IngredientIDs {
		members[i] = redis.Z{Score: float64(id), Member: id}
	}
	pipe.ZAdd(ctx, s.key_RecipeIngredients(recipe.ID), members...)
}

// * parsing
func parseIDs(members []string) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parseUserID(v string) int64 {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
