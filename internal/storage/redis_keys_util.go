package storage

import "fmt"

//* sequences

// String (INCR)
func (s RedisStorage) key_Sequence(entity string) string {
	return fmt.Sprintf("%s:next_id", entity)
}

//* users

// HSet
func (s RedisStorage) key_UserInfo(userId int64) string {
	return fmt.Sprintf("users:%d", userId)
}

// String
func (s RedisStorage) key_UserByEmail(email string) string {
	return fmt.Sprintf("users:email:%s", email)
}

// String
func (s RedisStorage) key_UserToken(userId int64) string {
	return fmt.Sprintf("users:%d:token", userId)
}

// ZSet
func (s RedisStorage) key_UserIngredients(userId int64) string {
	return fmt.Sprintf("users:%d:ingredients", userId)
}

// ZSet
func (s RedisStorage) key_UserRecipes(userId int64) string {
	return fmt.Sprintf("users:%d:recipes", userId)
}

//* tokens

// HSet
func (s RedisStorage) key_TokenInfo(key string) string {
	return fmt.Sprintf("tokens:%s", key)
}

//* ingredients

// HSet
func (s RedisStorage) key_IngredientInfo(ingredientId int64) string {
	return fmt.Sprintf("ingredients:%d", ingredientId)
}

//* recipes

// HSet
func (s RedisStorage) key_RecipeInfo(recipeId int64) string {
	return fmt.Sprintf("recipes:%d", recipeId)
}

// ZSet
func (s RedisStorage) key_RecipeIngredients(recipeId int64) string {
	return fmt.Sprintf("recipes:%d:ingredients", recipeId)
}
