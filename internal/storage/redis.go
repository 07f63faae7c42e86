package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jkosta95/recipe-app-api/internal/config"
	"github.com/jkosta95/recipe-app-api/internal/domain"
	errs "github.com/jkosta95/recipe-app-api/internal/errors"
	"github.com/jkosta95/recipe-app-api/internal/readiness"
	"github.com/redis/go-redis/v9"
)

const (
	seqUsers       = "users"
	seqIngredients = "ingredients"
	seqRecipes     = "recipes"
)

var _ RecipeStorage = (*RedisStorage)(nil)

type RedisStorage struct {
	client       *redis.Client
	probeTimeout time.Duration
}

func NewRedisStorage(cfg *config.RedisConfig) *RedisStorage {
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		probeTimeout: cfg.ProbeTimeout,
	}
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Probe pings redis. Network failures and a server still loading its
// dataset are reported as readiness.ErrConnectionUnavailable; other
// server replies (bad credentials, unknown db) are returned unchanged.
func (s *RedisStorage) Probe(ctx context.Context) error {
	if s.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.probeTimeout)
		defer cancel()
	}

	err := s.client.Ping(ctx).Err()
	if err == nil {
		return nil
	}

	var replyErr redis.Error
	if errors.As(err, &replyErr) && !strings.HasPrefix(replyErr.Error(), "LOADING") {
		return err
	}
	return readiness.Unavailable(err)
}

// * users

func (s *RedisStorage) CreateUser(ctx context.Context, user *domain.User) (int64, *errs.AppError) {
	//* allocate id
	id, err := s.client.Incr(ctx, s.key_Sequence(seqUsers)).Result()
	if err != nil {
		return 0, errs.NewInternalError(fmt.Errorf("failed to allocate user id: err=%w", err))
	}

	//* store user, then claim email
	user.ID = id
	pipe := s.client.TxPipeline()
	s.setNewUser_AddToPipe(ctx, pipe, user)
	if _, err := pipe.Exec(ctx); err != nil {
		s.discard(ctx, s.key_UserInfo(id))
		return 0, errs.NewInternalError(fmt.Errorf("pipe execution failed: id=%d, err=%w", id, err))
	}

	//* claim email
	_, claimed, err := s.claimKey(ctx, s.key_UserByEmail(user.Email), id, func(tx *redis.Tx, current string) (bool, error) {
		n, err := tx.Exists(ctx, s.key_UserInfo(parseUserID(current))).Result()
		return n > 0, err
	})
	if err != nil {
		s.discard(ctx, s.key_UserInfo(id))
		return 0, errs.NewInternalError(fmt.Errorf("failed to claim email: email=%s, err=%w", user.Email, err))
	}
	if !claimed {
		s.discard(ctx, s.key_UserInfo(id))
		return 0, errs.NewBadRequest(nil, "user with this email already exists")
	}

	return id, nil
}

func (s *RedisStorage) GetUser(ctx context.Context, userId int64) (*domain.User, *errs.AppError) {
	res, err := s.client.HGetAll(ctx, s.key_UserInfo(userId)).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get user: id=%d, err=%w", userId, err))
	}
	if len(res) == 0 {
		return nil, errs.NewNotFound(nil, fmt.Sprintf("user not found: id=%d", userId))
	}

	return &domain.User{
		ID:           userId,
		Email:        res[User_HSet_Email],
		PasswordHash: res[User_HSet_Password],
		FirstName:    res[User_HSet_FirstName],
		LastName:     res[User_HSet_LastName],
	}, nil
}

func (s *RedisStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, *errs.AppError) {
	idStr, err := s.client.Get(ctx, s.key_UserByEmail(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewNotFound(err, "user not found")
		}
		return nil, errs.NewInternalError(fmt.Errorf("failed to get user by email: email=%s, err=%w", email, err))
	}

	return s.GetUser(ctx, parseUserID(idStr))
}

// * tokens

func (s *RedisStorage) GetOrCreateToken(ctx context.Context, userId int64) (*domain.Token, *errs.AppError) {
	token := &domain.Token{Key: uuid.New().String(), UserID: userId, CreatedAt: now()}
	if err := token.Validate(); err != nil {
		return nil, errs.NewInternalError(err)
	}

	//* store token before claiming it for the user
	pipe := s.client.TxPipeline()
	s.setNewToken_AddToPipe(ctx, pipe, token)
	if _, err := pipe.Exec(ctx); err != nil {
		s.discard(ctx, s.key_TokenInfo(token.Key))
		return nil, errs.NewInternalError(fmt.Errorf("pipe execution failed: user_id=%d, err=%w", userId, err))
	}

	//* only the first writer wins, others reuse its token
	existing, claimed, err := s.claimKey(ctx, s.key_UserToken(userId), token.Key, func(tx *redis.Tx, current string) (bool, error) {
		n, err := tx.Exists(ctx, s.key_TokenInfo(current)).Result()
		return n > 0, err
	})
	if err != nil {
		s.discard(ctx, s.key_TokenInfo(token.Key))
		return nil, errs.NewInternalError(fmt.Errorf("failed to claim token: user_id=%d, err=%w", userId, err))
	}
	if claimed {
		return token, nil
	}

	s.discard(ctx, s.key_TokenInfo(token.Key))
	createdAt, err := s.client.HGet(ctx, s.key_TokenInfo(existing), Token_HSet_CreatedAt).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get token info: user_id=%d, err=%w", userId, err))
	}
	return &domain.Token{Key: existing, UserID: userId, CreatedAt: createdAt}, nil
}

func (s *RedisStorage) GetUserIDByToken(ctx context.Context, key string) (int64, *errs.AppError) {
	idStr, err := s.client.HGet(ctx, s.key_TokenInfo(key), Token_HSet_UserID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errs.NewUnauthorized("invalid token")
		}
		return 0, errs.NewInternalError(fmt.Errorf("failed to get token: err=%w", err))
	}

	userId := parseUserID(idStr)
	if userId == 0 {
		return 0, errs.NewUnauthorized("invalid token")
	}
	return userId, nil
}

// * ingredients

func (s *RedisStorage) CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) (int64, *errs.AppError) {
	id, err := s.client.Incr(ctx, s.key_Sequence(seqIngredients)).Result()
	if err != nil {
		return 0, errs.NewInternalError(fmt.Errorf("failed to allocate ingredient id: err=%w", err))
	}
	ingredient.ID = id

	pipe := s.client.TxPipeline()
	s.setNewIngredient_AddToPipe(ctx, pipe, ingredient)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errs.NewInternalError(fmt.Errorf("pipe execution failed: id=%d, err=%w", id, err))
	}

	return id, nil
}

// ListIngredients returns the user's ingredients ordered by name descending.
func (s *RedisStorage) ListIngredients(ctx context.Context, userId int64) ([]*domain.Ingredient, *errs.AppError) {
	members, err := s.client.ZRange(ctx, s.key_UserIngredients(userId), 0, -1).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get ingredient ids: user_id=%d, err=%w", userId, err))
	}

	ingredients, appErr := s.loadIngredients(ctx, parseIDs(members))
	if appErr != nil {
		return nil, appErr
	}

	sortIngredientsByNameDesc(ingredients)
	return ingredients, nil
}

func (s *RedisStorage) loadIngredients(ctx context.Context, ids []int64) ([]*domain.Ingredient, *errs.AppError) {
	if len(ids) == 0 {
		return []*domain.Ingredient{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[int64]*redis.MapStringStringCmd, len(ids))
	for _, id := range ids {
		cmds[id] = pipe.HGetAll(ctx, s.key_IngredientInfo(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("pipe execution failed: %w", err))
	}

	ingredients := make([]*domain.Ingredient, 0, len(ids))
	failed := 0
	for _, id := range ids {
		info, err := cmds[id].Result()
		if err != nil || info[Ingredient_HSet_Name] == "" {
			log.Printf("WARN: failed to get ingredient, id=%d, err=%v\n", id, err)
			failed++
			continue
		}
		ingredients = append(ingredients, &domain.Ingredient{
			ID:     id,
			Name:   info[Ingredient_HSet_Name],
			UserID: parseUserID(info[Ingredient_HSet_UserID]),
		})
	}

	if failed > 0 {
		log.Printf("WARN: failed to load %d ingredients\n", failed)
	}

	return ingredients, nil
}

// * recipes

func (s *RedisStorage) CreateRecipe(ctx context.Context, recipe *domain.Recipe) (int64, *errs.AppError) {
	//* check ingredients belong to the user
	if appErr := s.checkIngredientsOwner(ctx, recipe.UserID, recipe.IngredientIDs); appErr != nil {
		return 0, appErr
	}

	id, err := s.client.Incr(ctx, s.key_Sequence(seqRecipes)).Result()
	if err != nil {
		return 0, errs.NewInternalError(fmt.Errorf("failed to allocate recipe id: err=%w", err))
	}
	recipe.ID = id

	pipe := s.client.TxPipeline()
	s.setNewRecipe_AddToPipe(ctx, pipe, recipe)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errs.NewInternalError(fmt.Errorf("pipe execution failed: id=%d, err=%w", id, err))
	}

	return id, nil
}

func (s *RedisStorage) checkIngredientsOwner(ctx context.Context, userId int64, ids []int64) *errs.AppError {
	if len(ids) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, s.key_IngredientInfo(id), Ingredient_HSet_UserID)
	}
	// redis.Nil for missing ingredients is checked per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return errs.NewInternalError(fmt.Errorf("pipe execution failed: %w", err))
	}

	for i, cmd := range cmds {
		owner, err := cmd.Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return errs.NewInternalError(fmt.Errorf("failed to get ingredient owner: id=%d, err=%w", ids[i], err))
		}
		if parseUserID(owner) != userId {
			return errs.NewBadRequest(err, fmt.Sprintf("invalid pk %d - object does not exist", ids[i]))
		}
	}
	return nil
}

// ListRecipes returns the user's recipes, newest first.
func (s *RedisStorage) ListRecipes(ctx context.Context, userId int64) ([]*domain.Recipe, *errs.AppError) {
	members, err := s.client.ZRevRange(ctx, s.key_UserRecipes(userId), 0, -1).Result()
	if err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("failed to get recipe ids: user_id=%d, err=%w", userId, err))
	}
	ids := parseIDs(members)

	//* prepare pipeline for info and ingredients and execute cmds
	pipe := s.client.Pipeline()

	infoCmds := make(map[int64]*redis.MapStringStringCmd, len(ids))
	ingredientCmds := make(map[int64]*redis.StringSliceCmd, len(ids))
	for _, id := range ids {
		infoCmds[id] = pipe.HGetAll(ctx, s.key_RecipeInfo(id))
		ingredientCmds[id] = pipe.ZRange(ctx, s.key_RecipeIngredients(id), 0, -1)
	}

	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, errs.NewInternalError(fmt.Errorf("pipe execution failed: %w", err))
		}
	}

	//* get result
	recipes := make([]*domain.Recipe, 0, len(ids))
	failedRecipes := make([]int64, 0, len(ids))
	for _, id := range ids {
		info, err := infoCmds[id].Result()
		if err != nil || info[Recipe_HSet_Name] == "" {
			log.Printf("WARN: failed to get recipe, id=%d, err=%v\n", id, err)
			failedRecipes = append(failedRecipes, id)
			continue
		}

		ingredientIds, err := ingredientCmds[id].Result()
		if err != nil {
			return nil, errs.NewInternalError(fmt.Errorf("failed to get recipe ingredients cmd result, err=%w", err))
		}

		recipes = append(recipes, &domain.Recipe{
			ID:            id,
			Name:          info[Recipe_HSet_Name],
			Text:          info[Recipe_HSet_Text],
			IngredientIDs: parseIDs(ingredientIds),
			UserID:        parseUserID(info[Recipe_HSet_UserID]),
		})
	}

	if len(failedRecipes) > 0 {
		log.Printf("WARN: failed to load %d recipes\n", len(failedRecipes))
	}

	return recipes, nil
}

func (s *RedisStorage) GetRecipe(ctx context.Context, userId, recipeId int64) (*domain.RecipeDetail, *errs.AppError) {
	pipe := s.client.Pipeline()
	infoCmd := pipe.HGetAll(ctx, s.key_RecipeInfo(recipeId))
	ingredientsCmd := pipe.ZRange(ctx, s.key_RecipeIngredients(recipeId), 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errs.NewInternalError(fmt.Errorf("pipe execution failed: id=%d, err=%w", recipeId, err))
	}

	info := infoCmd.Val()
	// recipes of other users are reported as missing
	if len(info) == 0 || parseUserID(info[Recipe_HSet_UserID]) != userId {
		return nil, errs.NewNotFound(nil, "not found")
	}

	ids := parseIDs(ingredientsCmd.Val())
	ingredients, appErr := s.loadIngredients(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}

	return &domain.RecipeDetail{
		Recipe: domain.Recipe{
			ID:            recipeId,
			Name:          info[Recipe_HSet_Name],
			Text:          info[Recipe_HSet_Text],
			IngredientIDs: ids,
			UserID:        userId,
		},
		Ingredients: ingredients,
	}, nil
}
