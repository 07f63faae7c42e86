package storage

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jkosta95/recipe-app-api/internal/config"
	"github.com/jkosta95/recipe-app-api/internal/domain"
	"github.com/jkosta95/recipe-app-api/internal/readiness"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStorage(&config.RedisConfig{
		Addr:         mr.Addr(),
		ProbeTimeout: time.Second,
	})
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func createUser(t *testing.T, s *RedisStorage, email string) int64 {
	t.Helper()
	id, appErr := s.CreateUser(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: "hash",
	})
	if appErr != nil {
		t.Fatalf("create user: %v", appErr)
	}
	return id
}

func TestProbe(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	s := NewRedisStorage(&config.RedisConfig{Addr: mr.Addr(), ProbeTimeout: time.Second})
	defer s.Close()

	if err := s.Probe(context.Background()); err != nil {
		t.Fatalf("expected probe to succeed, got %v", err)
	}

	mr.Close()
	err = s.Probe(context.Background())
	if !errors.Is(err, readiness.ErrConnectionUnavailable) {
		t.Fatalf("expected ErrConnectionUnavailable, got %v", err)
	}
}

func TestProbeAuthErrorIsNotUnavailable(t *testing.T) {
	s, mr := newTestStorage(t)
	mr.RequireAuth("secret")

	err := s.Probe(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, readiness.ErrConnectionUnavailable) {
		t.Fatalf("expected auth error to be returned as is, got %v", err)
	}
}

func TestProbeGatesStartup(t *testing.T) {
	s, _ := newTestStorage(t)

	gate := readiness.New(s, readiness.DefaultPolicy(), readiness.WithOutput(nil))
	if err := gate.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	id, appErr := s.CreateUser(ctx, &domain.User{
		Email:        "test@kosta.com",
		PasswordHash: "hash",
		FirstName:    "Test name",
		LastName:     "Second name",
	})
	if appErr != nil {
		t.Fatalf("create user: %v", appErr)
	}

	user, appErr := s.GetUserByEmail(ctx, "test@kosta.com")
	if appErr != nil {
		t.Fatalf("get user: %v", appErr)
	}
	if user.ID != id || user.FirstName != "Test name" || user.LastName != "Second name" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash != "hash" {
		t.Fatalf("expected stored hash, got %q", user.PasswordHash)
	}
}

func TestCreateUserExists(t *testing.T) {
	s, _ := newTestStorage(t)
	createUser(t, s, "test@kosta.com")

	_, appErr := s.CreateUser(context.Background(), &domain.User{Email: "test@kosta.com", PasswordHash: "x"})
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", appErr.Code)
	}
}

func TestCreateUserExistsLeavesNoRecord(t *testing.T) {
	s, mr := newTestStorage(t)
	createUser(t, s, "test@kosta.com")

	if _, appErr := s.CreateUser(context.Background(), &domain.User{Email: "test@kosta.com", PasswordHash: "x"}); appErr == nil {
		t.Fatal("expected error")
	}
	if mr.Exists(s.key_UserInfo(2)) {
		t.Fatal("expected rejected user record to be removed")
	}
}

func TestCreateUserReplacesDanglingEmailClaim(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()
	if err := mr.Set(s.key_UserByEmail("test@kosta.com"), "99"); err != nil {
		t.Fatalf("seed claim: %v", err)
	}

	id := createUser(t, s, "test@kosta.com")

	user, appErr := s.GetUserByEmail(ctx, "test@kosta.com")
	if appErr != nil {
		t.Fatalf("get user: %v", appErr)
	}
	if user.ID != id {
		t.Fatalf("expected user %d, got %d", id, user.ID)
	}

	_, appErr = s.CreateUser(ctx, &domain.User{Email: "test@kosta.com", PasswordHash: "x"})
	if appErr == nil || appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for live claim, got %v", appErr)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s, _ := newTestStorage(t)

	_, appErr := s.GetUserByEmail(context.Background(), "nobody@kosta.com")
	if appErr == nil || appErr.Code != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", appErr)
	}
	_, appErr = s.GetUser(context.Background(), 42)
	if appErr == nil || appErr.Code != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", appErr)
	}
}

func TestGetOrCreateToken(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	userId := createUser(t, s, "kosta@test.com")

	first, appErr := s.GetOrCreateToken(ctx, userId)
	if appErr != nil {
		t.Fatalf("create token: %v", appErr)
	}
	second, appErr := s.GetOrCreateToken(ctx, userId)
	if appErr != nil {
		t.Fatalf("get token: %v", appErr)
	}
	if first.Key != second.Key {
		t.Fatalf("expected same token, got %q and %q", first.Key, second.Key)
	}

	got, appErr := s.GetUserIDByToken(ctx, first.Key)
	if appErr != nil {
		t.Fatalf("lookup token: %v", appErr)
	}
	if got != userId {
		t.Fatalf("expected user %d, got %d", userId, got)
	}

	_, appErr = s.GetUserIDByToken(ctx, "bogus")
	if appErr == nil || appErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v", appErr)
	}
}

func TestGetOrCreateTokenLeavesSingleRecord(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()
	userId := createUser(t, s, "kosta@test.com")

	for i := 0; i < 3; i++ {
		if _, appErr := s.GetOrCreateToken(ctx, userId); appErr != nil {
			t.Fatalf("token: %v", appErr)
		}
	}
	tokens := 0
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "tokens:") {
			tokens++
		}
	}
	if tokens != 1 {
		t.Fatalf("expected 1 token record, got %d", tokens)
	}
}

func TestGetOrCreateTokenReplacesDanglingClaim(t *testing.T) {
	s, mr := newTestStorage(t)
	ctx := context.Background()
	userId := createUser(t, s, "kosta@test.com")
	if err := mr.Set(s.key_UserToken(userId), "dead-key"); err != nil {
		t.Fatalf("seed claim: %v", err)
	}

	token, appErr := s.GetOrCreateToken(ctx, userId)
	if appErr != nil {
		t.Fatalf("token: %v", appErr)
	}
	if token.Key == "dead-key" {
		t.Fatal("expected a new token key")
	}
	got, appErr := s.GetUserIDByToken(ctx, token.Key)
	if appErr != nil {
		t.Fatalf("lookup token: %v", appErr)
	}
	if got != userId {
		t.Fatalf("expected user %d, got %d", userId, got)
	}

	again, appErr := s.GetOrCreateToken(ctx, userId)
	if appErr != nil {
		t.Fatalf("token: %v", appErr)
	}
	if again.Key != token.Key {
		t.Fatalf("expected same token, got %q and %q", token.Key, again.Key)
	}
}

func TestListIngredientsLimitedToUserAndOrdered(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	user := createUser(t, s, "test@kosta.com")
	other := createUser(t, s, "other@kosta.com")

	for _, name := range []string{"Kale", "Salt"} {
		if _, appErr := s.CreateIngredient(ctx, &domain.Ingredient{Name: name, UserID: user}); appErr != nil {
			t.Fatalf("create ingredient: %v", appErr)
		}
	}
	if _, appErr := s.CreateIngredient(ctx, &domain.Ingredient{Name: "Vinegar", UserID: other}); appErr != nil {
		t.Fatalf("create ingredient: %v", appErr)
	}

	ingredients, appErr := s.ListIngredients(ctx, user)
	if appErr != nil {
		t.Fatalf("list ingredients: %v", appErr)
	}
	if len(ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(ingredients))
	}
	if ingredients[0].Name != "Salt" || ingredients[1].Name != "Kale" {
		t.Fatalf("expected name descending order, got %q, %q", ingredients[0].Name, ingredients[1].Name)
	}
}

func TestRecipes(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	user := createUser(t, s, "test@kosta.com")
	other := createUser(t, s, "other@kosta.com")

	salt, _ := s.CreateIngredient(ctx, &domain.Ingredient{Name: "Salt", UserID: user})
	foreign, _ := s.CreateIngredient(ctx, &domain.Ingredient{Name: "Pepper", UserID: other})

	first, appErr := s.CreateRecipe(ctx, &domain.Recipe{Name: "Sample Recipe", Text: "Some text", UserID: user})
	if appErr != nil {
		t.Fatalf("create recipe: %v", appErr)
	}
	second, appErr := s.CreateRecipe(ctx, &domain.Recipe{
		Name:          "Salted",
		Text:          "More text",
		UserID:        user,
		IngredientIDs: []int64{salt},
	})
	if appErr != nil {
		t.Fatalf("create recipe: %v", appErr)
	}
	if _, appErr := s.CreateRecipe(ctx, &domain.Recipe{Name: "Theirs", Text: "x", UserID: other}); appErr != nil {
		t.Fatalf("create recipe: %v", appErr)
	}

	recipes, appErr := s.ListRecipes(ctx, user)
	if appErr != nil {
		t.Fatalf("list recipes: %v", appErr)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].ID != second || recipes[1].ID != first {
		t.Fatalf("expected newest first, got ids %d, %d", recipes[0].ID, recipes[1].ID)
	}
	if len(recipes[0].IngredientIDs) != 1 || recipes[0].IngredientIDs[0] != salt {
		t.Fatalf("unexpected ingredient ids %v", recipes[0].IngredientIDs)
	}

	detail, appErr := s.GetRecipe(ctx, user, second)
	if appErr != nil {
		t.Fatalf("get recipe: %v", appErr)
	}
	if len(detail.Ingredients) != 1 || detail.Ingredients[0].Name != "Salt" {
		t.Fatalf("unexpected ingredients %+v", detail.Ingredients)
	}

	_, appErr = s.GetRecipe(ctx, other, second)
	if appErr == nil || appErr.Code != http.StatusNotFound {
		t.Fatalf("expected not found for other user, got %v", appErr)
	}

	_, appErr = s.CreateRecipe(ctx, &domain.Recipe{Name: "Bad", Text: "x", UserID: user, IngredientIDs: []int64{foreign}})
	if appErr == nil || appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request for foreign ingredient, got %v", appErr)
	}
	_, appErr = s.CreateRecipe(ctx, &domain.Recipe{Name: "Bad", Text: "x", UserID: user, IngredientIDs: []int64{999}})
	if appErr == nil || appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing ingredient, got %v", appErr)
	}
}

func TestListRecipesEmpty(t *testing.T) {
	s, _ := newTestStorage(t)

	recipes, appErr := s.ListRecipes(context.Background(), 1)
	if appErr != nil {
		t.Fatalf("list recipes: %v", appErr)
	}
	if len(recipes) != 0 {
		t.Fatalf("expected no recipes, got %d", len(recipes))
	}
}
