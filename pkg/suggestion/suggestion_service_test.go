package suggestion_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/utils"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/rating"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/suggestion"
)

const testUserID = "7b7e3a46-1c5b-4a51-9c2c-3f6b6f1f2a10"

type fixture struct {
	db                *gorm.DB
	suggestionService suggestion.SuggestionService
	recipeService     recipe.RecipeService
	ratingService     rating.RatingService
	inventoryService  inventory.InventoryService
	settings          domain.EngineSettings
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.RecipeVersion{},
		&entities.Ingredient{},
		&entities.RecipeTag{},
		&entities.Rating{},
		&entities.InventoryItem{},
		&entities.InventoryHistory{},
	))

	settings := domain.EngineSettings{
		FavoritesThreshold:    0.75,
		FavoritesMinRaters:    2,
		RotationPeriodDays:    14,
		ExpirationWarningDays: 7,
		LowStockPercent:       0.2,
		QuickMealMaxMinutes:   30,
	}
	recipeRepository := recipe.NewRecipeRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)

	return &fixture{
		db:                db,
		suggestionService: suggestion.NewSuggestionService(recipeRepository, ratingRepository, inventoryRepository, settings),
		recipeService:     recipe.NewRecipeService(recipeRepository, settings),
		ratingService:     rating.NewRatingService(ratingRepository, settings),
		inventoryService:  inventory.NewInventoryService(db, inventoryRepository, settings),
		settings:          settings,
	}
}

func (f *fixture) createRecipe(t *testing.T, title string, prep, cook int, ingredients []domain.IngredientInput, tags ...string) domain.RecipeResponse {
	t.Helper()
	if ingredients == nil {
		ingredients = []domain.IngredientInput{
			{Name: title + " base", Quantity: decimal.NewFromInt(1), Unit: "pcs"},
		}
	}
	res, err := f.recipeService.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:           title,
		Servings:        2,
		PrepTimeMinutes: prep,
		CookTimeMinutes: cook,
		Difficulty:      "easy",
		Instructions:    "Cook it.",
		Ingredients:     ingredients,
		Tags:            tags,
	}, testUserID)
	require.NoError(t, err)
	return res
}

func (f *fixture) setCookStats(t *testing.T, recipeID string, daysAgo int, timesCooked int) {
	t.Helper()
	when := time.Now().AddDate(0, 0, -daysAgo)
	require.NoError(t, f.db.Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]interface{}{
			"last_cooked_date": when,
			"times_cooked":     timesCooked,
		}).Error)
}

func (f *fixture) stock(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := f.inventoryService.AddItem(context.Background(), domain.AddInventoryItemRequest{
			ItemName: name,
			Quantity: decimal.NewFromInt(10),
		}, testUserID)
		require.NoError(t, err)
	}
}

func titles(suggestions []domain.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Title)
	}
	return out
}

func TestRotationOrdersLeastRecentFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a := f.createRecipe(t, "A", 5, 10, nil)
	b := f.createRecipe(t, "B", 5, 10, nil)
	c := f.createRecipe(t, "C", 5, 10, nil)
	_ = a // never cooked
	f.setCookStats(t, b.ID, 10, 3)
	f.setCookStats(t, c.ID, 40, 5)

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyRotation, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, titles(suggestions))

	assert.Equal(t, "Never cooked yet", suggestions[0].Reason)
	require.NotNil(t, suggestions[1].DaysSinceCooked)
	assert.Equal(t, 40, *suggestions[1].DaysSinceCooked)
}

func TestNeverTriedNewestFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	old := f.createRecipe(t, "Old Untried", 5, 10, nil)
	cooked := f.createRecipe(t, "Cooked", 5, 10, nil)
	f.setCookStats(t, cooked.ID, 3, 1)
	fresh := f.createRecipe(t, "Fresh Untried", 5, 10, nil)

	// force distinct creation times, sqlite timestamps can collide
	require.NoError(t, f.db.Model(&entities.Recipe{}).Where("id = ?", old.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, f.db.Model(&entities.Recipe{}).Where("id = ?", fresh.ID).
		Update("created_at", time.Now()).Error)

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyNeverTried, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fresh Untried", "Old Untried"}, titles(suggestions))
	assert.Equal(t, "Never tried - give it a try!", suggestions[0].Reason)
}

func TestAvailableInventoryMatchPercentage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ingredients := make([]domain.IngredientInput, 0, 10)
	for i := 1; i <= 10; i++ {
		ingredients = append(ingredients, domain.IngredientInput{
			Name:     fmt.Sprintf("item%d", i),
			Quantity: decimal.NewFromInt(1),
			Unit:     "pcs",
		})
	}
	f.createRecipe(t, "Big Recipe", 5, 10, ingredients)
	f.stock(t, "item1", "item2", "item3", "item4", "item5", "item6", "item7", "item8")

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyAvailableInventory, Limit: 10})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	sug := suggestions[0]
	require.NotNil(t, sug.MatchPercent)
	assert.InDelta(t, 80.0, *sug.MatchPercent, 0.01)
	assert.Equal(t, 8, *sug.MatchedCount)
	assert.Equal(t, 10, *sug.TotalCount)
	assert.Len(t, sug.MissingTop, 2)
}

func TestAvailableInventoryOrderingAndOptionals(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.createRecipe(t, "Full Match", 5, 10, []domain.IngredientInput{
		{Name: "rice", Quantity: decimal.NewFromInt(1), Unit: "cup"},
		{Name: "truffle", Quantity: decimal.NewFromInt(1), Unit: "pcs", IsOptional: true},
	})
	f.createRecipe(t, "Half Match", 5, 10, []domain.IngredientInput{
		{Name: "rice", Quantity: decimal.NewFromInt(1), Unit: "cup"},
		{Name: "saffron", Quantity: decimal.NewFromInt(1), Unit: "g"},
	})
	f.stock(t, "rice")

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyAvailableInventory, Limit: 10})
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// optional truffle is ignored, so Full Match scores 100%
	assert.Equal(t, "Full Match", suggestions[0].Title)
	assert.InDelta(t, 100.0, *suggestions[0].MatchPercent, 0.01)
	assert.Equal(t, "Half Match", suggestions[1].Title)
	assert.InDelta(t, 50.0, *suggestions[1].MatchPercent, 0.01)
	assert.Equal(t, []string{"saffron"}, suggestions[1].MissingTop)
}

func TestFavoritesFiltersAndOrders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	loved := f.createRecipe(t, "Loved", 5, 10, nil)
	mixed := f.createRecipe(t, "Mixed", 5, 10, nil)
	liked := f.createRecipe(t, "Liked", 5, 10, nil)

	vote := func(recipeID string, voter int, up bool) {
		userID := fmt.Sprintf("55555555-5555-4555-8555-5555555555%02d", voter)
		upVote := up
		_, err := f.ratingService.SaveRating(ctx, recipeID, userID, domain.SaveRatingRequest{Rating: &upVote})
		require.NoError(t, err)
	}

	// Loved: 4/4 up. Liked: 3/4 up (75%). Mixed: 2/4 up (50%, not favorite).
	for i := 0; i < 4; i++ {
		vote(loved.ID, i, true)
		vote(liked.ID, 10+i, i != 0)
		vote(mixed.ID, 20+i, i%2 == 0)
	}

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyFavorites, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Loved", "Liked"}, titles(suggestions))
}

func TestQuickMealsCutoffAndOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.createRecipe(t, "Instant", 2, 5, nil)
	f.createRecipe(t, "Quick", 10, 20, nil)
	f.createRecipe(t, "Slow Roast", 20, 180, nil)

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyQuickMeals, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Instant", "Quick"}, titles(suggestions))
	require.NotNil(t, suggestions[0].TotalMinutes)
	assert.Equal(t, 7, *suggestions[0].TotalMinutes)
	assert.Equal(t, "Ready in 7 minutes", suggestions[0].Reason)
}

func TestSeasonalMatchesCurrentSeasonTag(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	season := utils.CurrentSeason(time.Now())
	f.createRecipe(t, "In Season", 5, 10, nil, season)
	f.createRecipe(t, "Off Season", 5, 10, nil, "neverland")

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategySeasonal, Limit: 10})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "In Season", suggestions[0].Title)
	assert.Equal(t, fmt.Sprintf("Perfect for %s!", season), suggestions[0].Reason)
}

func TestSeasonalRecipeWithTwoMatchingTagsSurfacesOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	season := utils.CurrentSeason(time.Now())
	f.createRecipe(t, "Double Tagged", 5, 10, nil, season, "late-"+season)

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategySeasonal, Limit: 10})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Double Tagged", suggestions[0].Title)
}

func TestSoftDeletedExcludedFromAllStrategies(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	season := utils.CurrentSeason(time.Now())
	rec := f.createRecipe(t, "Ghost", 5, 10, []domain.IngredientInput{
		{Name: "rice", Quantity: decimal.NewFromInt(1), Unit: "cup"},
	}, season)
	f.stock(t, "rice")
	require.NoError(t, f.recipeService.DeleteRecipe(ctx, rec.ID))

	for _, strategy := range []string{
		domain.StrategyRotation,
		domain.StrategyFavorites,
		domain.StrategyNeverTried,
		domain.StrategyAvailableInventory,
		domain.StrategySeasonal,
		domain.StrategyQuickMeals,
	} {
		suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: strategy, Limit: 10})
		require.NoError(t, err, strategy)
		assert.Empty(t, suggestions, strategy)
	}
}

func TestUnknownStrategy(t *testing.T) {
	f := setup(t)

	_, err := f.suggestionService.Suggest(context.Background(), domain.SuggestionRequest{Strategy: "chef_mood", Limit: 5})
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestLimitIsRespected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.createRecipe(t, fmt.Sprintf("Recipe %d", i), 5, 10, nil)
	}

	suggestions, err := f.suggestionService.Suggest(ctx, domain.SuggestionRequest{Strategy: domain.StrategyRotation, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}
