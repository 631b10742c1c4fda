package rating_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/rating"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Rating{}))
	return db
}

func boolPtr(b bool) *bool { return &b }

const (
	recipeID = "0f8a3f6e-6f6e-4f21-88e6-9a1f4d2b7c31"
	userA    = "11111111-1111-4111-8111-111111111111"
	userB    = "22222222-2222-4222-8222-222222222222"
)

func TestIsFavorite(t *testing.T) {
	settings := domain.EngineSettings{FavoritesThreshold: 0.75, FavoritesMinRaters: 2}

	assert.True(t, rating.IsFavorite(3, 4, settings))
	assert.False(t, rating.IsFavorite(2, 4, settings)) // 50% < 75%
	assert.False(t, rating.IsFavorite(1, 1, settings)) // too few raters
	assert.False(t, rating.IsFavorite(0, 0, settings))

	strict := domain.EngineSettings{FavoritesThreshold: 0.75, FavoritesMinRaters: 5}
	assert.False(t, rating.IsFavorite(3, 4, strict))
}

func TestSaveRatingUpsertsPerUser(t *testing.T) {
	db := setupTestDB(t)
	service := rating.NewRatingService(rating.NewRatingRepository(db), domain.DefaultEngineSettings())
	ctx := context.Background()

	_, err := service.SaveRating(ctx, recipeID, userA, domain.SaveRatingRequest{Rating: boolPtr(true), Feedback: "great"})
	require.NoError(t, err)

	// same user votes again: row is replaced, not duplicated
	res, err := service.SaveRating(ctx, recipeID, userA, domain.SaveRatingRequest{Rating: boolPtr(false), Feedback: "changed my mind"})
	require.NoError(t, err)
	assert.False(t, res.Rating)
	assert.Equal(t, "changed my mind", res.Feedback)

	ratings, err := service.GetRecipeRatings(ctx, recipeID)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
}

func TestRatingSummaryThresholds(t *testing.T) {
	db := setupTestDB(t)
	settings := domain.EngineSettings{FavoritesThreshold: 0.75, FavoritesMinRaters: 2}
	service := rating.NewRatingService(rating.NewRatingRepository(db), settings)
	ctx := context.Background()

	// 3 up, 1 down = 75%
	voters := []struct {
		id string
		up bool
	}{
		{"33333333-3333-4333-8333-333333333331", true},
		{"33333333-3333-4333-8333-333333333332", true},
		{"33333333-3333-4333-8333-333333333333", true},
		{"33333333-3333-4333-8333-333333333334", false},
	}
	for _, v := range voters {
		_, err := service.SaveRating(ctx, recipeID, v.id, domain.SaveRatingRequest{Rating: boolPtr(v.up)})
		require.NoError(t, err)
	}

	summary, err := service.GetRatingSummary(ctx, recipeID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ThumbsUpCount)
	assert.Equal(t, 1, summary.ThumbsDownCount)
	assert.True(t, summary.IsFavorite)
	require.NotNil(t, summary.PositivePercent)
	assert.InDelta(t, 75.0, *summary.PositivePercent, 0.01)
}

func TestRatingSummaryBelowMinRaters(t *testing.T) {
	db := setupTestDB(t)
	settings := domain.EngineSettings{FavoritesThreshold: 0.75, FavoritesMinRaters: 5}
	service := rating.NewRatingService(rating.NewRatingRepository(db), settings)
	ctx := context.Background()

	_, err := service.SaveRating(ctx, recipeID, userA, domain.SaveRatingRequest{Rating: boolPtr(true)})
	require.NoError(t, err)
	_, err = service.SaveRating(ctx, recipeID, userB, domain.SaveRatingRequest{Rating: boolPtr(true)})
	require.NoError(t, err)

	summary, err := service.GetRatingSummary(ctx, recipeID)
	require.NoError(t, err)
	assert.False(t, summary.IsFavorite)
	assert.Nil(t, summary.PositivePercent, "percentage is undefined below the rater minimum")
}

func TestDeleteRating(t *testing.T) {
	db := setupTestDB(t)
	service := rating.NewRatingService(rating.NewRatingRepository(db), domain.DefaultEngineSettings())
	ctx := context.Background()

	_, err := service.SaveRating(ctx, recipeID, userA, domain.SaveRatingRequest{Rating: boolPtr(true)})
	require.NoError(t, err)

	require.NoError(t, service.DeleteRating(ctx, recipeID, userA))
	assert.ErrorIs(t, service.DeleteRating(ctx, recipeID, userA), domain.ErrRatingNotFound)
}

func TestGetRatingCountsGroupsByRecipe(t *testing.T) {
	db := setupTestDB(t)
	repo := rating.NewRatingRepository(db)
	service := rating.NewRatingService(repo, domain.DefaultEngineSettings())
	ctx := context.Background()

	otherRecipe := "0f8a3f6e-6f6e-4f21-88e6-9a1f4d2b7c32"
	for i := 0; i < 3; i++ {
		voter := fmt.Sprintf("44444444-4444-4444-8444-44444444444%d", i)
		_, err := service.SaveRating(ctx, recipeID, voter, domain.SaveRatingRequest{Rating: boolPtr(true)})
		require.NoError(t, err)
	}
	_, err := service.SaveRating(ctx, otherRecipe, userA, domain.SaveRatingRequest{Rating: boolPtr(false)})
	require.NoError(t, err)

	counts, err := repo.GetRatingCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)

	byRecipe := make(map[string]rating.RatingCount)
	for _, c := range counts {
		byRecipe[c.RecipeID.String()] = c
	}
	assert.Equal(t, 3, byRecipe[recipeID].ThumbsUp)
	assert.Equal(t, 3, byRecipe[recipeID].Total)
	assert.Equal(t, 0, byRecipe[otherRecipe].ThumbsUp)
	assert.Equal(t, 1, byRecipe[otherRecipe].Total)
}
