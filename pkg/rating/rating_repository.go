package rating

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealplanner/entities"
)

// RatingCount is one recipe's aggregate vote tally.
type RatingCount struct {
	RecipeID uuid.UUID
	ThumbsUp int
	Total    int
}

type (
	RatingRepository interface {
		UpsertRating(ctx context.Context, rating *entities.Rating) error
		GetRating(ctx context.Context, recipeID, userID string) (*entities.Rating, error)
		GetRatingsByRecipe(ctx context.Context, recipeID string) ([]*entities.Rating, error)
		GetRatingCounts(ctx context.Context) ([]RatingCount, error)
		DeleteRating(ctx context.Context, recipeID, userID string) error
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// UpsertRating inserts or updates in one statement so two concurrent votes
// for the same (recipe, user) pair collapse onto the unique row instead of
// racing a check-then-insert.
func (r *ratingRepository) UpsertRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "feedback", "modifications", "updated_at"}),
	}).Create(rating).Error
}

func (r *ratingRepository) GetRating(ctx context.Context, recipeID, userID string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetRatingsByRecipe(ctx context.Context, recipeID string) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at asc").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetRatingCounts(ctx context.Context) ([]RatingCount, error) {
	var counts []RatingCount
	if err := r.db.WithContext(ctx).
		Model(&entities.Rating{}).
		Select("recipe_id, SUM(CASE WHEN rating THEN 1 ELSE 0 END) AS thumbs_up, COUNT(*) AS total").
		Group("recipe_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *ratingRepository) DeleteRating(ctx context.Context, recipeID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&entities.Rating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
