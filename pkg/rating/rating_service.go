package rating

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
)

// IsFavorite applies the household-favorite rule: enough raters AND a high
// enough thumbs-up fraction. Below the rater minimum the answer is always
// false, never "unknown".
func IsFavorite(thumbsUp, total int, settings domain.EngineSettings) bool {
	if total < settings.FavoritesMinRaters || total == 0 {
		return false
	}
	return float64(thumbsUp)/float64(total) >= settings.FavoritesThreshold
}

type (
	RatingService interface {
		SaveRating(ctx context.Context, recipeID, userID string, req domain.SaveRatingRequest) (domain.RatingResponse, error)
		GetRecipeRatings(ctx context.Context, recipeID string) ([]domain.RatingResponse, error)
		GetRatingSummary(ctx context.Context, recipeID string) (domain.RatingSummary, error)
		DeleteRating(ctx context.Context, recipeID, userID string) error
	}

	ratingService struct {
		ratingRepository RatingRepository
		settings         domain.EngineSettings
	}
)

func NewRatingService(ratingRepository RatingRepository, settings domain.EngineSettings) RatingService {
	return &ratingService{
		ratingRepository: ratingRepository,
		settings:         settings,
	}
}

func (s *ratingService) SaveRating(ctx context.Context, recipeID, userID string, req domain.SaveRatingRequest) (domain.RatingResponse, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.RatingResponse{}, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RatingResponse{}, domain.ErrParseUUID
	}

	rating := &entities.Rating{
		ID:            uuid.New(),
		RecipeID:      recipeUUID,
		UserID:        userUUID,
		Rating:        *req.Rating,
		Feedback:      req.Feedback,
		Modifications: req.Modifications,
	}
	if err := s.ratingRepository.UpsertRating(ctx, rating); err != nil {
		return domain.RatingResponse{}, err
	}

	saved, err := s.ratingRepository.GetRating(ctx, recipeID, userID)
	if err != nil {
		return domain.RatingResponse{}, err
	}
	return toRatingResponse(saved), nil
}

func (s *ratingService) GetRecipeRatings(ctx context.Context, recipeID string) ([]domain.RatingResponse, error) {
	ratings, err := s.ratingRepository.GetRatingsByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, toRatingResponse(rating))
	}
	return responses, nil
}

func (s *ratingService) GetRatingSummary(ctx context.Context, recipeID string) (domain.RatingSummary, error) {
	ratings, err := s.ratingRepository.GetRatingsByRecipe(ctx, recipeID)
	if err != nil {
		return domain.RatingSummary{}, err
	}

	thumbsUp := 0
	for _, rating := range ratings {
		if rating.Rating {
			thumbsUp++
		}
	}
	total := len(ratings)

	summary := domain.RatingSummary{
		RecipeID:        recipeID,
		ThumbsUpCount:   thumbsUp,
		ThumbsDownCount: total - thumbsUp,
		TotalRatings:    total,
		IsFavorite:      IsFavorite(thumbsUp, total, s.settings),
	}
	// The percentage is reported only once enough household members voted,
	// so "not enough data" is distinguishable from "below threshold".
	if total >= s.settings.FavoritesMinRaters && total > 0 {
		percent := float64(thumbsUp) / float64(total) * 100
		summary.PositivePercent = &percent
	}
	return summary, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, recipeID, userID string) error {
	if err := s.ratingRepository.DeleteRating(ctx, recipeID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRatingNotFound
		}
		return err
	}
	return nil
}

func toRatingResponse(rating *entities.Rating) domain.RatingResponse {
	return domain.RatingResponse{
		ID:            rating.ID.String(),
		RecipeID:      rating.RecipeID.String(),
		UserID:        rating.UserID.String(),
		Rating:        rating.Rating,
		Feedback:      rating.Feedback,
		Modifications: rating.Modifications,
	}
}
