package domain

import "errors"

var (
	MessageSuccessSaveRating    = "rating saved successfully"
	MessageSuccessGetRatings    = "success get ratings"
	MessageSuccessDeleteRating  = "rating deleted successfully"
	MessageFailedSaveRating     = "failed to save rating"
	MessageFailedGetRatings     = "failed to get ratings"
	MessageFailedDeleteRating   = "failed to delete rating"

	ErrRatingNotFound = errors.New("rating not found")
)

type (
	SaveRatingRequest struct {
		Rating        *bool  `json:"rating" validate:"required"`
		Feedback      string `json:"feedback"`
		Modifications string `json:"modifications"`
	}

	RatingResponse struct {
		ID            string `json:"id"`
		RecipeID      string `json:"recipe_id"`
		UserID        string `json:"user_id"`
		Rating        bool   `json:"rating"`
		Feedback      string `json:"feedback,omitempty"`
		Modifications string `json:"modifications,omitempty"`
	}

	// RatingSummary reports aggregate vote counts plus derived favorite
	// status. PositivePercent is nil when fewer than the configured minimum
	// number of raters have voted, to distinguish "not enough data" from
	// "below threshold".
	RatingSummary struct {
		RecipeID        string   `json:"recipe_id"`
		ThumbsUpCount   int      `json:"thumbs_up_count"`
		ThumbsDownCount int      `json:"thumbs_down_count"`
		TotalRatings    int      `json:"total_ratings"`
		PositivePercent *float64 `json:"positive_percent,omitempty"`
		IsFavorite      bool     `json:"is_favorite"`
	}
)
