package suggestion

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/utils"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/rating"
	"mealplanner/pkg/recipe"
)

type (
	SuggestionService interface {
		Suggest(ctx context.Context, req domain.SuggestionRequest) ([]domain.Suggestion, error)
	}

	suggestionService struct {
		recipeRepository    recipe.RecipeRepository
		ratingRepository    rating.RatingRepository
		inventoryRepository inventory.InventoryRepository
		settings            domain.EngineSettings
	}
)

func NewSuggestionService(
	recipeRepository recipe.RecipeRepository,
	ratingRepository rating.RatingRepository,
	inventoryRepository inventory.InventoryRepository,
	settings domain.EngineSettings,
) SuggestionService {
	return &suggestionService{
		recipeRepository:    recipeRepository,
		ratingRepository:    ratingRepository,
		inventoryRepository: inventoryRepository,
		settings:            settings,
	}
}

func (s *suggestionService) Suggest(ctx context.Context, req domain.SuggestionRequest) ([]domain.Suggestion, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	switch req.Strategy {
	case domain.StrategyRotation:
		return s.suggestRotation(ctx, limit)
	case domain.StrategyFavorites:
		return s.suggestFavorites(ctx, limit)
	case domain.StrategyNeverTried:
		return s.suggestNeverTried(ctx, limit)
	case domain.StrategyAvailableInventory:
		return s.suggestAvailableInventory(ctx, limit)
	case domain.StrategySeasonal:
		return s.suggestSeasonal(ctx, limit)
	case domain.StrategyQuickMeals:
		return s.suggestQuickMeals(ctx, limit)
	default:
		return nil, domain.ErrUnknownStrategy
	}
}

func (s *suggestionService) suggestRotation(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	recipes, err := s.recipeRepository.GetRotationOrdered(ctx, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, 0, len(recipes))
	for _, rec := range recipes {
		sug := baseSuggestion(rec, domain.StrategyRotation)
		times := rec.TimesCooked
		sug.TimesCooked = &times
		if rec.LastCookedDate == nil {
			sug.Reason = "Never cooked yet"
		} else {
			days := daysSince(*rec.LastCookedDate)
			sug.DaysSinceCooked = &days
			sug.Reason = fmt.Sprintf("Not cooked in %d days", days)
		}
		suggestions = append(suggestions, sug)
	}
	return suggestions, nil
}

func (s *suggestionService) suggestFavorites(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	recipes, err := s.recipeRepository.GetActiveRecipes(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.ratingRepository.GetRatingCounts(ctx)
	if err != nil {
		return nil, err
	}
	countByRecipe := make(map[string]rating.RatingCount, len(counts))
	for _, c := range counts {
		countByRecipe[c.RecipeID.String()] = c
	}

	type scored struct {
		rec      *entities.Recipe
		fraction float64
		total    int
	}
	favorites := make([]scored, 0)
	for _, rec := range recipes {
		c, ok := countByRecipe[rec.ID.String()]
		if !ok {
			continue
		}
		if !rating.IsFavorite(c.ThumbsUp, c.Total, s.settings) {
			continue
		}
		favorites = append(favorites, scored{
			rec:      rec,
			fraction: float64(c.ThumbsUp) / float64(c.Total),
			total:    c.Total,
		})
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		if favorites[i].fraction != favorites[j].fraction {
			return favorites[i].fraction > favorites[j].fraction
		}
		return favorites[i].total > favorites[j].total
	})

	suggestions := make([]domain.Suggestion, 0, limit)
	for _, fav := range favorites {
		if len(suggestions) >= limit {
			break
		}
		sug := baseSuggestion(fav.rec, domain.StrategyFavorites)
		sug.Reason = fmt.Sprintf("Household favorite - %.0f%% thumbs up", fav.fraction*100)
		suggestions = append(suggestions, sug)
	}
	return suggestions, nil
}

func (s *suggestionService) suggestNeverTried(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	recipes, err := s.recipeRepository.GetNeverTried(ctx, limit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]domain.Suggestion, 0, len(recipes))
	for _, rec := range recipes {
		sug := baseSuggestion(rec, domain.StrategyNeverTried)
		sug.Reason = "Never tried - give it a try!"
		suggestions = append(suggestions, sug)
	}
	return suggestions, nil
}

// suggestAvailableInventory scores each recipe by how many of its required
// ingredients have in-stock inventory under normalized-name matching. Recipes
// whose current version has no required ingredients are skipped rather than
// scored.
func (s *suggestionService) suggestAvailableInventory(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	recipes, err := s.recipeRepository.GetActiveRecipes(ctx)
	if err != nil {
		return nil, err
	}
	stockItems, err := s.inventoryRepository.GetInStockItems(ctx)
	if err != nil {
		return nil, err
	}
	inStock := make(map[string]bool, len(stockItems))
	for _, item := range stockItems {
		inStock[utils.NormalizeName(item.ItemName)] = true
	}

	type scored struct {
		sug     domain.Suggestion
		percent float64
		matched int
	}
	results := make([]scored, 0, len(recipes))

	for _, rec := range recipes {
		version, err := s.recipeRepository.GetVersion(ctx, rec.ID.String(), rec.CurrentVersion)
		if err != nil {
			return nil, err
		}

		total := 0
		matched := 0
		missing := make([]string, 0)
		for _, ing := range version.Ingredients {
			if ing.IsOptional {
				continue
			}
			total++
			if inStock[utils.NormalizeName(ing.Name)] {
				matched++
			} else if len(missing) < 3 {
				missing = append(missing, ing.Name)
			}
		}
		if total == 0 {
			continue
		}

		percent := float64(matched) / float64(total) * 100
		sug := baseSuggestion(rec, domain.StrategyAvailableInventory)
		sug.MatchPercent = &percent
		matchedCopy := matched
		totalCopy := total
		sug.MatchedCount = &matchedCopy
		sug.TotalCount = &totalCopy
		sug.MissingTop = missing
		sug.Reason = fmt.Sprintf("%.0f%% of ingredients available", percent)
		results = append(results, scored{sug: sug, percent: percent, matched: matched})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].percent != results[j].percent {
			return results[i].percent > results[j].percent
		}
		return results[i].matched > results[j].matched
	})

	suggestions := make([]domain.Suggestion, 0, limit)
	for _, r := range results {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, r.sug)
	}
	return suggestions, nil
}

func (s *suggestionService) suggestSeasonal(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	season := utils.CurrentSeason(time.Now())
	recipes, err := s.recipeRepository.GetBySeasonTag(ctx, season, limit)
	if err != nil {
		return nil, err
	}
	suggestions := make([]domain.Suggestion, 0, len(recipes))
	for _, rec := range recipes {
		sug := baseSuggestion(rec, domain.StrategySeasonal)
		sug.Reason = fmt.Sprintf("Perfect for %s!", season)
		if rec.LastCookedDate != nil {
			days := daysSince(*rec.LastCookedDate)
			sug.DaysSinceCooked = &days
		}
		suggestions = append(suggestions, sug)
	}
	return suggestions, nil
}

func (s *suggestionService) suggestQuickMeals(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	recipes, err := s.recipeRepository.GetActiveRecipes(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		sug     domain.Suggestion
		minutes int
	}
	quick := make([]scored, 0)
	for _, rec := range recipes {
		version, err := s.recipeRepository.GetVersion(ctx, rec.ID.String(), rec.CurrentVersion)
		if err != nil {
			return nil, err
		}
		total := version.PrepTimeMinutes + version.CookTimeMinutes
		if total > s.settings.QuickMealMaxMinutes {
			continue
		}
		sug := baseSuggestion(rec, domain.StrategyQuickMeals)
		minutes := total
		sug.TotalMinutes = &minutes
		sug.Reason = fmt.Sprintf("Ready in %d minutes", total)
		quick = append(quick, scored{sug: sug, minutes: total})
	}

	sort.SliceStable(quick, func(i, j int) bool {
		return quick[i].minutes < quick[j].minutes
	})

	suggestions := make([]domain.Suggestion, 0, limit)
	for _, q := range quick {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, q.sug)
	}
	return suggestions, nil
}

func baseSuggestion(rec *entities.Recipe, strategy string) domain.Suggestion {
	return domain.Suggestion{
		RecipeID:    rec.ID.String(),
		Title:       rec.Title,
		Description: rec.Description,
		Strategy:    strategy,
	}
}

func daysSince(t time.Time) int {
	return int(time.Since(t).Hours() / 24)
}
