package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipe(ctx context.Context, recipeID string, versionNumber int) (domain.RecipeResponse, error)
		ListRecipes(ctx context.Context, req domain.ListRecipesRequest) ([]domain.RecipeResponse, int64, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		RevertToVersion(ctx context.Context, recipeID string, targetVersion int, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string) error
		GetVersions(ctx context.Context, recipeID string) ([]domain.RecipeVersionResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		settings         domain.EngineSettings
	}
)

func NewRecipeService(recipeRepository RecipeRepository, settings domain.EngineSettings) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		settings:         settings,
	}
}

func validateSnapshot(servings, prepMinutes, cookMinutes int, difficulty, instructions string, ingredientCount int) error {
	if ingredientCount == 0 {
		return domain.ErrNoIngredients
	}
	if strings.TrimSpace(instructions) == "" {
		return domain.ErrNoInstructions
	}
	if servings <= 0 {
		return domain.ErrInvalidServings
	}
	if prepMinutes < 0 || cookMinutes < 0 {
		return domain.ErrInvalidTimeMinutes
	}
	switch difficulty {
	case "easy", "medium", "hard":
	default:
		return domain.ErrInvalidDifficulty
	}
	return nil
}

func buildIngredients(versionID uuid.UUID, inputs []domain.IngredientInput) []*entities.Ingredient {
	ingredients := make([]*entities.Ingredient, 0, len(inputs))
	for idx, in := range inputs {
		ingredients = append(ingredients, &entities.Ingredient{
			ID:              uuid.New(),
			RecipeVersionID: versionID,
			Name:            in.Name,
			Quantity:        in.Quantity,
			Unit:            in.Unit,
			Category:        in.Category,
			DisplayOrder:    idx,
			IsOptional:      in.IsOptional,
		})
	}
	return ingredients
}

func buildTags(recipeID uuid.UUID, tags []string) []*entities.RecipeTag {
	seen := map[string]bool{}
	out := make([]*entities.RecipeTag, 0, len(tags))
	for _, tag := range tags {
		lowered := strings.ToLower(strings.TrimSpace(tag))
		if lowered == "" || seen[lowered] {
			continue
		}
		seen[lowered] = true
		out = append(out, &entities.RecipeTag{
			ID:       uuid.New(),
			RecipeID: recipeID,
			Tag:      lowered,
		})
	}
	return out
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	if err := validateSnapshot(req.Servings, req.PrepTimeMinutes, req.CookTimeMinutes, req.Difficulty, req.Instructions, len(req.Ingredients)); err != nil {
		return domain.RecipeResponse{}, err
	}

	sourceType := "manual"
	if req.SourceURL != "" {
		sourceType = "scraped"
	}

	recipe := &entities.Recipe{
		ID:             uuid.New(),
		Title:          req.Title,
		Description:    req.Description,
		SourceURL:      req.SourceURL,
		SourceType:     sourceType,
		CreatedBy:      creatorID,
		CurrentVersion: 1,
	}
	version := &entities.RecipeVersion{
		ID:              uuid.New(),
		RecipeID:        recipe.ID,
		VersionNumber:   1,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Difficulty:      req.Difficulty,
		Instructions:    req.Instructions,
		ModifiedBy:      creatorID,
	}
	ingredients := buildIngredients(version.ID, req.Ingredients)
	tags := buildTags(recipe.ID, req.Tags)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, version, ingredients, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, recipe.ID.String(), 0)
}

// GetRecipe loads a recipe at versionNumber, or at its current version when
// versionNumber is zero.
func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, versionNumber int) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetActiveRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if versionNumber == 0 {
		versionNumber = recipe.CurrentVersion
	}
	version, err := s.recipeRepository.GetVersion(ctx, recipeID, versionNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeVersionNotFound
		}
		return domain.RecipeResponse{}, err
	}

	tags, err := s.recipeRepository.GetTags(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe, version, tags), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, req domain.ListRecipesRequest) ([]domain.RecipeResponse, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}

	recipes, count, err := s.recipeRepository.ListRecipes(ctx, req, s.settings)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		version, err := s.recipeRepository.GetVersion(ctx, recipe.ID.String(), recipe.CurrentVersion)
		if err != nil {
			return nil, 0, err
		}
		tags, err := s.recipeRepository.GetTags(ctx, recipe.ID.String())
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, toRecipeResponse(recipe, version, tags))
	}
	return responses, count, nil
}

// UpdateRecipe never mutates an existing version: the new snapshot becomes
// version current+1 and the recipe pointer advances.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	editorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	if err := validateSnapshot(req.Servings, req.PrepTimeMinutes, req.CookTimeMinutes, req.Difficulty, req.Instructions, len(req.Ingredients)); err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe, err := s.recipeRepository.GetActiveRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	version := &entities.RecipeVersion{
		ID:                uuid.New(),
		RecipeID:          recipe.ID,
		VersionNumber:     recipe.CurrentVersion + 1,
		PrepTimeMinutes:   req.PrepTimeMinutes,
		CookTimeMinutes:   req.CookTimeMinutes,
		Servings:          req.Servings,
		Difficulty:        req.Difficulty,
		Instructions:      req.Instructions,
		ChangeDescription: req.ChangeDescription,
		ModifiedBy:        editorID,
	}
	ingredients := buildIngredients(version.ID, req.Ingredients)

	recipe.Title = req.Title
	recipe.Description = req.Description
	tags := buildTags(recipe.ID, req.Tags)

	if err := s.recipeRepository.AppendVersion(ctx, recipe, version, ingredients, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, recipeID, 0)
}

// RevertToVersion copies the target version's content into a brand-new
// version number. Old version numbers are never reused, so history stays
// append-only. Reverting to the current version is a no-op.
func (s *recipeService) RevertToVersion(ctx context.Context, recipeID string, targetVersion int, userID string) (domain.RecipeResponse, error) {
	editorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetActiveRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if targetVersion == recipe.CurrentVersion {
		return s.GetRecipe(ctx, recipeID, 0)
	}

	target, err := s.recipeRepository.GetVersion(ctx, recipeID, targetVersion)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeVersionNotFound
		}
		return domain.RecipeResponse{}, err
	}

	version := &entities.RecipeVersion{
		ID:                uuid.New(),
		RecipeID:          recipe.ID,
		VersionNumber:     recipe.CurrentVersion + 1,
		PrepTimeMinutes:   target.PrepTimeMinutes,
		CookTimeMinutes:   target.CookTimeMinutes,
		Servings:          target.Servings,
		Difficulty:        target.Difficulty,
		Instructions:      target.Instructions,
		ChangeDescription: fmt.Sprintf("Reverted to version %d", targetVersion),
		ModifiedBy:        editorID,
	}

	ingredients := make([]*entities.Ingredient, 0, len(target.Ingredients))
	for _, ing := range target.Ingredients {
		ingredients = append(ingredients, &entities.Ingredient{
			ID:              uuid.New(),
			RecipeVersionID: version.ID,
			Name:            ing.Name,
			Quantity:        ing.Quantity,
			Unit:            ing.Unit,
			Category:        ing.Category,
			DisplayOrder:    ing.DisplayOrder,
			IsOptional:      ing.IsOptional,
		})
	}

	// nil tags keeps the existing tag set untouched
	if err := s.recipeRepository.AppendVersion(ctx, recipe, version, ingredients, nil); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, recipeID, 0)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string) error {
	if err := s.recipeRepository.SoftDelete(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

func (s *recipeService) GetVersions(ctx context.Context, recipeID string) ([]domain.RecipeVersionResponse, error) {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	versions, err := s.recipeRepository.GetVersions(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.RecipeVersionResponse, 0, len(versions))
	for _, version := range versions {
		responses = append(responses, domain.RecipeVersionResponse{
			VersionNumber:     version.VersionNumber,
			Servings:          version.Servings,
			PrepTimeMinutes:   version.PrepTimeMinutes,
			CookTimeMinutes:   version.CookTimeMinutes,
			Difficulty:        version.Difficulty,
			Instructions:      version.Instructions,
			ChangeDescription: version.ChangeDescription,
			Ingredients:       toIngredientResponses(version.Ingredients),
			CreatedAt:         version.CreatedAt,
		})
	}
	return responses, nil
}

func toIngredientResponses(ingredients []*entities.Ingredient) []domain.IngredientResponse {
	out := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, domain.IngredientResponse{
			Name:       ing.Name,
			Quantity:   ing.Quantity,
			Unit:       ing.Unit,
			Category:   ing.Category,
			IsOptional: ing.IsOptional,
		})
	}
	return out
}

func toRecipeResponse(recipe *entities.Recipe, version *entities.RecipeVersion, tags []string) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		CurrentVersion:  recipe.CurrentVersion,
		Servings:        version.Servings,
		PrepTimeMinutes: version.PrepTimeMinutes,
		CookTimeMinutes: version.CookTimeMinutes,
		TotalMinutes:    version.PrepTimeMinutes + version.CookTimeMinutes,
		Difficulty:      version.Difficulty,
		Instructions:    version.Instructions,
		Ingredients:     toIngredientResponses(version.Ingredients),
		Tags:            tags,
		TimesCooked:     recipe.TimesCooked,
		LastCookedDate:  recipe.LastCookedDate,
		CreatedAt:       recipe.CreatedAt,
	}
}
