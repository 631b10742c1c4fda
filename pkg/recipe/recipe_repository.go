package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
)

// Active scopes a query to recipes that are not soft-deleted. Every listing
// and suggestion read path goes through this single predicate.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.is_deleted = ?", false)
}

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, version *entities.RecipeVersion, ingredients []*entities.Ingredient, tags []*entities.RecipeTag) error
		AppendVersion(ctx context.Context, recipe *entities.Recipe, version *entities.RecipeVersion, ingredients []*entities.Ingredient, tags []*entities.RecipeTag) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetActiveRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetActiveRecipes(ctx context.Context) ([]*entities.Recipe, error)
		ListRecipes(ctx context.Context, req domain.ListRecipesRequest, settings domain.EngineSettings) ([]*entities.Recipe, int64, error)
		SoftDelete(ctx context.Context, id string) error
		GetVersion(ctx context.Context, recipeID string, versionNumber int) (*entities.RecipeVersion, error)
		GetVersions(ctx context.Context, recipeID string) ([]*entities.RecipeVersion, error)
		GetTags(ctx context.Context, recipeID string) ([]string, error)
		GetRotationOrdered(ctx context.Context, limit int) ([]*entities.Recipe, error)
		GetNeverTried(ctx context.Context, limit int) ([]*entities.Recipe, error)
		GetBySeasonTag(ctx context.Context, season string, limit int) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, version *entities.RecipeVersion, ingredients []*entities.Ingredient, tags []*entities.RecipeTag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Create(version).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(ingredients).Error; err != nil {
				return err
			}
		}
		if len(tags) > 0 {
			if err := tx.Create(tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AppendVersion writes the next version snapshot and advances the recipe's
// current_version pointer. Existing versions are never touched. Two writers
// racing for the same version number collide on the (recipe_id,
// version_number) unique index; the loser gets ErrConflict and must
// re-request.
func (r *recipeRepository) AppendVersion(ctx context.Context, recipe *entities.Recipe, version *entities.RecipeVersion, ingredients []*entities.Ingredient, tags []*entities.RecipeTag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(version).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(ingredients).Error; err != nil {
				return err
			}
		}
		if tags != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
				return err
			}
			if len(tags) > 0 {
				if err := tx.Create(tags).Error; err != nil {
					return err
				}
			}
		}
		return tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"title":           recipe.Title,
				"description":     recipe.Description,
				"current_version": version.VersionNumber,
			}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetActiveRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Scopes(Active).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetActiveRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).Scopes(Active).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListRecipes applies every filter, the special ones included, before the
// count and the page window, so matches beyond the first page surface and
// the total reflects the filtered set.
func (r *recipeRepository) ListRecipes(ctx context.Context, req domain.ListRecipesRequest, settings domain.EngineSettings) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (req.Page - 1) * req.Limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).Scopes(Active)

	if req.Search != "" {
		needle := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ?", needle, needle)
	}
	if req.Tag != "" {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag = ?", strings.ToLower(req.Tag))
	}
	if req.Difficulty != "" {
		query = query.
			Joins("JOIN recipe_versions ON recipe_versions.recipe_id = recipes.id AND recipe_versions.version_number = recipes.current_version").
			Where("recipe_versions.difficulty = ?", req.Difficulty)
	}

	switch req.Filter {
	case "favorites":
		favorites := r.db.Model(&entities.Rating{}).
			Select("recipe_id").
			Group("recipe_id").
			Having(
				"COUNT(*) >= ? AND AVG(CASE WHEN rating THEN 1.0 ELSE 0.0 END) >= ?",
				settings.FavoritesMinRaters, settings.FavoritesThreshold,
			)
		query = query.Where("recipes.id IN (?)", favorites)
	case "not_recent":
		cutoff := time.Now().AddDate(0, 0, -settings.RotationPeriodDays)
		query = query.Where("(recipes.last_cooked_date IS NULL OR recipes.last_cooked_date <= ?)", cutoff)
	case "never_tried":
		query = query.Where("recipes.times_cooked = ?", 0)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Offset(offset).
		Limit(req.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) GetVersion(ctx context.Context, recipeID string, versionNumber int) (*entities.RecipeVersion, error) {
	var version entities.RecipeVersion
	if err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.display_order asc")
		}).
		Where("recipe_id = ? AND version_number = ?", recipeID, versionNumber).
		First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *recipeRepository) GetVersions(ctx context.Context, recipeID string) ([]*entities.RecipeVersion, error) {
	var versions []*entities.RecipeVersion
	if err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.display_order asc")
		}).
		Where("recipe_id = ?", recipeID).
		Order("version_number desc").
		Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *recipeRepository) GetTags(ctx context.Context, recipeID string) ([]string, error) {
	var tags []string
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeTag{}).
		Where("recipe_id = ?", recipeID).
		Order("tag asc").
		Pluck("tag", &tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetRotationOrdered returns active recipes least-recently-cooked first, with
// never-cooked recipes (NULL last_cooked_date) ahead of everything.
func (r *recipeRepository) GetRotationOrdered(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).Scopes(Active).
		Order("last_cooked_date ASC NULLS FIRST").
		Order("times_cooked asc").
		Order("title asc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetNeverTried(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).Scopes(Active).
		Where("times_cooked = ?", 0).
		Order("created_at desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetBySeasonTag(ctx context.Context, season string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	// Distinct: a recipe tagged "summer" and "late-summer" matches the join
	// twice but must surface once.
	if err := r.db.WithContext(ctx).Scopes(Active).
		Distinct("recipes.*").
		Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
		Where("recipe_tags.tag LIKE ?", "%"+season+"%").
		Order("last_cooked_date ASC NULLS FIRST").
		Order("times_cooked asc").
		Order("title asc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
