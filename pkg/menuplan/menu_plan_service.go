package menuplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/inventory"
	"mealplanner/pkg/recipe"
)

type (
	MenuPlanService interface {
		CreatePlan(ctx context.Context, req domain.CreateMenuPlanRequest, userID string) (*domain.MenuPlanResponse, error)
		GetPlans(ctx context.Context, activeOnly bool) ([]domain.MenuPlanResponse, error)
		GetPlan(ctx context.Context, planID string) (*domain.MenuPlanResponse, error)
		UpdatePlan(ctx context.Context, planID string, req domain.UpdateMenuPlanRequest) (*domain.MenuPlanResponse, error)
		DeletePlan(ctx context.Context, planID string) error
		AddMeal(ctx context.Context, planID string, req domain.PlannedMealInput) (*domain.PlannedMealResponse, error)
		RemoveMeal(ctx context.Context, mealID string) error
		MarkMealCooked(ctx context.Context, mealID string, userID string) (*domain.MarkCookedResponse, error)
	}

	menuPlanService struct {
		db                 *gorm.DB
		menuPlanRepository MenuPlanRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewMenuPlanService(db *gorm.DB, menuPlanRepository MenuPlanRepository, recipeRepository recipe.RecipeRepository) MenuPlanService {
	return &menuPlanService{
		db:                 db,
		menuPlanRepository: menuPlanRepository,
		recipeRepository:   recipeRepository,
	}
}

const dateLayout = "2006-01-02"

func (s *menuPlanService) CreatePlan(ctx context.Context, req domain.CreateMenuPlanRequest, userID string) (*domain.MenuPlanResponse, error) {
	creatorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	weekStart, err := time.Parse(dateLayout, req.WeekStartDate)
	if err != nil {
		return nil, err
	}
	if weekStart.Weekday() != time.Monday {
		return nil, domain.ErrWeekStartNotMonday
	}

	plan := &entities.MenuPlan{
		ID:            uuid.New(),
		WeekStartDate: weekStart,
		Name:          req.Name,
		CreatedBy:     creatorID,
		IsActive:      true,
	}

	meals, err := s.buildMeals(ctx, plan.ID, req.Meals)
	if err != nil {
		return nil, err
	}

	if err := s.menuPlanRepository.CreatePlan(ctx, plan, meals); err != nil {
		return nil, err
	}
	return s.GetPlan(ctx, plan.ID.String())
}

func (s *menuPlanService) GetPlans(ctx context.Context, activeOnly bool) ([]domain.MenuPlanResponse, error) {
	plans, err := s.menuPlanRepository.GetPlans(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.MenuPlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, toMenuPlanResponse(plan))
	}
	return responses, nil
}

func (s *menuPlanService) GetPlan(ctx context.Context, planID string) (*domain.MenuPlanResponse, error) {
	plan, err := s.menuPlanRepository.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuPlanNotFound
		}
		return nil, err
	}
	res := toMenuPlanResponse(plan)
	return &res, nil
}

func (s *menuPlanService) UpdatePlan(ctx context.Context, planID string, req domain.UpdateMenuPlanRequest) (*domain.MenuPlanResponse, error) {
	plan, err := s.menuPlanRepository.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuPlanNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	plan.Meals = nil
	if err := s.menuPlanRepository.SavePlan(ctx, plan); err != nil {
		return nil, err
	}

	if req.Meals != nil {
		meals, err := s.buildMeals(ctx, plan.ID, req.Meals)
		if err != nil {
			return nil, err
		}
		if err := s.menuPlanRepository.ReplaceMeals(ctx, planID, meals); err != nil {
			return nil, err
		}
	}
	return s.GetPlan(ctx, planID)
}

func (s *menuPlanService) DeletePlan(ctx context.Context, planID string) error {
	if err := s.menuPlanRepository.DeletePlan(ctx, planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMenuPlanNotFound
		}
		return err
	}
	return nil
}

func (s *menuPlanService) AddMeal(ctx context.Context, planID string, req domain.PlannedMealInput) (*domain.PlannedMealResponse, error) {
	plan, err := s.menuPlanRepository.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuPlanNotFound
		}
		return nil, err
	}

	meals, err := s.buildMeals(ctx, plan.ID, []domain.PlannedMealInput{req})
	if err != nil {
		return nil, err
	}
	if err := s.menuPlanRepository.AddMeal(ctx, meals[0]); err != nil {
		return nil, err
	}

	meal, err := s.menuPlanRepository.GetMealByID(ctx, meals[0].ID.String())
	if err != nil {
		return nil, err
	}
	res := toPlannedMealResponse(meal)
	return &res, nil
}

func (s *menuPlanService) RemoveMeal(ctx context.Context, mealID string) error {
	if err := s.menuPlanRepository.DeleteMeal(ctx, mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPlannedMealNotFound
		}
		return err
	}
	return nil
}

// MarkMealCooked flips a planned meal to cooked, bumps the recipe's cooking
// stats and deducts the current version's required ingredients from
// inventory, all in one transaction. Calling it again for the same meal does
// nothing and reports inventory_updated=false.
func (s *menuPlanService) MarkMealCooked(ctx context.Context, mealID string, userID string) (*domain.MarkCookedResponse, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	meal, err := s.menuPlanRepository.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlannedMealNotFound
		}
		return nil, err
	}
	if meal.Recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}

	version, err := s.recipeRepository.GetVersion(ctx, meal.RecipeID.String(), meal.Recipe.CurrentVersion)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	changes := make([]domain.InventoryChange, 0)
	updated := false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.PlannedMeal{}).
			Where("id = ? AND cooked = ?", meal.ID, false).
			Updates(map[string]interface{}{
				"cooked":      true,
				"cooked_date": now,
				"cooked_by":   actorID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already cooked, leave inventory and stats alone
			return nil
		}
		updated = true

		scale := decimal.NewFromInt(1)
		if version.Servings > 0 && meal.ServingsPlanned > 0 {
			scale = decimal.NewFromInt(int64(meal.ServingsPlanned)).
				Div(decimal.NewFromInt(int64(version.Servings)))
		}

		reason := fmt.Sprintf("Used for %s", meal.Recipe.Title)
		for _, ing := range version.Ingredients {
			if ing.IsOptional {
				continue
			}
			change, err := inventory.DeductTx(tx, ing.Name, ing.Quantity.Mul(scale), reason, &meal.RecipeID, &actorID)
			if err != nil {
				return err
			}
			if change != nil {
				changes = append(changes, *change)
			}
		}

		return tx.Model(&entities.Recipe{}).
			Where("id = ?", meal.RecipeID).
			Updates(map[string]interface{}{
				"times_cooked":     gorm.Expr("times_cooked + 1"),
				"last_cooked_date": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	fresh, err := s.menuPlanRepository.GetMealByID(ctx, mealID)
	if err != nil {
		return nil, err
	}
	return &domain.MarkCookedResponse{
		Meal:             toPlannedMealResponse(fresh),
		InventoryUpdated: updated,
		InventoryChanges: changes,
	}, nil
}

func (s *menuPlanService) buildMeals(ctx context.Context, planID uuid.UUID, inputs []domain.PlannedMealInput) ([]*entities.PlannedMeal, error) {
	meals := make([]*entities.PlannedMeal, 0, len(inputs))
	for _, input := range inputs {
		recipeID, err := uuid.Parse(input.RecipeID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		if _, err := s.recipeRepository.GetActiveRecipeByID(ctx, input.RecipeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrRecipeNotFound
			}
			return nil, err
		}
		mealDate, err := time.Parse(dateLayout, input.MealDate)
		if err != nil {
			return nil, err
		}
		meals = append(meals, &entities.PlannedMeal{
			ID:              uuid.New(),
			MenuPlanID:      planID,
			RecipeID:        recipeID,
			MealDate:        mealDate,
			MealType:        input.MealType,
			ServingsPlanned: input.ServingsPlanned,
			Notes:           input.Notes,
		})
	}
	return meals, nil
}

func toMenuPlanResponse(plan *entities.MenuPlan) domain.MenuPlanResponse {
	meals := make([]domain.PlannedMealResponse, 0, len(plan.Meals))
	for _, meal := range plan.Meals {
		meals = append(meals, toPlannedMealResponse(meal))
	}
	return domain.MenuPlanResponse{
		ID:            plan.ID.String(),
		WeekStartDate: plan.WeekStartDate.Format(dateLayout),
		Name:          plan.Name,
		IsActive:      plan.IsActive,
		Meals:         meals,
	}
}

func toPlannedMealResponse(meal *entities.PlannedMeal) domain.PlannedMealResponse {
	res := domain.PlannedMealResponse{
		ID:              meal.ID.String(),
		RecipeID:        meal.RecipeID.String(),
		MealDate:        meal.MealDate.Format(dateLayout),
		MealType:        meal.MealType,
		ServingsPlanned: meal.ServingsPlanned,
		Notes:           meal.Notes,
		Cooked:          meal.Cooked,
		CookedDate:      meal.CookedDate,
	}
	if meal.Recipe != nil {
		res.RecipeTitle = meal.Recipe.Title
	}
	return res
}
