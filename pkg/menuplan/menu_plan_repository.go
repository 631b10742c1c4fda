package menuplan

import (
	"context"

	"gorm.io/gorm"

	"mealplanner/entities"
)

type (
	MenuPlanRepository interface {
		CreatePlan(ctx context.Context, plan *entities.MenuPlan, meals []*entities.PlannedMeal) error
		GetPlanByID(ctx context.Context, id string) (*entities.MenuPlan, error)
		GetPlans(ctx context.Context, activeOnly bool) ([]*entities.MenuPlan, error)
		SavePlan(ctx context.Context, plan *entities.MenuPlan) error
		ReplaceMeals(ctx context.Context, planID string, meals []*entities.PlannedMeal) error
		DeletePlan(ctx context.Context, id string) error
		AddMeal(ctx context.Context, meal *entities.PlannedMeal) error
		GetMealByID(ctx context.Context, id string) (*entities.PlannedMeal, error)
		GetUncookedMeals(ctx context.Context, planID string) ([]*entities.PlannedMeal, error)
		DeleteMeal(ctx context.Context, id string) error
	}

	menuPlanRepository struct {
		db *gorm.DB
	}
)

func NewMenuPlanRepository(db *gorm.DB) MenuPlanRepository {
	return &menuPlanRepository{db: db}
}

func (r *menuPlanRepository) CreatePlan(ctx context.Context, plan *entities.MenuPlan, meals []*entities.PlannedMeal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		if len(meals) > 0 {
			if err := tx.Create(meals).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *menuPlanRepository) GetPlanByID(ctx context.Context, id string) (*entities.MenuPlan, error) {
	var plan entities.MenuPlan
	if err := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("planned_meals.meal_date asc")
		}).
		Preload("Meals.Recipe").
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *menuPlanRepository) GetPlans(ctx context.Context, activeOnly bool) ([]*entities.MenuPlan, error) {
	var plans []*entities.MenuPlan
	query := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("planned_meals.meal_date asc")
		}).
		Preload("Meals.Recipe").
		Order("week_start_date desc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *menuPlanRepository) SavePlan(ctx context.Context, plan *entities.MenuPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// ReplaceMeals swaps the full meal set of a plan. Cooked meals are replaced
// along with the rest; callers decide whether that is acceptable.
func (r *menuPlanRepository) ReplaceMeals(ctx context.Context, planID string, meals []*entities.PlannedMeal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_plan_id = ?", planID).Delete(&entities.PlannedMeal{}).Error; err != nil {
			return err
		}
		if len(meals) > 0 {
			if err := tx.Create(meals).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *menuPlanRepository) DeletePlan(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_plan_id = ?", id).Delete(&entities.PlannedMeal{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.MenuPlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *menuPlanRepository) AddMeal(ctx context.Context, meal *entities.PlannedMeal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *menuPlanRepository) GetMealByID(ctx context.Context, id string) (*entities.PlannedMeal, error) {
	var meal entities.PlannedMeal
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("id = ?", id).
		First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *menuPlanRepository) GetUncookedMeals(ctx context.Context, planID string) ([]*entities.PlannedMeal, error) {
	var meals []*entities.PlannedMeal
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("menu_plan_id = ? AND cooked = ?", planID, false).
		Order("meal_date asc").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *menuPlanRepository) DeleteMeal(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PlannedMeal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
