package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mealplanner/domain"
	"mealplanner/internal/api/presenters"
	"mealplanner/pkg/menuplan"
	"mealplanner/pkg/shoppinglist"
)

type (
	MenuPlanHandler interface {
		CreatePlan(c *fiber.Ctx) error
		GetPlans(c *fiber.Ctx) error
		GetPlanDetails(c *fiber.Ctx) error
		UpdatePlan(c *fiber.Ctx) error
		DeletePlan(c *fiber.Ctx) error
		AddMeal(c *fiber.Ctx) error
		RemoveMeal(c *fiber.Ctx) error
		MarkMealCooked(c *fiber.Ctx) error
		GetShoppingList(c *fiber.Ctx) error
		MarkPurchased(c *fiber.Ctx) error
	}

	menuPlanHandler struct {
		menuPlanService     menuplan.MenuPlanService
		shoppingListService shoppinglist.ShoppingListService
		validator           *validator.Validate
	}
)

func NewMenuPlanHandler(menuPlanService menuplan.MenuPlanService, shoppingListService shoppinglist.ShoppingListService, validator *validator.Validate) MenuPlanHandler {
	return &menuPlanHandler{
		menuPlanService:     menuPlanService,
		shoppingListService: shoppingListService,
		validator:           validator,
	}
}

func (h *menuPlanHandler) CreatePlan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateMenuPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePlan, err)
	}

	res, err := h.menuPlanService.CreatePlan(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePlan)
}

func (h *menuPlanHandler) GetPlans(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active")

	plans, err := h.menuPlanService.GetPlans(c.Context(), activeOnly)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPlans, err)
	}

	return presenters.SuccessResponse(c, plans, fiber.StatusOK, domain.MessageSuccessGetPlans)
}

func (h *menuPlanHandler) GetPlanDetails(c *fiber.Ctx) error {
	planID := c.Params("id")

	res, err := h.menuPlanService.GetPlan(c.Context(), planID)
	if err != nil {
		if errors.Is(err, domain.ErrMenuPlanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPlans, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPlans, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPlans)
}

func (h *menuPlanHandler) UpdatePlan(c *fiber.Ctx) error {
	planID := c.Params("id")
	req := new(domain.UpdateMenuPlanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePlan, err)
	}

	res, err := h.menuPlanService.UpdatePlan(c.Context(), planID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrMenuPlanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdatePlan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePlan)
}

func (h *menuPlanHandler) DeletePlan(c *fiber.Ctx) error {
	planID := c.Params("id")

	if err := h.menuPlanService.DeletePlan(c.Context(), planID); err != nil {
		if errors.Is(err, domain.ErrMenuPlanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeletePlan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePlan)
}

func (h *menuPlanHandler) AddMeal(c *fiber.Ctx) error {
	planID := c.Params("id")
	req := new(domain.PlannedMealInput)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMeal, err)
	}

	res, err := h.menuPlanService.AddMeal(c.Context(), planID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrMenuPlanNotFound) || errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAddMeal, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMeal)
}

func (h *menuPlanHandler) RemoveMeal(c *fiber.Ctx) error {
	mealID := c.Params("meal_id")

	if err := h.menuPlanService.RemoveMeal(c.Context(), mealID); err != nil {
		if errors.Is(err, domain.ErrPlannedMealNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedRemoveMeal, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveMeal, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveMeal)
}

func (h *menuPlanHandler) MarkMealCooked(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	mealID := c.Params("meal_id")

	res, err := h.menuPlanService.MarkMealCooked(c.Context(), mealID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPlannedMealNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedMarkCooked, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkCooked, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMarkCooked)
}

func (h *menuPlanHandler) GetShoppingList(c *fiber.Ctx) error {
	planID := c.Params("id")

	res, err := h.shoppingListService.GenerateList(c.Context(), planID)
	if err != nil {
		if errors.Is(err, domain.ErrMenuPlanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGenerateList, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGenerateList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGenerateList)
}

func (h *menuPlanHandler) MarkPurchased(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MarkPurchasedRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkPurchased, err)
	}

	item, err := h.shoppingListService.MarkPurchased(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkPurchased, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessMarkPurchased)
}
