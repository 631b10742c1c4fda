package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mealplanner/domain"
	"mealplanner/internal/api/presenters"
	"mealplanner/pkg/suggestion"
)

type (
	SuggestionHandler interface {
		GetSuggestions(c *fiber.Ctx) error
	}

	suggestionHandler struct {
		suggestionService suggestion.SuggestionService
		validator         *validator.Validate
	}
)

func NewSuggestionHandler(suggestionService suggestion.SuggestionService, validator *validator.Validate) SuggestionHandler {
	return &suggestionHandler{
		suggestionService: suggestionService,
		validator:         validator,
	}
}

func (h *suggestionHandler) GetSuggestions(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	req := domain.SuggestionRequest{
		Strategy: c.Query("strategy", domain.StrategyRotation),
		Limit:    limit,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, err)
	}

	suggestions, err := h.suggestionService.Suggest(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownStrategy) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"strategy":    req.Strategy,
		"suggestions": suggestions,
	}, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}
