package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
)

type CreatorHandler struct {
	s service.MarketplaceService
}

func NewCreatorHandler(service service.MarketplaceService) *CreatorHandler {
	return &CreatorHandler{s: service}
}

func (h *CreatorHandler) Apply(c *fiber.Ctx) error {
	var req transfer.ApplicationSubmission
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	app, err := h.s.Apply(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": app})
}

func (h *CreatorHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.s.ListApplications(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": apps})
}

func (h *CreatorHandler) BrowseCampaigns(c *fiber.Ctx) error {
	filter := transfer.CampaignFilter{Niche: c.Query("niche")}
	if raw := c.Query("budgetMin"); raw != "" {
		budget, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "budgetMin must be a number")
		}
		filter.BudgetMin = &budget
	}

	campaigns, err := h.s.BrowseCampaigns(c.Context(), GetUserID(c), filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": campaigns})
}
