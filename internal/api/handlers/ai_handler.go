package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
)

type AIHandler struct {
	s service.AIService
}

func NewAIHandler(service service.AIService) *AIHandler {
	return &AIHandler{s: service}
}

func (h *AIHandler) GenerateContract(c *fiber.Ctx) error {
	var req transfer.ContractRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	contract, err := h.s.GenerateContract(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponseWith(c, err, "Failed to generate contract")
	}
	return c.JSON(fiber.Map{"success": true, "data": contract})
}

func (h *AIHandler) GenerateEmail(c *fiber.Ctx) error {
	var req transfer.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	email, err := h.s.GenerateEmail(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponseWith(c, err, "Failed to generate email")
	}
	return c.JSON(fiber.Map{"success": true, "data": email})
}

func (h *AIHandler) EstimateRate(c *fiber.Ctx) error {
	var req transfer.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	result, err := h.s.EstimateRate(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponseWith(c, err, "Failed to estimate rate")
	}

	var usage any = "unlimited"
	if result.Usage != nil {
		usage = *result.Usage
	}
	return c.JSON(fiber.Map{"success": true, "data": result.Estimate, "usage": usage})
}

func (h *AIHandler) GeneratePortfolio(c *fiber.Ctx) error {
	var req transfer.PortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	result, err := h.s.GeneratePortfolio(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponseWith(c, err, "Failed to generate portfolio")
	}
	return c.JSON(fiber.Map{
		"success":          true,
		"data":             result.Design,
		"remainingCredits": result.RemainingCredits,
	})
}
