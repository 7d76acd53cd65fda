package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
)

type CardHandler struct {
	s service.CardService
}

func NewCardHandler(service service.CardService) *CardHandler {
	return &CardHandler{s: service}
}

func (h *CardHandler) OrderCreatorCard(c *fiber.Ctx) error {
	var req transfer.CardOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	order, err := h.s.Order(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(order)
}
