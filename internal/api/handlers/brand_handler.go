package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"go.uber.org/zap"
)

const maxLogoSize = 5 << 20

type BrandHandler struct {
	s service.MarketplaceService
}

func NewBrandHandler(service service.MarketplaceService) *BrandHandler {
	return &BrandHandler{s: service}
}

func (h *BrandHandler) Register(c *fiber.Ctx) error {
	var req transfer.BrandRegistration
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	brand, err := h.s.RegisterBrand(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": brand})
}

func (h *BrandHandler) Get(c *fiber.Ctx) error {
	brand, err := h.s.GetBrand(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": brand})
}

func (h *BrandHandler) UploadLogo(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file selected")
	}
	if header.Size > maxLogoSize {
		return badRequest(c, "Logo must be 5 MB or smaller")
	}

	file, err := header.Open()
	if err != nil {
		zap.L().Info("error opening logo upload", zap.Error(err))
		return badRequest(c, "Unable to read file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Unable to read file")
	}

	url, err := h.s.UploadLogo(c.Context(), GetUserID(c), content)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "url": url})
}

func (h *BrandHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.s.ListCampaigns(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": campaigns})
}

func (h *BrandHandler) CreateCampaign(c *fiber.Ctx) error {
	var req transfer.CampaignCreation
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	campaign, err := h.s.CreateCampaign(c.Context(), GetUserID(c), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": campaign})
}

func (h *BrandHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.s.GetCampaign(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": campaign})
}

func (h *BrandHandler) UpdateCampaign(c *fiber.Ctx) error {
	var update models.CampaignUpdate
	if err := c.BodyParser(&update); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	campaign, err := h.s.UpdateCampaign(c.Context(), GetUserID(c), c.Params("id"), &update)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": campaign})
}

func (h *BrandHandler) DecideApplication(c *fiber.Ctx) error {
	var req transfer.ApplicationDecision
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	app, err := h.s.DecideApplication(c.Context(), GetUserID(c), c.Params("id"), req.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": app})
}
