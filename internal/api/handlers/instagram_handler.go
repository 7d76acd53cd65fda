package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"go.uber.org/zap"
)

const (
	instagramUserCookie = "instagram_oauth_user"
	callbackPath        = "/auth/instagram/callback"
)

type InstagramHandler struct {
	ig  service.InstagramService
	cfg config.Config
}

func NewInstagramHandler(ig service.InstagramService, cfg config.Config) *InstagramHandler {
	return &InstagramHandler{ig: ig, cfg: cfg}
}

func (h *InstagramHandler) ConnectToken(c *fiber.Ctx) error {
	token, err := h.ig.ConnectToken(GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(token)
}

// Authorize sends the browser to Instagram. The correlation token travels in
// state and, as a fallback, in a short-lived cookie.
func (h *InstagramHandler) Authorize(c *fiber.Ctx) error {
	state := c.Query("state")
	authURL, err := h.ig.AuthURL(state, h.redirectURI(c))
	if err != nil {
		return badRequest(c, "Missing user correlation token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     instagramUserCookie,
		Value:    state,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
		MaxAge:   int(service.CorrelationTTL.Seconds()),
	})
	return c.Redirect(authURL, fiber.StatusFound)
}

func (h *InstagramHandler) Callback(c *fiber.Ctx) error {
	req := service.CallbackRequest{
		Code:        c.Query("code"),
		Error:       c.Query("error"),
		State:       c.Query("state"),
		CookieToken: c.Cookies(instagramUserCookie),
		RedirectURI: h.redirectURI(c),
	}
	clearCookie(c, instagramUserCookie)

	userID, err := h.ig.Callback(c.Context(), req)
	code := service.CallbackCode(err)
	if err != nil {
		zap.L().Info("instagram callback failed", zap.String("user_id", userID), zap.String("code", code), zap.Error(err))
		return c.Redirect(fmt.Sprintf("%s/dashboard?error=%s", h.cfg.FrontendURL, url.QueryEscape(code)), fiber.StatusFound)
	}
	return c.Redirect(fmt.Sprintf("%s/onboarding?instagram=%s", h.cfg.FrontendURL, code), fiber.StatusFound)
}

func (h *InstagramHandler) Sync(c *fiber.Ctx) error {
	result, err := h.ig.Sync(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponseWith(c, err, "Sync failed")
	}
	zap.L().Info("instagram sync finished", zap.String("user_id", GetUserID(c)), zap.Int("posts", result.PostsCount))
	return c.JSON(result)
}

func (h *InstagramHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.ig.ListPosts(c.Context(), GetUserID(c), c.QueryBool("include_hidden", false))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": posts})
}

func (h *InstagramHandler) SetVisibility(c *fiber.Ctx) error {
	var body transfer.VisibilityUpdate
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.ig.SetVisibility(c.Context(), GetUserID(c), c.Params("id"), body.Hidden); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "hidden": body.Hidden})
}

func (h *InstagramHandler) redirectURI(c *fiber.Ctx) string {
	if h.cfg.InstagramRedirectURI != "" {
		return h.cfg.InstagramRedirectURI
	}
	return c.BaseURL() + callbackPath
}
