package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
	"github.com/maheshrc27/cominiti-api/pkg/utils"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.AuthService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	state, err := utils.GenerateRandomKey(24)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   600,
	})
	return c.Redirect(h.s.LoginURL(state))
}

func (h *AuthHandler) LoginCallbackHandler(c *fiber.Ctx) error {
	state := c.Cookies(oauthStateCookie)
	clearCookie(c, oauthStateCookie)
	if state == "" || c.Query("state") != state {
		return badRequest(c, "Invalid OAuth state")
	}

	userID, err := h.s.LoginCallback(c.Context(), c.Query("code"))
	if err != nil {
		zap.L().Info("google login failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	if err := h.setSession(c, userID); err != nil {
		return err
	}
	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var creds transfer.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	user, err := h.s.SignUp(c.Context(), &creds)
	if err != nil {
		return errorResponse(c, err)
	}
	if err := h.setSession(c, user.ID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var creds transfer.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	user, err := h.s.SignIn(c.Context(), &creds)
	if err != nil {
		return errorResponse(c, err)
	}
	if err := h.setSession(c, user.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearCookie(c, h.cfg.CookieName)
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) setSession(c *fiber.Ctx, userID string) error {
	token, err := utils.GenerateToken(h.cfg.SecretKey, userID, sessionTTL)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
	})
	return nil
}
