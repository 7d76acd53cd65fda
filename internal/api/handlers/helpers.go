package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

const internalErrorMessage = "Internal server error"

// errorResponse maps service errors to the JSON error body and status the
// front-end expects.
func errorResponse(c *fiber.Ctx, err error) error {
	return errorResponseWith(c, err, internalErrorMessage)
}

// errorResponseWith is errorResponse with the message used for unclassified
// failures. Their detail only goes to the log.
func errorResponseWith(c *fiber.Ctx, err error, fallback string) error {
	var denied *service.DeniedError
	if errors.As(err, &denied) {
		body := fiber.Map{"error": denied.Reason}
		if denied.Upgrade {
			body["upgradeRequired"] = true
		}
		for k, v := range denied.Details {
			body[k] = v
		}
		return c.Status(fiber.StatusForbidden).JSON(body)
	}

	var failure *service.FailedError
	status := fiber.StatusInternalServerError
	var message string
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		status = fiber.StatusUnauthorized
		message = "Not authenticated"
	case errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, service.ErrInvalidRequest):
		status = fiber.StatusBadRequest
		message = detail(err, service.ErrInvalidRequest)
	case errors.Is(err, service.ErrNotLinked):
		status = fiber.StatusBadRequest
		message = "Instagram not connected"
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
		message = detail(err, service.ErrNotFound)
	case errors.Is(err, service.ErrConflict):
		status = fiber.StatusConflict
		message = detail(err, service.ErrConflict)
	case errors.As(err, &failure):
		zap.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		message = failure.Message
	default:
		zap.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		message = fallback
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// clearCookie expires a cookie set at the root path.
func clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
		Expires:  time.Unix(0, 0),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
