package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/maheshrc27/cominiti-api/internal/api/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Instagram *handlers.InstagramHandler
	User      *handlers.UserHandler
	ApiKeys   *handlers.ApiKeyHandler
	AI        *handlers.AIHandler
	Card      *handlers.CardHandler
	Brand     *handlers.BrandHandler
	Creator   *handlers.CreatorHandler
}

func RegisterRoutes(app *fiber.App, auth fiber.Handler, h Handlers) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/login", h.Auth.Login)
	app.Get("/login/callback", h.Auth.LoginCallbackHandler)
	app.Post("/auth/signup", h.Auth.SignUp)
	app.Post("/auth/signin", h.Auth.SignIn)
	app.Post("/auth/logout", h.Auth.Logout)

	app.Get("/auth/instagram", h.Instagram.Authorize)
	app.Get("/auth/instagram/callback", h.Instagram.Callback)

	api := app.Group("/api")
	api.Use(auth)

	api.Get("/user/info", h.User.GetUserInfo)
	api.Get("/user/profile", h.User.GetProfile)

	api.Post("/api_key/new", h.ApiKeys.CreateApiKey)
	api.Get("/api_key/list", h.ApiKeys.ListKeys)
	api.Post("/api_key/remove", h.ApiKeys.RemoveAPIKey)

	api.Get("/instagram/connect-token", h.Instagram.ConnectToken)
	api.Post("/instagram/sync", h.Instagram.Sync)
	api.Get("/instagram/posts", h.Instagram.ListPosts)
	api.Post("/instagram/posts/:id/visibility", h.Instagram.SetVisibility)

	api.Post("/ai/contract-generator", h.AI.GenerateContract)
	api.Post("/ai/email-generator", h.AI.GenerateEmail)
	api.Post("/ai/rate-estimator", h.AI.EstimateRate)
	api.Post("/generate-portfolio", h.AI.GeneratePortfolio)

	api.Post("/orders/creator-card", h.Card.OrderCreatorCard)

	api.Get("/brands/register", h.Brand.Get)
	api.Post("/brands/register", h.Brand.Register)
	api.Post("/brands/logo", h.Brand.UploadLogo)
	api.Get("/brands/campaigns", h.Brand.ListCampaigns)
	api.Post("/brands/campaigns", h.Brand.CreateCampaign)
	api.Get("/brands/campaigns/:id", h.Brand.GetCampaign)
	api.Patch("/brands/campaigns/:id", h.Brand.UpdateCampaign)
	api.Patch("/brands/applications/:id", h.Brand.DecideApplication)

	api.Post("/creators/apply", h.Creator.Apply)
	api.Get("/creators/apply", h.Creator.ListApplications)
	api.Get("/creators/campaigns", h.Creator.BrowseCampaigns)
}
