package route

import (
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/graphql"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/http"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App                *fiber.App
	Log                *zap.Logger
	AuthMiddleware     *middleware.AuthMiddleware
	AccountController  *http.AccountController
	PostController     *http.PostController
	FollowerController *http.FollowerController
	GraphQLHandler     *graphql.Handler
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	accountGroup := api.Group("/account")
	accountGroup.Post("/register", middleware.SetupAuthRateLimiter(c.Log), c.AccountController.Register)
	accountGroup.Get("/confirm-email", c.AccountController.ConfirmEmail)
	accountGroup.Post("/login", middleware.SetupAuthRateLimiter(c.Log), c.AccountController.Login)
	accountGroup.Post("/logout", c.AuthMiddleware.ProtectedRoute(), c.AccountController.Logout)

	postGroup := api.Group("/posts", c.AuthMiddleware.ProtectedRoute())
	postGroup.Get("/", c.PostController.GetRelevantPosts)
	postGroup.Get("/content/:fileName", c.PostController.GetPostContent)
	postGroup.Get("/:postId", c.PostController.GetPost)
	postGroup.Post("/", c.PostController.CreatePost)
	postGroup.Put("/:postId", c.PostController.UpdatePost)
	postGroup.Delete("/:postId", c.PostController.DeletePost)

	followerGroup := api.Group("/followers", c.AuthMiddleware.ProtectedRoute())
	followerGroup.Get("/", c.FollowerController.GetFollowers)
	followerGroup.Get("/:userId", c.FollowerController.GetFollower)

	followingGroup := api.Group("/following", c.AuthMiddleware.ProtectedRoute())
	followingGroup.Get("/", c.FollowerController.GetFollowing)
	followingGroup.Get("/:userId", c.FollowerController.GetFollowee)
	followingGroup.Post("/:userId", c.FollowerController.Follow)
	followingGroup.Delete("/:userId", c.FollowerController.Unfollow)

	api.Post("/graphql", c.AuthMiddleware.ProtectedRoute(), c.GraphQLHandler.Serve)
}
