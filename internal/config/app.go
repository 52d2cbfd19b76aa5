package config

import (
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/graphql"
	http "github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/http"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/http/middleware"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/http/route"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/repository"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/usecase"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/util"
	"github.com/minio/minio-go/v7"
	"github.com/segmentio/kafka-go"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	MinIO   *minio.Client
	// Kafka is nil when no broker is configured; post events are dropped.
	Kafka *kafka.Writer
	// Encoder is optional; without it uploads are stored as received.
	Encoder usecase.MediaEncoder
	// Mailer defaults to SMTP through gomail.
	Mailer usecase.Mailer
}

func Server(config *ServerConfig) {
	var eventRepository usecase.PostEventPublisher = repository.NoopPostEventRepository{}
	if config.Kafka != nil {
		eventRepository = repository.NewPostEventRepository(config.Log, config.Kafka)
	}

	mailer := config.Mailer
	if mailer == nil {
		mailer = util.NewGomailSender(
			config.Config.String("SMTP_HOST"),
			config.Config.Int("SMTP_PORT"),
			config.Config.String("SENDER_NAME"),
			config.Config.String("SENDER_EMAIL"),
			config.Config.String("SENDER_PASSWORD"),
		)
	}

	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	userUsecase := usecase.NewUserUsecase(userRepository, userRepository, mailer, config.Log, config.Config)
	accountController := http.NewAccountController(userUsecase, config.Log)

	postRepository := repository.NewPostRepository(config.Log, config.DB)
	blobRepository := repository.NewBlobRepository(config.Log, config.MinIO, config.Config.String("MINIO_BUCKET_NAME"))
	postUsecase := usecase.NewPostUsecase(postRepository, blobRepository, eventRepository, config.Encoder, config.Log)
	postController := http.NewPostController(postUsecase, config.Log)

	followerRepository := repository.NewFollowerRepository(config.Log, config.DB)
	followerUsecase := usecase.NewFollowerUsecase(followerRepository, userRepository, config.Log)
	followerController := http.NewFollowerController(followerUsecase, config.Log)

	graphQLHandler := graphql.NewHandler(graphql.NewResolver(postUsecase, followerUsecase, config.Log), config.Log)

	authMiddleware := middleware.NewAuthMiddleware(config.Log, userUsecase)

	routeConfig := route.RouteConfig{
		App:                config.Router,
		Log:                config.Log,
		AuthMiddleware:     authMiddleware,
		AccountController:  accountController,
		PostController:     postController,
		FollowerController: followerController,
		GraphQLHandler:     graphQLHandler,
	}

	routeConfig.SetupRoute()
}
