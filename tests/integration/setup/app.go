package setup

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	TestBucketName = "socialmedia-test"
	TestJWTSecret  = "test-secret-key-for-jwt-token-generation"
)

type TestApp struct {
	App   *fiber.App
	DB    *pgxpool.Pool
	Redis *redis.Client
	MinIO *minio.Client
}

// SetupTestApp wires the application the way the serve command does, against
// the test containers. Kafka and image encoding are left out.
func SetupTestApp(t *testing.T, infra *TestInfra) *TestApp {
	t.Log("Setting up test application...")

	ctx := context.Background()

	smtpHost, smtpPortStr, found := strings.Cut(infra.MailhogSMTP, ":")
	require.True(t, found, "mailhog SMTP address should be host:port")
	smtpPort, err := strconv.Atoi(smtpPortStr)
	require.NoError(t, err)

	testConfig := koanf.New(".")
	for key, value := range map[string]interface{}{
		"APP_URL":           "http://localhost:8080",
		"JWT_SECRET_KEY":    TestJWTSecret,
		"MINIO_BUCKET_NAME": TestBucketName,
		"SMTP_HOST":         smtpHost,
		"SMTP_PORT":         smtpPort,
		"SENDER_NAME":       "SocialMedia Test",
		"SENDER_EMAIL":      "noreply@socialmedia.test",
		"SENDER_PASSWORD":   "",
	} {
		require.NoError(t, testConfig.Set(key, value))
	}

	dbPool, err := pgxpool.New(ctx, infra.PgURL)
	require.NoError(t, err, "failed to connect to test postgres")
	t.Cleanup(dbPool.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: infra.RedisURL})
	require.NoError(t, redisClient.Ping(ctx).Err(), "failed to connect to test redis")
	t.Cleanup(func() { _ = redisClient.Close() })

	minioClient, err := minio.New(infra.MinioURL, &minio.Options{
		Creds:  credentials.NewStaticV4(MinioAccessKey, MinioSecretKey, ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create minio client")

	exists, err := minioClient.BucketExists(ctx, TestBucketName)
	require.NoError(t, err, "failed to check minio bucket")
	if !exists {
		err = minioClient.MakeBucket(ctx, TestBucketName, minio.MakeBucketOptions{})
		require.NoError(t, err, "failed to create minio bucket")
	}

	log := zap.NewExample()

	app := config.NewFiber(log)
	config.Server(&config.ServerConfig{
		Router:  app,
		DB:      dbPool,
		DBCache: redisClient,
		Log:     log,
		Config:  testConfig,
		MinIO:   minioClient,
	})

	return &TestApp{
		App:   app,
		DB:    dbPool,
		Redis: redisClient,
		MinIO: minioClient,
	}
}
