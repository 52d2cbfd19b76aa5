package setup

import (
	"context"
	"fmt"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MinioAccessKey = "minioadmin"
	MinioSecretKey = "minioadmin"
)

type TestInfra struct {
	Postgres *postgres.PostgresContainer
	Redis    *redis.RedisContainer
	MinIO    testcontainers.Container
	MailHog  testcontainers.Container

	PgURL       string
	RedisURL    string
	MinioURL    string
	MailhogURL  string
	MailhogSMTP string
}

// StartInfra starts postgres, redis, minio and mailhog. Call Terminate when done.
func StartInfra(ctx context.Context, t *testing.T) (*TestInfra, error) {
	t.Log("Starting test infrastructure...")

	infra := &TestInfra{}

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("socialmedia_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return infra, fmt.Errorf("failed to start postgres: %w", err)
	}
	infra.Postgres = pgContainer

	infra.PgURL, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return infra, fmt.Errorf("failed to get postgres connection string: %w", err)
	}

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections"),
		),
	)
	if err != nil {
		return infra, fmt.Errorf("failed to start redis: %w", err)
	}
	infra.Redis = redisContainer

	infra.RedisURL, err = endpoint(ctx, redisContainer, "6379")
	if err != nil {
		return infra, fmt.Errorf("failed to get redis endpoint: %w", err)
	}

	infra.MinIO, err = startGeneric(ctx, testcontainers.ContainerRequest{
		Image: "minio/minio:latest",
		Cmd:   []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     MinioAccessKey,
			"MINIO_ROOT_PASSWORD": MinioSecretKey,
		},
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor:   wait.ForListeningPort("9000/tcp"),
	})
	if err != nil {
		return infra, fmt.Errorf("failed to start minio: %w", err)
	}

	infra.MinioURL, err = endpoint(ctx, infra.MinIO, "9000")
	if err != nil {
		return infra, fmt.Errorf("failed to get minio endpoint: %w", err)
	}

	infra.MailHog, err = startGeneric(ctx, testcontainers.ContainerRequest{
		Image:        "mailhog/mailhog:latest",
		ExposedPorts: []string{"1025/tcp", "8025/tcp"},
		WaitingFor:   wait.ForListeningPort("1025/tcp"),
	})
	if err != nil {
		return infra, fmt.Errorf("failed to start mailhog: %w", err)
	}

	mailhogAPI, err := endpoint(ctx, infra.MailHog, "8025")
	if err != nil {
		return infra, fmt.Errorf("failed to get mailhog API endpoint: %w", err)
	}
	infra.MailhogURL = "http://" + mailhogAPI

	infra.MailhogSMTP, err = endpoint(ctx, infra.MailHog, "1025")
	if err != nil {
		return infra, fmt.Errorf("failed to get mailhog SMTP endpoint: %w", err)
	}

	t.Logf("Infrastructure ready: postgres=%s redis=%s minio=%s mailhog=%s", infra.PgURL, infra.RedisURL, infra.MinioURL, infra.MailhogURL)

	return infra, nil
}

func startGeneric(ctx context.Context, request testcontainers.ContainerRequest) (testcontainers.Container, error) {
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: request,
		Started:          true,
	})
}

func endpoint(ctx context.Context, container testcontainers.Container, port string) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}

	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}

func (infra *TestInfra) Terminate(ctx context.Context, t *testing.T) error {
	t.Log("Terminating test infrastructure...")

	containers := []testcontainers.Container{infra.MailHog, infra.MinIO}
	if infra.Redis != nil {
		containers = append(containers, infra.Redis)
	}
	if infra.Postgres != nil {
		containers = append(containers, infra.Postgres)
	}

	for _, container := range containers {
		if container == nil {
			continue
		}

		if err := container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}

	return nil
}
