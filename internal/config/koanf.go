package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var defaults = map[string]interface{}{
	"GO_SERVER":          ":8080",
	"LOG_LEVEL":          "info",
	"APP_URL":            "http://localhost:8080",
	"MINIO_BUCKET_NAME":  "socialmedia",
	"POSTGRES_MAX_CONNS": 20,
	"POSTGRES_MIN_CONNS": 5,
	"KAFKA_POST_TOPIC":   "post-events",
	"RATE_LIMIT_MAX":     100,
	"IMAGE_QUALITY":      80,
	"IMAGE_MAX_WIDTH":    1080,
	"IMAGE_MAX_HEIGHT":   1350,
}

// NewKoanf loads envFile if present, then the process environment on top.
// Keys missing from both take their default.
func NewKoanf(log *zap.Logger, envFile string) *koanf.Koanf {
	k := koanf.New(".")

	err := k.Load(file.Provider(envFile), dotenv.Parser())
	if err != nil {
		log.Debug("env file not found, using environment variables", zap.String("file", envFile), zap.Error(err))
	}

	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, value)
		}
	}

	return k
}
