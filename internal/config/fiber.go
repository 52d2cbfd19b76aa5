package config

import (
	"encoding/base64"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/constant"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/exception"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MaxBodySize fits a base64 encoded file of the largest accepted size, as
// GraphQL uploads carry it, plus room for the other fields.
var MaxBodySize = base64.StdEncoding.EncodedLen(constant.MAX_FILE_SIZE) + 1024*1024

func NewFiber(log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               false,
		AppName:               "socialmedia-api",
		BodyLimit:             MaxBodySize,
		ReadBufferSize:        4096,
		WriteBufferSize:       4096,
		Concurrency:           256 * 1024,
		IdleTimeout:           30 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableKeepalive:      false,
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          exception.ErrorHandler(log),
	})

	return app
}
