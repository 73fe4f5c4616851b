package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger logs every request once it has been handled. Classification
// failures come back as 4xx and are logged as warnings.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()

		level := zerolog.InfoLevel
		switch {
		case err != nil || code >= fiber.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case code >= fiber.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		log.WithLevel(level).
			Int("status", code).
			Str("method", c.Method()).
			Str("url", c.OriginalURL()).
			Str("ip", c.IP()).
			Dur("latency", time.Since(startTime)).
			Str("user-agent", c.Get(fiber.HeaderUserAgent)).
			Msg(msg)

		return err
	}
}
