package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := newRateLimiter(rate.Limit(1), 1)

	client := limiter.GetLimiterFrom("10.0.0.1")
	require.True(t, client.Allow())
	assert.False(t, client.Allow())
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	limiter := newRateLimiter(rate.Limit(1), 1)

	require.True(t, limiter.GetLimiterFrom("10.0.0.1").Allow())
	assert.True(t, limiter.GetLimiterFrom("10.0.0.2").Allow())
	assert.Same(t, limiter.GetLimiterFrom("10.0.0.1"), limiter.GetLimiterFrom("10.0.0.1"))
}

func TestRateLimitMiddlewareRejectsExcessRequests(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := &middleware{
		rateLimitter: newRateLimiter(rate.Limit(1), 1),
		log:          logger,
	}

	app := fiber.New()
	app.Use(m.NewRateLimiter)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
