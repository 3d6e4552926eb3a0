package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestRequestContextSetsID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		if c.Locals(RequestIDKey) == nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		if _, ok := c.UserContext().Deadline(); !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK || resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatalf("status=%d id=%q", resp.StatusCode, resp.Header.Get(fiber.HeaderXRequestID))
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "abc-123" {
		t.Fatalf("incoming id not echoed: %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RecoveryMiddleware())
	app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestWriteRateLimiterSkipsReads(t *testing.T) {
	app := fiber.New()
	app.Use(WriteRateLimiter())
	app.All("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 40; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %d limited", i)
		}
	}

	limited := false
	for i := 0; i < 31; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode == fiber.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Fatal("31 writes within a minute must hit the limit")
	}
}
