package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Time pins one timestamp per request so the submission window and
// voting deadline checks all agree on "now".
func Time(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, span := tracer.Start(c.Request().Context(), "Time", trace.WithAttributes(
				attribute.String("key", key),
			))
			defer span.End()

			now := time.Now().UTC()
			c.Set(key, now)

			span.SetAttributes(attribute.String("time", now.Format(time.RFC3339Nano)))
			span.SetStatus(codes.Ok, "pinned request time")
			return next(c)
		}
	}
}
