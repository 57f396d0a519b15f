package middleware

import (
	"strconv"
	"time"

	"app/internal/metrics"

	"github.com/labstack/echo/v4"
)

// リクエスト数とレイテンシを記録する。pathはルートパターン（/cart/:id）でラベル化する。
func Metrics(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			method := c.Request().Method
			status := c.Response().Status

			m.Requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.Latency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
