package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/metrics"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// ルート登録に必要なhandler一式
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
}

// New はechoを組み立てて全ルートを登録する。
func New(cfg config.Config, logger zerolog.Logger, m *metrics.ServerMetrics, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics(m))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	h.Auth.RegisterRoutes(e)
	h.User.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)

	return e
}

// Start はサーバーを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
