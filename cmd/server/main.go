package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/damacus/bucket-index/internal/app"
	"github.com/damacus/bucket-index/internal/config"
	"github.com/damacus/bucket-index/internal/logger"
	customMiddleware "github.com/damacus/bucket-index/internal/middleware"
)

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	configFile, _ := flags.GetString("config")

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := app.NewLogger(cfg.Log)
	a, err := app.New(cfg, log)
	if err != nil {
		log.ErrorWith("failed to create object lister", err, nil)
		os.Exit(1)
	}

	e := newServer(a)

	log.Infof("listening on %s", a.Config.Server.Listen)
	if err := e.Start(a.Config.Server.Listen); err != nil && err != http.ErrServerClosed {
		log.ErrorWith("server stopped", err, nil)
		os.Exit(1)
	}
}

func newServer(a *app.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(a.Log)))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Everything else is a path inside the published root.
	e.GET("/*", a.Handler.Browse)

	return e
}

func requestLoggerConfig(log *logger.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.HTTPEvent()
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}
}
