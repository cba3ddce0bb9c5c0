package api

import (
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/vidshare/platform/docs"
	"github.com/vidshare/platform/internal/api/handler"
	"github.com/vidshare/platform/internal/api/middleware"
	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

// multipartOverhead is allowed on top of the upload limit for form fields
// and part headers.
const multipartOverhead = 1 << 20

const logoutPath = "/api/logout"

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Videos   ports.VideoService
	Comments ports.CommentService
	Admin    ports.AdminService

	// Health lists the readiness checks behind /health/ready.
	Health []handler.Dependency

	Log zerolog.Logger
	// MediaDir, when set, is served under /media.
	MediaDir        string
	MaxUploadBytes  int64
	LoginRatePerSec float64
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("vidshare"))
	// Logout resolves its token leniently so that repeating it succeeds.
	e.Use(middleware.AuthWithConfig(middleware.AuthConfig{
		Verifier: d.Auth,
		Skipper:  func(c echo.Context) bool { return c.Path() == logoutPath },
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	videoHandler := handler.NewVideoHandler(d.Videos)
	commentHandler := handler.NewCommentHandler(d.Comments)
	adminHandler := handler.NewAdminHandler(d.Admin)

	api := e.Group("/api")

	// --- Auth routes ---
	limiter := loginLimiter(d.LoginRatePerSec)
	api.POST("/register", authHandler.Register, limiter)
	api.POST("/login", authHandler.Login, limiter)
	api.POST("/logout", authHandler.Logout, middleware.AuthWithConfig(middleware.AuthConfig{
		Verifier: d.Auth,
		Lenient:  true,
	}))

	// --- Users ---
	api.GET("/users", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	api.GET("/user/:id", userHandler.Get)
	api.GET("/user/:id/videos", userHandler.Videos)
	api.PUT("/user/:id", userHandler.Update, middleware.RequireAuth())
	api.DELETE("/user/:id", userHandler.Delete, middleware.RequireAuth())
	api.PUT("/user/:id/role", userHandler.SetRole, middleware.RequireAuth())

	// --- Videos ---
	upload := []echo.MiddlewareFunc{middleware.RequireAuth()}
	if d.MaxUploadBytes > 0 {
		upload = append(upload, echomiddleware.BodyLimit(strconv.FormatInt(d.MaxUploadBytes+multipartOverhead, 10)))
	}
	api.POST("/upload", videoHandler.Upload, upload...)
	api.GET("/videos", videoHandler.Latest)
	api.GET("/videos/trending", videoHandler.Trending)
	api.GET("/videos/search", videoHandler.Search)
	api.GET("/library", videoHandler.Library, middleware.RequireAuth())
	api.GET("/video/:id", videoHandler.Get)
	api.PUT("/video/:id", videoHandler.Update, middleware.RequireAuth())
	api.DELETE("/video/:id", videoHandler.Delete, middleware.RequireAuth())
	api.PUT("/video/:id/code", videoHandler.AttachCode, middleware.RequireAuth())

	// --- Comments (posting is open to anonymous callers) ---
	api.POST("/video/:id/comment", commentHandler.Post)
	api.PUT("/comment/:id", commentHandler.Update, middleware.RequireAuth())
	api.DELETE("/comment/:id", commentHandler.Delete, middleware.RequireAuth())

	// --- Admin ---
	admin := api.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/overview", adminHandler.Overview)
	admin.GET("/videos", adminHandler.Videos)
	admin.GET("/comments", adminHandler.Comments)

	// --- Media ---
	if d.MediaDir != "" {
		e.Static("/media", d.MediaDir)
	}

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// loginLimiter throttles credential endpoints per client IP.
func loginLimiter(perSec float64) echo.MiddlewareFunc {
	if perSec <= 0 {
		perSec = 5
	}
	store := echomiddleware.NewRateLimiterMemoryStore(rate.Limit(perSec))
	return echomiddleware.RateLimiter(store)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
