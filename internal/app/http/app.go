package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	prommw "heritage_cms/internal/middleware"
	httprouters "heritage_cms/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
	token   string
}

func New(log *slog.Logger, token string, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(prommw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		log.Info("statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
		token:   token,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	api := s.e.Group("/api/v1")
	{
		// public surface
		api.POST("/auth/login", s.routers.Login)
		api.POST("/auth/refresh", s.routers.Refresh)
		api.POST("/contacts", s.routers.CreateContact)
		api.GET("/events", s.routers.ListEvents)
		api.GET("/events/:id", s.routers.GetEvent)
		api.GET("/galleries", s.routers.ListGalleries)
		api.GET("/galleries/:id/photos", s.routers.ListGalleryPhotos)
		api.GET("/reenactment/blocks", s.routers.ListReenactmentBlocks)
		api.GET("/reenactment/blocks/:id", s.routers.GetReenactmentBlock)
		api.GET("/reenactment/categories", s.routers.ListReenactmentCategories)

		admin := api.Group("/admin")
		admin.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(s.token),
		}))
		{
			admin.POST("/auth/logout", s.routers.Logout)

			admin.GET("/contacts", s.routers.ListContacts)
			admin.GET("/contacts/unread-count", s.routers.UnreadContactCount)
			admin.PATCH("/contacts/:id/read", s.routers.MarkContactRead)
			admin.DELETE("/contacts/:id", s.routers.DeleteContact)

			admin.POST("/events", s.routers.CreateEvent)
			admin.PATCH("/events/:id", s.routers.UpdateEvent)
			admin.DELETE("/events/:id", s.routers.DeleteEvent)

			admin.GET("/galleries", s.routers.ListAllGalleries)
			admin.POST("/galleries", s.routers.CreateGallery)
			admin.PATCH("/galleries/:id", s.routers.UpdateGallery)
			admin.DELETE("/galleries/:id", s.routers.DeleteGallery)

			admin.POST("/photos", s.routers.UploadPhoto)
			admin.DELETE("/photos/:id", s.routers.DeletePhoto)

			admin.POST("/reenactment/categories", s.routers.CreateReenactmentCategory)
			admin.PATCH("/reenactment/categories/:id", s.routers.UpdateReenactmentCategory)
			admin.DELETE("/reenactment/categories/:id", s.routers.DeleteReenactmentCategory)
			admin.POST("/reenactment/blocks", s.routers.CreateReenactmentBlock)
			admin.PATCH("/reenactment/blocks/:id", s.routers.UpdateReenactmentBlock)
			admin.DELETE("/reenactment/blocks/:id", s.routers.DeleteReenactmentBlock)
		}
	}

	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}
}
