package app

import (
	"context"
	"log/slog"

	httpapp "heritage_cms/internal/app/http"
	"heritage_cms/internal/config"
	"heritage_cms/internal/lib/publicurl"
	"heritage_cms/internal/repository"
	authservice "heritage_cms/internal/services/auth_service"
	contactservice "heritage_cms/internal/services/contact_service"
	eventservice "heritage_cms/internal/services/event_service"
	galleryservice "heritage_cms/internal/services/gallery_service"
	"heritage_cms/internal/services/mailer"
	photoservice "heritage_cms/internal/services/photo_service"
	reenactmentservice "heritage_cms/internal/services/reenactment_service"
	"heritage_cms/internal/storage/objectstore"
	"heritage_cms/internal/storage/postgresql"
	redisstore "heritage_cms/internal/storage/redis"
	httprouters "heritage_cms/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	storage  *postgresql.Storage
	redis    *redisstore.Client
	contacts *contactservice.ContactService
	log      *slog.Logger
}

func New(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.HealthCheck(context.Background()); err != nil {
		panic(err)
	}

	store, err := objectstore.NewMinioStore(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.UseSSL)
	if err != nil {
		panic(err)
	}

	resolver := publicurl.Resolver{
		FriendlyBase: cfg.S3.FriendlyURLBase,
		Endpoint:     cfg.S3.Endpoint,
		Bucket:       cfg.S3.Bucket,
	}

	photoRepo := repository.NewPhotoRepository(storage.DB)
	galleryRepo := repository.NewGalleryRepository(storage.DB)
	eventRepo := repository.NewEventRepository(storage.DB)
	contactRepo := repository.NewContactRepository(storage.DB)
	reenactmentRepo := repository.NewReenactmentRepository(storage.DB)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)

	photoService := photoservice.NewPhotoService(log, photoRepo, store, resolver, cfg.S3.Bucket, cfg.S3.ThumbSize)
	galleryService := galleryservice.NewGalleryService(log, galleryRepo, photoService)
	eventService := eventservice.NewEventService(log, eventRepo, photoService)
	notifier := mailer.New(log, cfg.SMTP, cfg.Admin.Email)
	contactService := contactservice.NewContactService(log, contactRepo, notifier, cfg.SMTP.MailRetries, cfg.SMTP.MailDelay)
	reenactmentService := reenactmentservice.NewReenactmentService(log, reenactmentRepo, photoService)
	authService := authservice.NewAuthService(log, tokenRepo, cfg.Admin, cfg.Token)

	routers := httprouters.NewRouter(
		log,
		authService,
		contactService,
		eventService,
		galleryService,
		photoService,
		reenactmentService,
	)

	server := httpapp.New(log, cfg.Token.Secret, cfg.HTTP.Host, cfg.HTTP.Port, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		storage:    storage,
		redis:      redisClient,
		contacts:   contactService,
		log:        log,
	}
}

// Stop shuts the HTTP server down, waits for in-flight contact
// notifications, then closes the storage connections.
func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", slog.Any("error", err))
	}

	a.contacts.Wait()

	a.storage.Stop()

	if err := a.redis.Close(); err != nil {
		a.log.Error("failed to close redis client", slog.Any("error", err))
	}
}
