package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
	"github.com/koswara-dev/BarayaApp-sub000/internal/config"
	"github.com/koswara-dev/BarayaApp-sub000/internal/events"
	"github.com/koswara-dev/BarayaApp-sub000/internal/infrastructure/api"
	"github.com/koswara-dev/BarayaApp-sub000/internal/infrastructure/imaging"
	"github.com/koswara-dev/BarayaApp-sub000/internal/infrastructure/notifications"
	"github.com/koswara-dev/BarayaApp-sub000/internal/infrastructure/storage"
	"github.com/koswara-dev/BarayaApp-sub000/internal/infrastructure/token"
	"github.com/koswara-dev/BarayaApp-sub000/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    *logrus.Logger

	// Infrastructure
	RedisClient *redis.Client
	Bus         domain.EventBus
	TokenCodec  domain.TokenCodec
	TokenStore  domain.TokenStore
	ReportCache domain.ReportCache
	Compressor  domain.ImageCompressor
	API         domain.APIGateway

	// Services
	SessionSvc domain.SessionService
	ProfileSvc domain.ProfileService
	ReportSvc  domain.ReportService
	Relay      *services.NotificationRelay
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
		Log:    newLogger(cfg.LogLevel),
		Bus:    events.NewBus(),
	}

	if err := container.initStores(); err != nil {
		return nil, err
	}
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	return log
}

func (c *Container) initStores() error {
	c.TokenCodec = token.NewJWTCodec()

	switch c.Config.TokenStoreBackend {
	case "redis":
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		c.TokenStore = storage.NewRedisTokenStore(c.RedisClient, c.Config.TokenServiceName)
	case "file", "":
		store, err := storage.NewFileTokenStore(c.Config.TokenStoreDir, c.Config.TokenServiceName, c.Config.TokenPassphrase)
		if err != nil {
			return err
		}
		c.TokenStore = store
	default:
		return fmt.Errorf("unknown token store backend %q", c.Config.TokenStoreBackend)
	}

	if c.Config.ReportCachePath != "" {
		cache, err := storage.NewReportCache(c.Config.ReportCachePath)
		if err != nil {
			return err
		}
		c.ReportCache = cache
	}

	c.Compressor = imaging.NewCompressor(c.Config.ImageMaxBytes, c.Log)
	return nil
}

func (c *Container) initServices() error {
	sessionSvc := services.NewSessionService(c.TokenCodec, c.TokenStore, c.Bus, c.Log)

	// The transport closes over the session: it reads the bearer token per
	// request and signs the session out when the server answers 401.
	c.API = api.NewClient(
		c.Config.APIBaseURL,
		c.Config.APITimeout,
		sessionSvc.Token,
		func() { sessionSvc.SignOut(context.Background()) },
		c.Log,
	)
	sessionSvc.AttachGateway(c.API)
	c.SessionSvc = sessionSvc

	c.ProfileSvc = services.NewProfileService(c.API, c.Bus, c.Log)
	c.ReportSvc = services.NewReportService(
		c.API,
		c.SessionSvc,
		c.Compressor,
		c.ReportCache,
		c.Bus,
		c.Config.CompleteClearDelay,
		c.Log,
	)

	sinks := []domain.NotificationSink{notifications.NewLogSink(c.Log)}
	if c.Config.SMSEnabled {
		sinks = append(sinks, notifications.NewTwilioSink(
			c.Config.TwilioSID,
			c.Config.TwilioToken,
			c.Config.TwilioFrom,
			c.Config.TwilioTo,
		))
	}
	c.Relay = services.NewNotificationRelay(c.API, sinks, c.Config.NotifyPollInterval, services.DefaultRetryPolicy(), c.Log)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
